package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tablehub/backend/internal/auth"
	"tablehub/backend/internal/config"
	"tablehub/backend/internal/database"
	"tablehub/backend/internal/mailer"
	"tablehub/backend/internal/models"
	"tablehub/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// region --- DTOs ---

// MagicLinkInput requests an emailed one-time sign-in link.
type MagicLinkInput struct {
	Email      string `json:"email" binding:"required,email" example:"player@example.com"`
	RedirectTo string `json:"redirect_to" binding:"required" example:"https://cards.example.com/"`
}

// VerifyInput completes a magic-link sign-in.
type VerifyInput struct {
	Token string `json:"token" binding:"required"`
}

// SessionResponse carries the bearer token for subsequent requests.
type SessionResponse struct {
	Token      string `json:"token"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// endregion

// RequestMagicLink godoc
// @Summary      Request a magic link
// @Description  Emails a one-time sign-in link. The redirect URL is validated against the allow-policy before anything is stored or sent. Creates the user on first contact.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body MagicLinkInput true "Email and post-auth redirect"
// @Success      202 {object} map[string]string "{"message": "Magic link sent"}"
// @Failure      400 {object} ErrorResponse "Invalid email or redirect"
// @Router       /auth/magic-link [post]
func RequestMagicLink(c *gin.Context) {
	var input MagicLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	redirectTo, err := auth.ValidateRedirect(config.AppConfig, input.RedirectTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	err = database.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Email: email}
		err = database.DB.Create(&user).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}

	secret := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sign-in token"})
		return
	}

	token := models.MagicLinkToken{
		UserID:     user.ID,
		SecretHash: string(hash),
		RedirectTo: redirectTo,
		ExpiresAt:  time.Now().Add(models.MagicLinkTokenTTL),
	}
	if err := database.DB.Create(&token).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sign-in token"})
		return
	}

	link, err := magicLinkURL(redirectTo, magicLinkCode(token.ID, secret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build magic link"})
		return
	}
	if err := mailer.SendMagicLink(config.AppConfig, email, link); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to send magic link")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send magic link"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Magic link sent"})
}

// VerifyMagicLink godoc
// @Summary      Complete a magic-link sign-in
// @Description  Exchanges a one-time code for a session token. Codes are single use and expire after 15 minutes.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body VerifyInput true "One-time code"
// @Success      200 {object} SessionResponse
// @Failure      401 {object} ErrorResponse "Invalid, expired or consumed code"
// @Router       /auth/magic-link/verify [post]
func VerifyMagicLink(c *gin.Context) {
	var input VerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokenID, secret, ok := parseMagicLinkCode(input.Token)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid sign-in code"})
		return
	}

	var token models.MagicLinkToken
	if err := database.DB.First(&token, tokenID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid sign-in code"})
		return
	}

	now := time.Now()
	if !token.Usable(now) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign-in code expired or already used"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(token.SecretHash), []byte(secret)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid sign-in code"})
		return
	}

	// Consume before minting; a guarded update keeps the code single use
	// even under concurrent verification attempts.
	res := database.DB.Model(&models.MagicLinkToken{}).
		Where("id = ? AND consumed_at IS NULL", token.ID).
		Update("consumed_at", now)
	if res.Error != nil || res.RowsAffected == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign-in code expired or already used"})
		return
	}

	session, err := jwt.GenerateToken(token.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Token: session, RedirectTo: token.RedirectTo})
}

// SignOut godoc
// @Summary      Sign out
// @Description  Sessions are stateless bearer tokens; the client discards its token.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]string "{"message": "Signed out"}"
// @Router       /auth/signout [post]
func SignOut(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// region --- Helpers ---

// Codes are "<token row id>.<secret>"; only the bcrypt hash of the secret
// is stored server side.
func magicLinkCode(id uint, secret string) string {
	return fmt.Sprintf("%d.%s", id, secret)
}

// magicLinkURL appends the one-time code to the validated redirect URL,
// preserving any query string the redirect already carries.
func magicLinkURL(redirectTo, code string) (string, error) {
	u, err := url.Parse(redirectTo)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("code", code)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func parseMagicLinkCode(code string) (uint, string, bool) {
	idStr, secret, found := strings.Cut(code, ".")
	if !found || secret == "" {
		return 0, "", false
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, "", false
	}
	return uint(id), secret, true
}

// endregion
