package handler

import (
	"errors"
	"net/http"
	"time"

	"tablehub/backend/internal/database"
	"tablehub/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type ProfileResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	DisplayName string    `json:"display_name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newProfileResponse(profile models.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:          profile.ID,
		UserID:      profile.UserID,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}

// endregion

// GetCurrentProfile godoc
// @Summary      Get the caller's profile
// @Description  Returns the profile of the authenticated user, or null when unauthenticated or no profile exists yet.
// @Tags         profiles
// @Produce      json
// @Success      200 {object} ProfileResponse
// @Router       /profiles/me [get]
func GetCurrentProfile(c *gin.Context) {
	userID, authed := c.Get("userID")
	if !authed {
		c.JSON(http.StatusOK, nil)
		return
	}

	var profile models.UserProfile
	err := database.DB.Where("user_id = ?", userID.(uint)).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(profile))
}

// EnsureCurrentProfile godoc
// @Summary      Ensure the caller has a profile
// @Description  Creates an empty profile on first call and returns the existing one afterwards.
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ProfileResponse
// @Failure      401 {object} ErrorResponse
// @Router       /profiles/me/ensure [post]
func EnsureCurrentProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var profile models.UserProfile
	err := database.DB.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		c.JSON(http.StatusOK, newProfileResponse(profile))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	profile = models.UserProfile{UserID: userID}
	if err := database.DB.Create(&profile).Error; err != nil {
		// A concurrent ensure may have won the race on the unique index.
		if fetchErr := database.DB.Where("user_id = ?", userID).First(&profile).Error; fetchErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
			return
		}
	}

	c.JSON(http.StatusOK, newProfileResponse(profile))
}
