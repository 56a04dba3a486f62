package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"tablehub/backend/internal/auth"
	"tablehub/backend/internal/config"
	"tablehub/backend/internal/database"
	"tablehub/backend/internal/models"
	"tablehub/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		JWTSecret:   "test-secret",
		SiteOrigin:  "https://cards.example.com",
		Environment: "dev",
	}
}

// setupTestDB points the package-global gorm handle at a fresh in-memory
// database for the duration of one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

// newTestRouter wires the same routes as cmd/server.
func newTestRouter() *gin.Engine {
	router := gin.New()

	apiV1 := router.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	authRoutes.POST("/magic-link", RequestMagicLink)
	authRoutes.POST("/magic-link/verify", VerifyMagicLink)
	authRoutes.POST("/signout", auth.AuthMiddleware(), SignOut)

	gameRoutes := apiV1.Group("/games")
	gameRoutes.GET("", ListPublicGames)
	gameRoutes.GET("/:id", auth.OptionalAuthMiddleware(), GetGameByID)

	protected := gameRoutes.Group("")
	protected.Use(auth.AuthMiddleware())
	protected.POST("", CreateGame)
	protected.POST("/:id/join", JoinGame)
	protected.POST("/:id/leave", LeaveGame)
	protected.POST("/:id/start", StartGame)
	protected.POST("/:id/end", EndGame)
	protected.POST("/:id/messages", SendMessage)

	profileRoutes := apiV1.Group("/profiles")
	profileRoutes.GET("/me", auth.OptionalAuthMiddleware(), GetCurrentProfile)
	profileRoutes.POST("/me/ensure", auth.AuthMiddleware(), EnsureCurrentProfile)

	return router
}

func createTestUser(t *testing.T, email, name string) models.User {
	t.Helper()

	user := models.User{Email: email, Name: name}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func bearer(t *testing.T, userID uint) string {
	t.Helper()

	token, err := jwt.GenerateToken(userID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

// doRequest performs a JSON request against the router. An empty token
// leaves the request unauthenticated.
func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}
