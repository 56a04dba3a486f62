package main

import (
	"net/http"

	"tablehub/backend/internal/auth"
	"tablehub/backend/internal/config"
	"tablehub/backend/internal/database"
	"tablehub/backend/internal/handler"
	"tablehub/backend/pkg/log"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "tablehub/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           TableHub API
// @version         1.0
// @description     This is the API for the TableHub lobby service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := log.New(config.AppConfig.Environment)

	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/magic-link", handler.RequestMagicLink)
			authRoutes.POST("/magic-link/verify", handler.VerifyMagicLink)
			authRoutes.POST("/signout", auth.AuthMiddleware(), handler.SignOut)
		}

		// Game routes. Listing and detail are readable without an account;
		// detail itself rejects anonymous access to private games.
		gameRoutes := apiV1.Group("/games")
		{
			gameRoutes.GET("", handler.ListPublicGames)
			gameRoutes.GET("/:id", auth.OptionalAuthMiddleware(), handler.GetGameByID)
			gameRoutes.GET("/:id/events", auth.OptionalAuthMiddleware(), handler.GameEvents)

			protected := gameRoutes.Group("")
			protected.Use(auth.AuthMiddleware())
			{
				protected.POST("", handler.CreateGame)
				protected.POST("/:id/join", handler.JoinGame)
				protected.POST("/:id/leave", handler.LeaveGame)
				protected.POST("/:id/start", handler.StartGame)
				protected.POST("/:id/end", handler.EndGame)
				protected.POST("/:id/messages", handler.SendMessage)
			}
		}

		// Live feed for the public lobby listing
		apiV1.GET("/lobby/events", handler.LobbyEvents)

		// Profile routes
		profileRoutes := apiV1.Group("/profiles")
		{
			profileRoutes.GET("/me", auth.OptionalAuthMiddleware(), handler.GetCurrentProfile)
			profileRoutes.POST("/me/ensure", auth.AuthMiddleware(), handler.EnsureCurrentProfile)
		}
	}

	logger.Info().Str("port", config.AppConfig.Port).Msg("Server is running")
	logger.Info().Msg("Swagger UI is available at http://localhost:" + config.AppConfig.Port + "/swagger/index.html")
	if err := router.Run(":" + config.AppConfig.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
