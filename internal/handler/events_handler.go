package handler

import (
	"net/http"
	"strconv"

	"tablehub/backend/internal/database"
	"tablehub/backend/internal/hub"
	"tablehub/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// GameEvents godoc
// @Summary      Subscribe to a game's live events
// @Description  Upgrades to a WebSocket that pushes a change notification for every mutation of the game (membership, status, chat). Clients re-fetch the detail view on receipt.
// @Tags         games
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      101
// @Failure      401 {object} ErrorResponse "Private game, not authenticated"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id}/events [get]
func GameEvents(c *gin.Context) {
	gameID, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	// Same gate as the detail view: private games need an identity.
	if !game.IsPublic {
		if _, authed := c.Get("userID"); !authed {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
	}

	hub.ServeGameEvents(hub.GlobalHub, game.ID, c.Writer, c.Request)
}

// LobbyEvents godoc
// @Summary      Subscribe to lobby-listing changes
// @Description  Upgrades to a WebSocket that pushes a notification whenever the public listing changes. Clients re-fetch the listing on receipt.
// @Tags         games
// @Success      101
// @Router       /lobby/events [get]
func LobbyEvents(c *gin.Context) {
	hub.ServeGameEvents(hub.GlobalHub, 0, c.Writer, c.Request)
}
