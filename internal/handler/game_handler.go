package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tablehub/backend/internal/database"
	"tablehub/backend/internal/hub"
	"tablehub/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type CreateGameInput struct {
	Name     string `json:"name" binding:"required" example:"Table 1"`
	IsPublic *bool  `json:"is_public"`
}

type SendMessageInput struct {
	Body string `json:"body" binding:"required" example:"Hello table"`
}

type GameSummaryResponse struct {
	ID                uint              `json:"id"`
	Name              string            `json:"name"`
	IsPublic          bool              `json:"is_public"`
	Status            models.GameStatus `json:"status"`
	HostUserID        uint              `json:"host_user_id"`
	HostName          string            `json:"host_name"`
	ActivePlayerCount int64             `json:"active_player_count"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type GamePlayerResponse struct {
	UserID   uint      `json:"user_id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
	IsHost   bool      `json:"is_host"`
}

type GameMessageResponse struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

type GameDetailResponse struct {
	GameSummaryResponse
	StartedAt *time.Time            `json:"started_at,omitempty"`
	EndedAt   *time.Time            `json:"ended_at,omitempty"`
	Players   []GamePlayerResponse  `json:"players"`
	Messages  []GameMessageResponse `json:"messages"`
}

type JoinGameResponse struct {
	Joined        bool `json:"joined,omitempty"`
	AlreadyJoined bool `json:"already_joined,omitempty"`
}

func newGameSummaryResponse(game models.Game, activePlayers int64) GameSummaryResponse {
	return GameSummaryResponse{
		ID:                game.ID,
		Name:              game.Name,
		IsPublic:          game.IsPublic,
		Status:            game.Status,
		HostUserID:        game.HostUserID,
		HostName:          game.Host.DisplayName("Unknown host"),
		ActivePlayerCount: activePlayers,
		CreatedAt:         game.CreatedAt,
		UpdatedAt:         game.UpdatedAt,
	}
}

// endregion

// region --- Listing / detail ---

// ListPublicGames godoc
// @Summary      List public games
// @Description  Returns up to 100 public, non-finished games, newest first, with host names and active player counts.
// @Tags         games
// @Produce      json
// @Success      200 {array} GameSummaryResponse
// @Router       /games [get]
func ListPublicGames(c *gin.Context) {
	var games []models.Game
	err := database.DB.
		Where("is_public = ? AND status <> ?", true, models.StatusFinished).
		Order("created_at DESC").
		Limit(100).
		Preload("Host").
		Find(&games).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list games"})
		return
	}

	response := make([]GameSummaryResponse, 0, len(games))
	for _, game := range games {
		count, err := countActivePlayers(game.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list games"})
			return
		}
		response = append(response, newGameSummaryResponse(game, count))
	}

	c.JSON(http.StatusOK, response)
}

// GetGameByID godoc
// @Summary      Get game detail
// @Description  Returns a game with its active players and the latest 50 chat messages. Private games require authentication; membership is not required.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameDetailResponse
// @Failure      401 {object} ErrorResponse "Private game, not authenticated"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func GetGameByID(c *gin.Context) {
	gameID, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.Preload("Host").First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	if !game.IsPublic {
		if _, authed := c.Get("userID"); !authed {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
	}

	var memberships []models.GamePlayer
	err := database.DB.
		Where("game_id = ? AND left_at IS NULL", game.ID).
		Order("joined_at ASC").
		Preload("User").
		Find(&memberships).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load players"})
		return
	}

	players := make([]GamePlayerResponse, 0, len(memberships))
	for _, m := range memberships {
		players = append(players, GamePlayerResponse{
			UserID:   m.UserID,
			Name:     m.User.DisplayName("Unknown player"),
			JoinedAt: m.JoinedAt,
			IsHost:   m.UserID == game.HostUserID,
		})
	}

	// Latest 50 messages, returned oldest first.
	var recent []models.GameMessage
	err = database.DB.
		Where("game_id = ?", game.ID).
		Order("created_at DESC, id DESC").
		Limit(50).
		Preload("User").
		Find(&recent).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	messages := make([]GameMessageResponse, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		m := recent[i]
		messages = append(messages, GameMessageResponse{
			ID:        m.ID,
			Body:      m.Body,
			UserID:    m.UserID,
			UserName:  m.User.DisplayName("Unknown user"),
			CreatedAt: m.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, GameDetailResponse{
		GameSummaryResponse: newGameSummaryResponse(game, int64(len(players))),
		StartedAt:           game.StartedAt,
		EndedAt:             game.EndedAt,
		Players:             players,
		Messages:            messages,
	})
}

// endregion

// region --- Lifecycle mutations ---

// CreateGame godoc
// @Summary      Create a game
// @Description  Creates a new game in lobby state with the caller as host and first player.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateGameInput true "Game Info"
// @Success      201 {object} map[string]uint "{"id": 1}"
// @Failure      400 {object} ErrorResponse "Name is required"
// @Router       /games [post]
func CreateGame(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateGameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Table name is required."})
		return
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	game := models.Game{
		HostUserID: userID,
		Name:       name,
		IsPublic:   isPublic,
		Status:     models.StatusLobby,
	}

	// Game and the host's membership must appear together.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&game).Error; err != nil {
			return err
		}
		return tx.Create(&models.GamePlayer{
			GameID:   game.ID,
			UserID:   userID,
			JoinedAt: time.Now(),
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	hub.GlobalHub.BroadcastListing(hub.Event{Type: hub.EventGameCreated, GameID: game.ID})

	c.JSON(http.StatusCreated, gin.H{"id": game.ID})
}

// JoinGame godoc
// @Summary      Join a game
// @Description  Joins a public, non-finished game. Rejoining after leaving reactivates the old membership; joining while already a member is a no-op.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} JoinGameResponse
// @Failure      403 {object} ErrorResponse "Game is private"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      409 {object} ErrorResponse "Game already ended"
// @Router       /games/{id}/join [post]
func JoinGame(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	gameID, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if !game.IsPublic {
		c.JSON(http.StatusForbidden, gin.H{"error": "Game is private."})
		return
	}
	if game.Status == models.StatusFinished {
		c.JSON(http.StatusConflict, gin.H{"error": "Game already ended."})
		return
	}

	var membership models.GamePlayer
	err := database.DB.Where("game_id = ? AND user_id = ?", game.ID, userID).First(&membership).Error
	if err == nil && membership.Active() {
		c.JSON(http.StatusOK, JoinGameResponse{AlreadyJoined: true})
		return
	}

	now := time.Now()
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err == nil {
			// Former member: reactivate the existing row.
			if err := tx.Model(&membership).Updates(map[string]interface{}{
				"left_at":   nil,
				"joined_at": now,
			}).Error; err != nil {
				return err
			}
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			// The unique (game_id, user_id) index makes racing joins collapse
			// into one row.
			if err := tx.Create(&models.GamePlayer{
				GameID:   game.ID,
				UserID:   userID,
				JoinedAt: now,
			}).Error; err != nil {
				return err
			}
		} else {
			return err
		}
		return tx.Model(&game).Update("updated_at", now).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusOK, JoinGameResponse{AlreadyJoined: true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join game"})
		return
	}

	hub.GlobalHub.BroadcastGame(game.ID, hub.Event{Type: hub.EventPlayerJoined, Payload: gin.H{"user_id": userID}})
	hub.GlobalHub.BroadcastListing(hub.Event{Type: hub.EventGameUpdated, GameID: game.ID})

	c.JSON(http.StatusOK, JoinGameResponse{Joined: true})
}

// LeaveGame godoc
// @Summary      Leave a game
// @Description  Ends the caller's membership. If the host leaves, the game is finished for everyone.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} map[string]string "{"message": "Left game"}"
// @Failure      404 {object} ErrorResponse "Game not found or not a member"
// @Router       /games/{id}/leave [post]
func LeaveGame(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	gameID, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var membership models.GamePlayer
	err := database.DB.Where("game_id = ? AND user_id = ?", game.ID, userID).First(&membership).Error
	if err != nil || !membership.Active() {
		c.JSON(http.StatusNotFound, gin.H{"error": "You are not in this game."})
		return
	}

	now := time.Now()
	hostLeft := game.HostUserID == userID && game.Status != models.StatusFinished

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&membership).Update("left_at", now).Error; err != nil {
			return err
		}
		if hostLeft {
			// No host election: the table ends when its host walks away.
			return tx.Model(&game).Updates(map[string]interface{}{
				"status":   models.StatusFinished,
				"ended_at": now,
			}).Error
		}
		return tx.Model(&game).Update("updated_at", now).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave game"})
		return
	}

	if hostLeft {
		hub.GlobalHub.BroadcastGame(game.ID, hub.Event{Type: hub.EventGameEnded})
	} else {
		hub.GlobalHub.BroadcastGame(game.ID, hub.Event{Type: hub.EventPlayerLeft, Payload: gin.H{"user_id": userID}})
	}
	hub.GlobalHub.BroadcastListing(hub.Event{Type: hub.EventGameUpdated, GameID: game.ID})

	c.JSON(http.StatusOK, gin.H{"message": "Left game"})
}

// StartGame godoc
// @Summary      Start a game (host only)
// @Description  Moves a game from lobby to active.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} map[string]string "{"message": "Game started"}"
// @Failure      403 {object} ErrorResponse "Only the host can start this game"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      409 {object} ErrorResponse "Game is not in lobby state"
// @Router       /games/{id}/start [post]
func StartGame(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	gameID, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if game.HostUserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the host can start this game."})
		return
	}
	if game.Status != models.StatusLobby {
		c.JSON(http.StatusConflict, gin.H{"error": "Game is not in lobby state."})
		return
	}

	now := time.Now()
	// The status predicate makes concurrent starts resolve to one winner.
	res := database.DB.Model(&models.Game{}).
		Where("id = ? AND status = ?", game.ID, models.StatusLobby).
		Updates(map[string]interface{}{
			"status":     models.StatusActive,
			"started_at": now,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start game"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Game is not in lobby state."})
		return
	}

	hub.GlobalHub.BroadcastGame(game.ID, hub.Event{Type: hub.EventGameStarted})
	hub.GlobalHub.BroadcastListing(hub.Event{Type: hub.EventGameUpdated, GameID: game.ID})

	c.JSON(http.StatusOK, gin.H{"message": "Game started"})
}

// EndGame godoc
// @Summary      End a game (host only)
// @Description  Moves a game to finished. Ending an already finished game is a no-op.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} map[string]string "{"message": "Game ended"}"
// @Success      204 "Already finished"
// @Failure      403 {object} ErrorResponse "Only the host can end this game"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id}/end [post]
func EndGame(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	gameID, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if game.HostUserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the host can end this game."})
		return
	}
	if game.Status == models.StatusFinished {
		// Idempotent: unlike start, ending twice is not an error.
		c.Status(http.StatusNoContent)
		return
	}

	now := time.Now()
	res := database.DB.Model(&models.Game{}).
		Where("id = ? AND status <> ?", game.ID, models.StatusFinished).
		Updates(map[string]interface{}{
			"status":   models.StatusFinished,
			"ended_at": now,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end game"})
		return
	}
	if res.RowsAffected == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	hub.GlobalHub.BroadcastGame(game.ID, hub.Event{Type: hub.EventGameEnded})
	hub.GlobalHub.BroadcastListing(hub.Event{Type: hub.EventGameUpdated, GameID: game.ID})

	c.JSON(http.StatusOK, gin.H{"message": "Game ended"})
}

// endregion

// region --- Chat ---

// SendMessage godoc
// @Summary      Send a chat message
// @Description  Appends a message to a game's chat. Only active members of a non-finished game may post; bodies are trimmed and capped at 500 characters.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int              true "Game ID"
// @Param        input body SendMessageInput true "Message"
// @Success      201 {object} map[string]string "{"message": "Sent"}"
// @Failure      400 {object} ErrorResponse "Message cannot be empty"
// @Failure      403 {object} ErrorResponse "Join the game before chatting"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Failure      409 {object} ErrorResponse "Game has ended"
// @Router       /games/{id}/messages [post]
func SendMessage(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	gameID, _ := strconv.Atoi(c.Param("id"))

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if game.Status == models.StatusFinished {
		c.JSON(http.StatusConflict, gin.H{"error": "Game has ended."})
		return
	}

	var membership models.GamePlayer
	err := database.DB.Where("game_id = ? AND user_id = ?", game.ID, userID).First(&membership).Error
	if err != nil || !membership.Active() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Join the game before chatting."})
		return
	}

	body := strings.TrimSpace(input.Body)
	if body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty."})
		return
	}
	if runes := []rune(body); len(runes) > models.MaxMessageLength {
		body = string(runes[:models.MaxMessageLength])
	}

	message := models.GameMessage{
		GameID: game.ID,
		UserID: userID,
		Body:   body,
	}
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&game).Update("updated_at", time.Now()).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	hub.GlobalHub.BroadcastGame(game.ID, hub.Event{
		Type:    hub.EventMessageSent,
		Payload: gin.H{"message_id": message.ID, "user_id": userID},
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Sent"})
}

// endregion

// region --- Helpers ---

func countActivePlayers(gameID uint) (int64, error) {
	var count int64
	err := database.DB.Model(&models.GamePlayer{}).
		Where("game_id = ? AND left_at IS NULL", gameID).
		Count(&count).Error
	return count, err
}

// endregion
