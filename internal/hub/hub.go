package hub

import (
	"encoding/json"
	"sync"
)

// Event types pushed to subscribers. Every successful mutation emits one;
// events carry no row data, so clients re-fetch the affected view on
// receipt.
const (
	EventGameCreated  = "game_created"
	EventGameUpdated  = "game_updated"
	EventGameStarted  = "game_started"
	EventGameEnded    = "game_ended"
	EventPlayerJoined = "player_joined"
	EventPlayerLeft   = "player_left"
	EventMessageSent  = "message_sent"
)

// Event is a change notification for one game (GameID 0 is never used; the
// lobby listing has its own subscriber set).
type Event struct {
	Type    string      `json:"type"`
	GameID  uint        `json:"game_id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// subscriber receives marshalled events. Sends are non-blocking; a full
// buffer drops the event rather than stalling a mutation.
type subscriber chan []byte

// Hub tracks live observers of games and of the public lobby listing.
type Hub struct {
	games   map[uint]map[subscriber]bool
	listing map[subscriber]bool
	mu      sync.RWMutex
}

// GlobalHub is the process-wide instance used by the handlers.
var GlobalHub = NewHub()

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		games:   make(map[uint]map[subscriber]bool),
		listing: make(map[subscriber]bool),
	}
}

// SubscribeGame registers a subscriber for one game's events.
func (h *Hub) SubscribeGame(gameID uint) subscriber {
	sub := make(subscriber, 16)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.games[gameID]; !ok {
		h.games[gameID] = make(map[subscriber]bool)
	}
	h.games[gameID][sub] = true
	return sub
}

// UnsubscribeGame removes a game subscriber and closes its channel.
func (h *Hub) UnsubscribeGame(gameID uint, sub subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.games[gameID]; ok {
		if subs[sub] {
			delete(subs, sub)
			close(sub)
			if len(subs) == 0 {
				delete(h.games, gameID)
			}
		}
	}
}

// SubscribeListing registers a subscriber for lobby-listing changes.
func (h *Hub) SubscribeListing() subscriber {
	sub := make(subscriber, 16)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.listing[sub] = true
	return sub
}

// UnsubscribeListing removes a listing subscriber and closes its channel.
func (h *Hub) UnsubscribeListing(sub subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.listing[sub] {
		delete(h.listing, sub)
		close(sub)
	}
}

// BroadcastGame notifies subscribers of one game. Events that change what
// the public listing shows should also go through BroadcastListing.
func (h *Hub) BroadcastGame(gameID uint, event Event) {
	event.GameID = gameID

	h.mu.RLock()
	defer h.mu.RUnlock()

	subs, ok := h.games[gameID]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	for sub := range subs {
		select {
		case sub <- data:
		default:
			// Slow consumer; drop rather than block the mutation path.
		}
	}
}

// BroadcastListing notifies lobby-listing observers.
func (h *Hub) BroadcastListing(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.listing) == 0 {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	for sub := range h.listing {
		select {
		case sub <- data:
		default:
		}
	}
}
