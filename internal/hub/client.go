package hub

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients connect from the site origin or previews; the
		// bearer token on the events route is the actual gate.
		return true
	},
}

// ServeGameEvents upgrades the request to a WebSocket and streams one
// game's events until the peer disconnects. A zero gameID streams the
// lobby-listing feed instead.
func ServeGameEvents(h *Hub, gameID uint, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	var sub subscriber
	var unsubscribe func()
	if gameID == 0 {
		sub = h.SubscribeListing()
		unsubscribe = func() { h.UnsubscribeListing(sub) }
	} else {
		sub = h.SubscribeGame(gameID)
		unsubscribe = func() { h.UnsubscribeGame(gameID, sub) }
	}

	clientID := uuid.NewString()
	log.Debug().Str("client_id", clientID).Uint("game_id", gameID).Msg("events client connected")

	go writePump(conn, sub, unsubscribe)
	go readPump(conn, clientID)
}

// readPump drains the connection so pings/pongs and close frames are
// processed; incoming payloads are ignored, the feed is one-way.
func readPump(conn *websocket.Conn, clientID string) {
	defer conn.Close()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("client_id", clientID).Msg("events client read error")
			}
			return
		}
	}
}

// writePump forwards hub events to the peer and keeps the connection alive
// with pings.
func writePump(conn *websocket.Conn, sub subscriber, unsubscribe func()) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		unsubscribe()
		conn.Close()
	}()

	for {
		select {
		case data, ok := <-sub:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
