package app

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// handleWS upgrades HTTP to websocket and registers the client for
// record broadcasts.
func (a *App) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	a.mu.Lock()
	a.clients[conn] = true
	a.mu.Unlock()

	go func() {
		defer func() {
			a.mu.Lock()
			delete(a.clients, conn)
			a.mu.Unlock()
			if err := conn.Close(); err != nil {
				log.Debug().Err(err).Msg("close websocket")
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// broadcast sends one encoded record to all connected clients.
func (a *App) broadcast(msg []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for c := range a.clients {
		_ = c.WriteMessage(websocket.TextMessage, msg)
	}
}
