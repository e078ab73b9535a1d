package game

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleStream godoc
// @Summary Watch a game
// @Description Upgrades to a websocket that receives the current state and then every committed command as a StreamEvent.
// @Tags game
// @Param id path string true "Game id"
// @Router /games/{id}/stream [get]
func (g *GameHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	events, cancel, err := g.gameUC.Subscribe(r.Context(), gameID)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorw("websocket upgrade failed", "game_id", gameID, "error", err)
		return
	}
	defer conn.Close()

	// Viewers only listen; reading detects when they go away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				g.log.Debugw("viewer dropped", "game_id", gameID, "error", err)
				return
			}
		case <-gone:
			return
		}
	}
}
