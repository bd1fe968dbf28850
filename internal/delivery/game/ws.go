package game

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/UnveiledSafe8/SignalSiege/internal/domain/game"
	"github.com/UnveiledSafe8/SignalSiege/internal/httpresponse"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// hub keeps the open connections of every game so that a move made on one of
// them, or over plain HTTP, reaches the others.
type hub struct {
	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]*sync.Mutex
}

func newHub() *hub {
	return &hub{conns: make(map[string]map[*websocket.Conn]*sync.Mutex)}
}

func (h *hub) join(key string, conn *websocket.Conn) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[key] == nil {
		h.conns[key] = make(map[*websocket.Conn]*sync.Mutex)
	}
	wmu := &sync.Mutex{}
	h.conns[key][conn] = wmu
	return wmu
}

func (h *hub) leave(key string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[key], conn)
	if len(h.conns[key]) == 0 {
		delete(h.conns, key)
	}
}

// broadcast sends v to every connection of the game except skip.
func (h *hub) broadcast(key string, v any, skip *websocket.Conn) {
	h.mu.Lock()
	targets := make(map[*websocket.Conn]*sync.Mutex, len(h.conns[key]))
	for c, wmu := range h.conns[key] {
		if c != skip {
			targets[c] = wmu
		}
	}
	h.mu.Unlock()

	for c, wmu := range targets {
		wmu.Lock()
		err := c.WriteJSON(v)
		wmu.Unlock()
		if err != nil {
			_ = c.Close()
		}
	}
}

// HandlePlay upgrades to a websocket over which the client sends
// {"move": "..."} and receives the move response after each move.
func (g *GameHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := chi.URLParam(r, "key")

	doc, state, err := g.gameUC.GetGame(ctx, key)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warnw("websocket upgrade failed", "game_key", key, "error", err)
		return
	}
	wmu := g.hub.join(key, conn)
	defer func() {
		g.hub.leave(key, conn)
		_ = conn.Close()
	}()

	write := func(v any) error {
		wmu.Lock()
		defer wmu.Unlock()
		return conn.WriteJSON(v)
	}

	if err := write(game.NewGameView(doc, state)); err != nil {
		return
	}

	for {
		var req game.MoveRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Warnw("websocket read failed", "game_key", key, "error", err)
			}
			return
		}

		resp, err := g.gameUC.PlayerMove(ctx, key, req.Move)
		if err != nil {
			desc := err.Error()
			if httpresponse.StatusFor(err) == http.StatusInternalServerError {
				g.log.Errorw("websocket move failed", "game_key", key, "error", err)
				desc = "internal server error"
			}
			if werr := write(httpresponse.ErrorResponse{ErrorDescription: desc}); werr != nil {
				return
			}
			continue
		}
		if err := write(resp); err != nil {
			return
		}
		if resp.Accepted {
			g.hub.broadcast(key, resp, conn)
		}
	}
}
