package game

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/UnveiledSafe8/SignalSiege/internal/domain/game"
	"github.com/UnveiledSafe8/SignalSiege/internal/httpresponse"
	gameuc "github.com/UnveiledSafe8/SignalSiege/internal/usecase/game"
	"github.com/UnveiledSafe8/SignalSiege/internal/utils"
)

type GameHandler struct {
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	hub    *hub
}

func NewGameHandler(log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		log:    log,
		gameUC: gameUC,
		hub:    newHub(),
	}
}

func (g *GameHandler) Routes(r chi.Router) {
	r.Post("/games", g.HandleNewGame)
	r.Get("/games/{key}", g.HandleGetGame)
	r.Get("/games/{key}/board", g.HandleBoard)
	r.Post("/games/{key}/moves", g.HandleMove)
	r.Post("/games/{key}/ai-move", g.HandleAIMove)
	r.Get("/games/{key}/ws", g.HandlePlay)
	r.Get("/public/{publicKey}", g.HandleGetPublicGame)
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Warnw("bad create request", "error", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	doc, state, err := g.gameUC.CreateGame(r.Context(), req)
	if err != nil {
		g.log.Warnw("create game failed", "error", err)
		httpresponse.WriteError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, game.CreateGameResponse{
		GameKey:   doc.GameKey,
		PublicKey: doc.PublicKey,
		Game:      game.NewGameView(doc, state),
	})
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	doc, state, err := g.gameUC.GetGame(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.NewGameView(doc, state))
}

// HandleGetPublicGame lets spectators follow a game without its secret key.
func (g *GameHandler) HandleGetPublicGame(w http.ResponseWriter, r *http.Request) {
	doc, state, err := g.gameUC.GetPublicGame(r.Context(), chi.URLParam(r, "publicKey"))
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.NewGameView(doc, state))
}

func (g *GameHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	board, err := g.gameUC.Board(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(board + "\n"))
}

func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil || req.Move == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	key := chi.URLParam(r, "key")
	resp, err := g.gameUC.PlayerMove(r.Context(), key, req.Move)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	if !resp.Accepted {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnprocessableEntity, resp)
		return
	}
	g.hub.broadcast(key, resp, nil)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleAIMove(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	resp, err := g.gameUC.AIMove(r.Context(), key)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	g.hub.broadcast(key, resp, nil)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}
