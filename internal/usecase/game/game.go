package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/UnveiledSafe8/SignalSiege/internal/domain/game"
	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
	"github.com/UnveiledSafe8/SignalSiege/internal/statuses"
)

const defaultBoardSize = 9

type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string)
	InsertGame(ctx context.Context, doc game.Game) error
	UpdateGame(ctx context.Context, doc game.Game) error
	GetGame(ctx context.Context, gameKey string) (game.Game, error)
	GetGameByPublicKey(ctx context.Context, publicKey string) (game.Game, error)
	Lock(ctx context.Context, gameKey string) (unlock func(), err error)
}

type GameUseCase struct {
	store   GameStore
	chooser MoveChooser
	log     *zap.SugaredLogger
	opts    []game.Option
	now     func() time.Time
}

func NewGameUseCase(store GameStore, chooser MoveChooser, log *zap.SugaredLogger, opts ...game.Option) *GameUseCase {
	if chooser == nil {
		chooser = LocalChooser{}
	}
	return &GameUseCase{store: store, chooser: chooser, log: log, opts: opts, now: time.Now}
}

func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest) (game.Game, *game.GameState, error) {
	difficulty := game.Self
	if req.Difficulty != "" {
		d, err := game.ParseDifficulty(req.Difficulty)
		if err != nil {
			return game.Game{}, nil, err
		}
		difficulty = d
	}
	height, width := req.Height, req.Width
	if height == 0 {
		height = defaultBoardSize
	}
	if width == 0 {
		width = defaultBoardSize
	}
	full := true
	if req.Full != nil {
		full = *req.Full
	}

	state, err := game.CreateGame(difficulty, height, width, full, g.opts...)
	if err != nil {
		return game.Game{}, nil, err
	}

	gameKeySecret, gameKeyPublic := g.store.GenerateGameKeys(ctx)
	now := g.now()
	doc := game.Game{
		GameKey:    gameKeySecret,
		PublicKey:  gameKeyPublic,
		Difficulty: state.Difficulty(),
		Height:     height,
		Width:      width,
		Moves:      []game.Move{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := g.playAI(ctx, &doc, state); err != nil {
		return game.Game{}, nil, err
	}
	g.settle(&doc, state, false)

	if err := g.store.InsertGame(ctx, doc); err != nil {
		return game.Game{}, nil, err
	}
	g.log.Infow("game created", "game_key", doc.GameKey, "difficulty", doc.Difficulty, "height", height, "width", width)
	return doc, state, nil
}

// GetGame loads a game by its secret key.
func (g *GameUseCase) GetGame(ctx context.Context, gameKey string) (game.Game, *game.GameState, error) {
	doc, err := g.store.GetGame(ctx, gameKey)
	if err != nil {
		return game.Game{}, nil, err
	}
	return g.restore(doc)
}

// GetPublicGame loads a game by the code handed to spectators.
func (g *GameUseCase) GetPublicGame(ctx context.Context, publicKey string) (game.Game, *game.GameState, error) {
	doc, err := g.store.GetGameByPublicKey(ctx, publicKey)
	if err != nil {
		return game.Game{}, nil, err
	}
	return g.restore(doc)
}

// Board renders the board of a game as text.
func (g *GameUseCase) Board(ctx context.Context, gameKey string) (string, error) {
	_, state, err := g.GetGame(ctx, gameKey)
	if err != nil {
		return "", err
	}
	return state.String(), nil
}

func (g *GameUseCase) restore(doc game.Game) (game.Game, *game.GameState, error) {
	state, err := game.Restore(doc.Snapshot, g.opts...)
	if err != nil {
		g.log.Errorw("stored game cannot be restored", "game_key", doc.GameKey, "error", err)
		return game.Game{}, nil, err
	}
	return doc, state, nil
}

// PlayerMove plays move for the human whose turn it is and, if the AI is next,
// its reply. A rejected move comes back with Accepted false and nothing saved.
func (g *GameUseCase) PlayerMove(ctx context.Context, gameKey string, move string) (game.MoveResponse, error) {
	var resp game.MoveResponse
	err := g.withGame(ctx, gameKey, func(doc *game.Game, state *game.GameState) (bool, error) {
		if state.IsAITurn() {
			return false, errs.ErrNotPlayerTurn
		}

		played, ok, err := g.play(doc, state, game.ParseMove(move), false)
		if err != nil || !ok {
			resp = game.MoveResponse{Accepted: false, Played: []game.Move{}, Game: game.NewGameView(*doc, state)}
			return false, err
		}
		resp.Accepted = true
		resp.Played = []game.Move{played}

		aiPlayed, err := g.playAI(ctx, doc, state)
		if err != nil {
			return false, err
		}
		resp.Played = append(resp.Played, aiPlayed...)
		g.settle(doc, state, len(aiPlayed) > 0)
		resp.Game = game.NewGameView(*doc, state)
		return true, nil
	})
	return resp, err
}

// AIMove asks the AI to play when the stored game is waiting for it.
func (g *GameUseCase) AIMove(ctx context.Context, gameKey string) (game.MoveResponse, error) {
	var resp game.MoveResponse
	err := g.withGame(ctx, gameKey, func(doc *game.Game, state *game.GameState) (bool, error) {
		if !state.IsAITurn() {
			return false, errs.ErrNotAITurn
		}
		played, err := g.playAI(ctx, doc, state)
		if err != nil {
			return false, err
		}
		g.settle(doc, state, true)
		resp = game.MoveResponse{Accepted: true, Played: played, Game: game.NewGameView(*doc, state)}
		return true, nil
	})
	return resp, err
}

// withGame runs fn under the game lock and saves the game when fn reports a
// change. Finished games are never played on.
func (g *GameUseCase) withGame(ctx context.Context, gameKey string, fn func(*game.Game, *game.GameState) (bool, error)) error {
	unlock, err := g.store.Lock(ctx, gameKey)
	if err != nil {
		return err
	}
	defer unlock()

	doc, state, err := g.GetGame(ctx, gameKey)
	if err != nil {
		return err
	}
	if doc.Status == statuses.StatusCompleted || game.IsGameOver(state) {
		return errs.ErrGameOver
	}

	changed, err := fn(&doc, state)
	if err != nil {
		if !errors.Is(err, errs.ErrNotAITurn) && !errors.Is(err, errs.ErrNotPlayerTurn) {
			g.log.Errorw("move failed", "game_key", gameKey, "error", err)
		}
		return err
	}
	if !changed {
		return nil
	}
	doc.UpdatedAt = g.now()
	doc.Snapshot = state.Snapshot()
	return g.store.UpdateGame(ctx, doc)
}

func (g *GameUseCase) play(doc *game.Game, state *game.GameState, move game.NodeID, ai bool) (game.Move, bool, error) {
	entry := game.Move{Turn: state.TotalTurns(), Color: state.CurrentPlayer().Color, Coordinates: move, AI: ai}
	ok, err := game.MakePlayerMove(state, move)
	if err != nil {
		return game.Move{}, false, fmt.Errorf("play %s on %s: %w", move, doc.GameKey, err)
	}
	if !ok {
		return game.Move{}, false, nil
	}
	doc.Moves = append(doc.Moves, entry)
	return entry, true, nil
}

// playAI lets the AI move while it holds the turn and the game goes on. A
// move the engine rejects is replaced by a pass.
func (g *GameUseCase) playAI(ctx context.Context, doc *game.Game, state *game.GameState) ([]game.Move, error) {
	var played []game.Move
	for state.IsAITurn() && !game.IsGameOver(state) {
		move, err := g.chooser.ChooseMove(ctx, state)
		if err != nil {
			return nil, fmt.Errorf("choose ai move for %s: %w", doc.GameKey, err)
		}
		entry, ok, err := g.play(doc, state, move, true)
		if err != nil {
			return nil, err
		}
		if !ok {
			g.log.Warnw("ai chose an illegal move, passing instead", "game_key", doc.GameKey, "move", move)
			if entry, _, err = g.play(doc, state, game.Pass, true); err != nil {
				return nil, err
			}
		}
		played = append(played, entry)
	}
	return played, nil
}

func (g *GameUseCase) settle(doc *game.Game, state *game.GameState, aiMoved bool) {
	switch {
	case game.IsGameOver(state):
		doc.Status = statuses.StatusCompleted
		finished := g.now()
		doc.FinishedAt = &finished
	case aiMoved:
		doc.Status = statuses.StatusZombie
	default:
		doc.Status = state.Status()
	}
	doc.Snapshot = state.Snapshot()
}
