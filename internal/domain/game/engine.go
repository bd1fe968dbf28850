package game

import (
	"fmt"
	"strings"

	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
)

// CreateGame sets up a new game. The colour order is random; the second colour
// receives the komi and, unless difficulty is Self, is played by the AI.
func CreateGame(difficulty Difficulty, height, width int, full bool, opts ...Option) (*GameState, error) {
	if height < MinBoardSize || height > MaxBoardSize || width < MinBoardSize || width > MaxBoardSize {
		return nil, fmt.Errorf("board %dx%d, want sides in [%d,%d]: %w",
			height, width, MinBoardSize, MaxBoardSize, errs.ErrInvalidBoardSize)
	}
	o := buildOptions(opts)
	if difficulty == Random {
		difficulty = AITiers[o.rng.Intn(len(AITiers))]
	}
	if _, ok := komiScale[difficulty]; !ok {
		return nil, fmt.Errorf("create game: difficulty %q: %w", difficulty, errs.ErrUnknownDifficulty)
	}

	order := RandomizeColors(o.rng)
	if o.order != nil {
		order = *o.order
	}
	if !order[0].Valid() || !order[1].Valid() || order[0] == order[1] {
		return nil, fmt.Errorf("create game: color order %v: %w", order, errs.ErrUnknownColor)
	}

	g := &GameState{
		players:    make(map[Color]*Player, 2),
		ais:        make(map[Color]*AI),
		order:      order,
		graph:      GenerateMap(height, width, full),
		turns:      map[Color]int{order[0]: 0, order[1]: 0},
		komi:       ComputeKomi(difficulty, height, width),
		height:     height,
		width:      width,
		full:       full,
		difficulty: difficulty,
		rng:        o.rng,
	}
	first, second := NewPlayer(order[0]), NewPlayer(order[1])
	first.SetOpponent(second.Color)
	second.SetOpponent(first.Color)
	second.IncrementScore(g.komi)
	g.players[first.Color] = first
	g.players[second.Color] = second

	if difficulty != Self {
		ai, err := NewAI(second, difficulty)
		if err != nil {
			return nil, err
		}
		g.ais[second.Color] = ai
	}
	return g, nil
}

// ParseMove turns user input into a node id or Pass.
func ParseMove(s string) NodeID {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(Pass)) {
		return Pass
	}
	return NodeID(s)
}

// MakePlayerMove plays move for the current player. A rejected placement
// returns false and leaves the state unchanged. Moves after the game is over
// are not blocked here.
func MakePlayerMove(g *GameState, move NodeID) (bool, error) {
	if move == Pass {
		g.Pass()
		return true, nil
	}
	return g.PlaceRouter(move)
}

// MakeAIMove lets the AI play if it is its turn, otherwise returns false.
func MakeAIMove(g *GameState) (bool, error) {
	if !g.IsAITurn() {
		return false, nil
	}
	move, err := g.AIMove()
	if err != nil {
		return false, err
	}
	return MakePlayerMove(g, move)
}

func IsGameOver(g *GameState) bool {
	return g.passes >= 2
}

// Result summarises the scores. Winner is empty on a draw.
type Result struct {
	Over   bool              `json:"over"`
	Scores map[Color]float64 `json:"scores"`
	Winner Color             `json:"winner,omitempty"`
}

func (g *GameState) Result() Result {
	res := Result{Over: IsGameOver(g), Scores: make(map[Color]float64, 2)}
	a, b := g.players[g.order[0]], g.players[g.order[1]]
	res.Scores[a.Color] = a.Score
	res.Scores[b.Color] = b.Score
	switch {
	case a.Score > b.Score:
		res.Winner = a.Color
	case b.Score > a.Score:
		res.Winner = b.Color
	}
	return res
}
