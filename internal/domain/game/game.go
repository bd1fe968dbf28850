package game

import (
	"time"
)

// Game is the stored document of one game.
type Game struct {
	GameKey    string     `json:"game_key" bson:"game_key"` // secret, needed to play
	PublicKey  string     `json:"public_key" bson:"public_key"`
	Status     string     `json:"status" bson:"status"`
	Difficulty Difficulty `json:"difficulty" bson:"difficulty"`
	Height     int        `json:"height" bson:"height"`
	Width      int        `json:"width" bson:"width"`
	Moves      []Move     `json:"moves" bson:"moves"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
	Snapshot   Record     `json:"-" bson:"snapshot"`
}

type CreateGameRequest struct {
	Difficulty string `json:"difficulty"`
	Height     int    `json:"height"`
	Width      int    `json:"width"`
	Full       *bool  `json:"full,omitempty"`
}

type CreateGameResponse struct {
	GameKey   string   `json:"game_key"`
	PublicKey string   `json:"public_key"`
	Game      GameView `json:"game"`
}

// GameView is what clients see of a game.
type GameView struct {
	PublicKey     string            `json:"public_key"`
	Status        string            `json:"status"`
	Difficulty    Difficulty        `json:"difficulty"`
	Height        int               `json:"height"`
	Width         int               `json:"width"`
	Komi          float64           `json:"komi"`
	CurrentPlayer Color             `json:"current_player"`
	AIColors      []Color           `json:"ai_colors"`
	Passes        int               `json:"passes"`
	TotalTurns    int               `json:"total_turns"`
	Scores        map[Color]float64 `json:"scores"`
	Board         string            `json:"board"`
	LegalMoves    []NodeID          `json:"legal_moves"`
	Result        *Result           `json:"result,omitempty"`
}

func NewGameView(doc Game, g *GameState) GameView {
	res := g.Result()
	view := GameView{
		PublicKey:     doc.PublicKey,
		Status:        doc.Status,
		Difficulty:    g.Difficulty(),
		Height:        g.Height(),
		Width:         g.Width(),
		Komi:          g.Komi(),
		CurrentPlayer: g.CurrentPlayer().Color,
		AIColors:      g.AIColors(),
		Passes:        g.Passes(),
		TotalTurns:    g.TotalTurns(),
		Scores:        res.Scores,
		Board:         g.String(),
	}
	if res.Over {
		view.Result = &res
		view.LegalMoves = []NodeID{}
	} else {
		view.LegalMoves = g.LegalMoves()
	}
	return view
}
