package errors

import "errors"

// Invalid-state errors. They mean an invariant was broken upstream and the
// current operation must be aborted.
var (
	ErrAlreadyControlled = errors.New("node is already controlled")
	ErrNotControlled     = errors.New("node is not controlled")
	ErrScoreUnderflow    = errors.New("player score underflow")
	ErrNotAITurn         = errors.New("it is not the AI's turn")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownColor      = errors.New("unknown player color")
)

var (
	ErrInvalidBoardSize = errors.New("board size out of range")
	ErrInvalidSnapshot  = errors.New("invalid game snapshot")
	ErrCreateGameFailed = errors.New("create game failed")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameOver         = errors.New("game is over")
	ErrNotPlayerTurn    = errors.New("it is the AI's turn")
	ErrGameLocked       = errors.New("game is being played by another request")
)
