package game

import (
	"fmt"
	"strings"

	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
)

type Difficulty string

const (
	Easy     Difficulty = "easy"
	Medium   Difficulty = "medium"
	Hard     Difficulty = "hard"
	VeryHard Difficulty = "very_hard"
	Insane   Difficulty = "insane"
	// Self is a game between two humans.
	Self Difficulty = "self"
	// Random is only accepted at creation and resolves to one of AITiers.
	Random Difficulty = "random"
)

// AITiers lists the difficulties that put an AI on the board.
var AITiers = []Difficulty{Easy, Medium, Hard, VeryHard, Insane}

var komiScale = map[Difficulty]float64{
	Easy:     0.7,
	Medium:   1.0,
	Hard:     1.2,
	VeryHard: 1.4,
	Insane:   1.8,
	Self:     1.0,
}

// ParseDifficulty accepts the canonical names plus "very hard".
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_"))
	if d == Random {
		return d, nil
	}
	if _, ok := komiScale[d]; !ok {
		return "", fmt.Errorf("difficulty %q: %w", s, errs.ErrUnknownDifficulty)
	}
	return d, nil
}

func (d Difficulty) IsAI() bool {
	_, ok := strategies[d]
	return ok
}
