package game

import (
	"fmt"

	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
)

type Color string

const (
	NoColor Color = ""
	Black   Color = "Black"
	White   Color = "White"
)

// Colors is the canonical colour order.
var Colors = [2]Color{Black, White}

func (c Color) Valid() bool {
	return c == Black || c == White
}

type Player struct {
	Color    Color
	Score    float64
	opponent Color
}

func NewPlayer(color Color) *Player {
	return &Player{Color: color}
}

func (p *Player) SetOpponent(color Color) {
	p.opponent = color
}

func (p *Player) Opponent() Color {
	return p.opponent
}

func (p *Player) IncrementScore(amount float64) {
	p.Score += amount
}

// DecrementScore fails without touching the score if it would go below zero.
func (p *Player) DecrementScore(amount float64) error {
	if p.Score-amount < 0 {
		return fmt.Errorf("player %s score %v minus %v: %w", p.Color, p.Score, amount, errs.ErrScoreUnderflow)
	}
	p.Score -= amount
	return nil
}

func (p *Player) String() string {
	return fmt.Sprintf("Player(%s, Score: %v)", p.Color, p.Score)
}

func (p *Player) clone() *Player {
	cp := *p
	return &cp
}
