package game

import (
	"fmt"
	"math"

	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
)

const (
	weightScoreDiff     = 5
	weightNeighborOwned = 2
	weightNeighborEnemy = -3
	weightBorder        = -1
)

// Strategy picks a node id or Pass for ai on g. It may clone g but must not
// mutate it.
type Strategy func(ai *AI, g *GameState) (NodeID, error)

var strategies = map[Difficulty]Strategy{
	Easy:     easyMove,
	Medium:   passMove,
	Hard:     passMove,
	VeryHard: passMove,
	Insane:   passMove,
}

// AI is a player whose moves come from the strategy of its difficulty.
type AI struct {
	*Player
	Difficulty Difficulty
	choose     Strategy
}

func NewAI(p *Player, difficulty Difficulty) (*AI, error) {
	choose, ok := strategies[difficulty]
	if !ok {
		return nil, fmt.Errorf("ai difficulty %q: %w", difficulty, errs.ErrUnknownDifficulty)
	}
	return &AI{Player: p, Difficulty: difficulty, choose: choose}, nil
}

// ChooseMove returns a free node id or Pass. When the AI leads and the
// opponent has just passed it passes too, ending the game.
func (a *AI) ChooseMove(g *GameState) (NodeID, error) {
	opp, err := g.player(a.Opponent())
	if err != nil {
		return "", err
	}
	if opp.Score < a.Score && g.passes > 0 {
		return Pass, nil
	}
	return a.choose(a, g)
}

func passMove(*AI, *GameState) (NodeID, error) {
	return Pass, nil
}

type rankedMove struct {
	id   NodeID
	rank float64
}

// easyMove ranks every legal move on a clone and samples one from the softmax
// of the ranks.
func easyMove(a *AI, g *GameState) (NodeID, error) {
	moves := g.LegalMoves()
	ranked := make([]rankedMove, 0, len(moves))
	for _, id := range moves {
		rank, ok, err := rankMove(a, g, id)
		if err != nil {
			return "", err
		}
		if ok {
			ranked = append(ranked, rankedMove{id: id, rank: rank})
		}
	}
	if len(ranked) == 0 {
		return Pass, nil
	}

	maxRank := ranked[0].rank
	for _, m := range ranked[1:] {
		maxRank = math.Max(maxRank, m.rank)
	}
	weights := make([]float64, len(ranked))
	var total float64
	for i, m := range ranked {
		weights[i] = math.Exp(m.rank - maxRank)
		total += weights[i]
	}
	pick := g.rng.Float64() * total
	for i, w := range weights {
		pick -= w
		if pick < 0 {
			return ranked[i].id, nil
		}
	}
	return ranked[len(ranked)-1].id, nil
}

func rankMove(a *AI, g *GameState, id NodeID) (float64, bool, error) {
	sim := g.Clone()
	ok, err := sim.PlaceRouter(id)
	if err != nil || !ok {
		return 0, false, err
	}
	self, opp := sim.players[a.Color], sim.players[a.Opponent()]

	rank := 5 * float64(sim.height*sim.width)
	rank += weightScoreDiff * (self.Score - opp.Score)
	row, col, err := id.Coords()
	if err != nil {
		return 0, false, err
	}
	if row == sim.height-1 || col == sim.width-1 {
		rank += weightBorder
	}
	for _, nbrID := range sim.graph[id].Neighbors {
		switch sim.graph[nbrID].RouterOwner {
		case a.Color:
			rank += weightNeighborOwned
		case a.Opponent():
			rank += weightNeighborEnemy
		}
	}
	return rank, true, nil
}
