package game

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/rand"

	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
	"github.com/UnveiledSafe8/SignalSiege/internal/statuses"
)

// GameState owns the board graph and both players of one game. It has no
// internal locking: a caller must hold it exclusively for one operation.
type GameState struct {
	players    map[Color]*Player
	ais        map[Color]*AI
	order      [2]Color
	graph      Graph
	turns      map[Color]int
	totalTurns int
	komi       float64
	height     int
	width      int
	full       bool
	passes     int
	difficulty Difficulty
	rng        *rand.Rand
}

type options struct {
	rng   *rand.Rand
	order *[2]Color
}

type Option func(*options)

// WithRand fixes the source used for colour assignment, the random difficulty
// and AI sampling.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithColorOrder skips the random colour assignment. first moves first.
func WithColorOrder(first, second Color) Option {
	return func(o *options) { o.order = &[2]Color{first, second} }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return o
}

func (g *GameState) player(color Color) (*Player, error) {
	p, ok := g.players[color]
	if !ok {
		return nil, fmt.Errorf("player %q: %w", color, errs.ErrUnknownColor)
	}
	return p, nil
}

// Player returns the player of the given colour, or nil.
func (g *GameState) Player(color Color) *Player {
	return g.players[color]
}

// Order returns the colours in turn order, as assigned at creation.
func (g *GameState) Order() [2]Color {
	return g.order
}

// AIColors lists the AI-controlled colours in turn order.
func (g *GameState) AIColors() []Color {
	var out []Color
	for _, c := range g.order {
		if _, ok := g.ais[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (g *GameState) Difficulty() Difficulty { return g.difficulty }
func (g *GameState) Komi() float64          { return g.komi }
func (g *GameState) Height() int            { return g.height }
func (g *GameState) Width() int             { return g.width }
func (g *GameState) Passes() int            { return g.passes }
func (g *GameState) TotalTurns() int        { return g.totalTurns }

// Turns returns how many turns the colour has taken.
func (g *GameState) Turns(color Color) int {
	return g.turns[color]
}

// Node looks a cell up by id. The returned node must not be mutated.
func (g *GameState) Node(id NodeID) (*Node, bool) {
	n, ok := g.graph[id]
	return n, ok
}

// Status derives the lifecycle stage from the counters.
func (g *GameState) Status() string {
	switch {
	case g.passes >= 2:
		return statuses.StatusCompleted
	case g.totalTurns == 0:
		return statuses.StatusInitiated
	default:
		return statuses.StatusInProgress
	}
}

func (g *GameState) CurrentPlayer() *Player {
	if g.totalTurns%2 == 0 {
		return g.players[g.order[0]]
	}
	return g.players[g.order[1]]
}

func (g *GameState) IsAITurn() bool {
	_, ok := g.ais[g.CurrentPlayer().Color]
	return ok
}

// TakeTurn advances the counters without any validation.
func (g *GameState) TakeTurn() {
	g.turns[g.CurrentPlayer().Color]++
	g.totalTurns++
}

// Pass skips the current player's placement.
func (g *GameState) Pass() {
	g.TakeTurn()
	g.passes++
}

// LegalMoves returns every node the current player may place on, sorted.
func (g *GameState) LegalMoves() []NodeID {
	moves := make([]NodeID, 0, len(g.graph))
	for id := range g.graph {
		if g.ValidPlacement(id) {
			moves = append(moves, id)
		}
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i] < moves[j] })
	return moves
}

// ValidPlacement forbids occupied nodes and suicide unless the placement
// captures an adjacent opposing group.
func (g *GameState) ValidPlacement(id NodeID) bool {
	n, ok := g.graph[id]
	if !ok || n.HasRouter() {
		return false
	}
	cur := g.CurrentPlayer()
	return g.GroupHasLiberties(n, cur.Color) || g.IsGroupCapturable(n, cur)
}

// PlaceRouter places a router for the current player. It returns false with no
// mutation for a rejected move and an error if an invariant broke midway.
func (g *GameState) PlaceRouter(id NodeID) (bool, error) {
	if !g.ValidPlacement(id) {
		return false, nil
	}
	cur := g.CurrentPlayer()
	target := g.graph[id]
	if target.Controlled != NoColor {
		if err := g.uncapture(target); err != nil {
			return false, err
		}
	}
	if err := g.capture(target, cur.Color, true); err != nil {
		return false, err
	}
	for _, nbrID := range target.Neighbors {
		nbr := g.graph[nbrID]
		switch {
		case !nbr.HasRouter() && nbr.Controlled != cur.Color:
			if err := g.updateTerritoryControl(nbr); err != nil {
				return false, err
			}
		case nbr.RouterOwner == cur.Opponent() && g.IsGroupCapturable(nbr, cur):
			if err := g.captureTerritory(nbr); err != nil {
				return false, err
			}
		}
	}
	g.TakeTurn()
	g.passes = 0
	return true, nil
}

// AIMove asks the AI whose turn it is for a move. The AI works on a private
// clone so its simulations never touch g.
func (g *GameState) AIMove() (NodeID, error) {
	if !g.IsAITurn() {
		return "", errs.ErrNotAITurn
	}
	clone := g.Clone()
	return clone.ais[clone.CurrentPlayer().Color].ChooseMove(clone)
}

// Clone returns a fully independent copy. The random source is shared.
func (g *GameState) Clone() *GameState {
	out := &GameState{
		players:    make(map[Color]*Player, len(g.players)),
		ais:        make(map[Color]*AI, len(g.ais)),
		order:      g.order,
		graph:      g.graph.Clone(),
		turns:      make(map[Color]int, len(g.turns)),
		totalTurns: g.totalTurns,
		komi:       g.komi,
		height:     g.height,
		width:      g.width,
		full:       g.full,
		passes:     g.passes,
		difficulty: g.difficulty,
		rng:        g.rng,
	}
	for c, p := range g.players {
		out.players[c] = p.clone()
	}
	for c, ai := range g.ais {
		out.ais[c] = &AI{Player: out.players[c], Difficulty: ai.Difficulty, choose: ai.choose}
	}
	for c, n := range g.turns {
		out.turns[c] = n
	}
	return out
}

// capture, uncapture and destroy are the only places where node ownership
// and player scores change, always together.

func (g *GameState) capture(n *Node, owner Color, placeRouter bool) error {
	p, err := g.player(owner)
	if err != nil {
		return err
	}
	if err := n.Capture(owner, placeRouter); err != nil {
		return err
	}
	p.IncrementScore(1)
	return nil
}

func (g *GameState) uncapture(n *Node) error {
	if n.Controlled == NoColor {
		return n.Uncapture()
	}
	p, err := g.player(n.Controlled)
	if err != nil {
		return err
	}
	if err := p.DecrementScore(1); err != nil {
		return err
	}
	return n.Uncapture()
}

func (g *GameState) destroy(n *Node) error {
	if n.Controlled == NoColor {
		return n.Destroy()
	}
	p, err := g.player(n.Controlled)
	if err != nil {
		return err
	}
	if err := p.DecrementScore(1); err != nil {
		return err
	}
	return n.Destroy()
}
