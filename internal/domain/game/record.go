package game

import (
	"fmt"
	"sort"

	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
)

const totalTurnsKey = "Total"

// Record is the serialized form of a GameState exchanged with persistence.
type Record struct {
	Turns      map[string]int         `json:"turns" bson:"turns"`
	Players    map[Color]PlayerRecord `json:"players" bson:"players"`
	Order      []Color                `json:"order,omitempty" bson:"order,omitempty"`
	AIPlayers  []Color                `json:"ai_players" bson:"ai_players"`
	Difficulty Difficulty             `json:"difficulty" bson:"difficulty"`
	Komi       float64                `json:"komi" bson:"komi"`
	Height     int                    `json:"height" bson:"height"`
	Width      int                    `json:"width" bson:"width"`
	Full       bool                   `json:"full" bson:"full"`
	Passes     int                    `json:"passes" bson:"passes"`
	Graph      map[NodeID]NodeRecord  `json:"graph" bson:"graph"`
}

type PlayerRecord struct {
	Color      Color      `json:"color" bson:"color"`
	Score      float64    `json:"score" bson:"score"`
	Opponent   Color      `json:"opponent" bson:"opponent"`
	Difficulty Difficulty `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
}

type NodeRecord struct {
	NodeID      NodeID   `json:"node_id" bson:"node_id"`
	NeighborIDs []NodeID `json:"nbr_ids" bson:"nbr_ids"`
	RouterOwner Color    `json:"router_owner,omitempty" bson:"router_owner,omitempty"`
	Controlled  Color    `json:"controlled,omitempty" bson:"controlled,omitempty"`
}

// Snapshot serializes the state.
func (g *GameState) Snapshot() Record {
	rec := Record{
		Turns:      map[string]int{totalTurnsKey: g.totalTurns},
		Players:    make(map[Color]PlayerRecord, len(g.players)),
		Order:      []Color{g.order[0], g.order[1]},
		AIPlayers:  g.AIColors(),
		Difficulty: g.difficulty,
		Komi:       g.komi,
		Height:     g.height,
		Width:      g.width,
		Full:       g.full,
		Passes:     g.passes,
		Graph:      make(map[NodeID]NodeRecord, len(g.graph)),
	}
	if rec.AIPlayers == nil {
		rec.AIPlayers = []Color{}
	}
	for _, c := range g.order {
		rec.Turns[string(c)] = g.turns[c]
	}
	for c, p := range g.players {
		pr := PlayerRecord{Color: p.Color, Score: p.Score, Opponent: p.Opponent()}
		if ai, ok := g.ais[c]; ok {
			pr.Difficulty = ai.Difficulty
		}
		rec.Players[c] = pr
	}
	for id, n := range g.graph {
		nbrs := make([]NodeID, len(n.Neighbors))
		copy(nbrs, n.Neighbors)
		rec.Graph[id] = NodeRecord{NodeID: n.ID, NeighborIDs: nbrs, RouterOwner: n.RouterOwner, Controlled: n.Controlled}
	}
	return rec
}

func invalidSnapshot(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errs.ErrInvalidSnapshot)
}

// Restore rebuilds a GameState from rec. Colours listed in AIPlayers get an AI
// of their recorded difficulty, falling back to the game difficulty.
func Restore(rec Record, opts ...Option) (*GameState, error) {
	o := buildOptions(opts)

	order := Colors
	if len(rec.Order) != 0 {
		if len(rec.Order) != 2 {
			return nil, invalidSnapshot("order has %d colors", len(rec.Order))
		}
		order = [2]Color{rec.Order[0], rec.Order[1]}
	}
	if !order[0].Valid() || !order[1].Valid() || order[0] == order[1] {
		return nil, invalidSnapshot("bad color order %v", order)
	}
	if len(rec.Players) != 2 {
		return nil, invalidSnapshot("expected 2 players, got %d", len(rec.Players))
	}
	if rec.Height < MinBoardSize || rec.Width < MinBoardSize || rec.Height > MaxBoardSize || rec.Width > MaxBoardSize {
		return nil, invalidSnapshot("board %dx%d", rec.Height, rec.Width)
	}

	g := &GameState{
		players:    make(map[Color]*Player, 2),
		ais:        make(map[Color]*AI),
		order:      order,
		graph:      make(Graph, len(rec.Graph)),
		turns:      make(map[Color]int, 2),
		totalTurns: rec.Turns[totalTurnsKey],
		komi:       rec.Komi,
		height:     rec.Height,
		width:      rec.Width,
		full:       rec.Full,
		passes:     rec.Passes,
		difficulty: rec.Difficulty,
		rng:        o.rng,
	}
	for _, c := range order {
		pr, ok := rec.Players[c]
		if !ok {
			return nil, invalidSnapshot("missing player %s", c)
		}
		if pr.Score < 0 {
			return nil, invalidSnapshot("player %s has negative score", c)
		}
		p := &Player{Color: c, Score: pr.Score}
		p.SetOpponent(pr.Opponent)
		if p.Opponent() == NoColor {
			p.SetOpponent(otherColor(order, c))
		}
		g.players[c] = p
		g.turns[c] = rec.Turns[string(c)]
	}
	for _, c := range rec.AIPlayers {
		p, ok := g.players[c]
		if !ok {
			return nil, invalidSnapshot("ai player %s is not in the game", c)
		}
		difficulty := rec.Players[c].Difficulty
		if difficulty == "" {
			difficulty = rec.Difficulty
		}
		ai, err := NewAI(p, difficulty)
		if err != nil {
			return nil, err
		}
		g.ais[c] = ai
	}

	if len(rec.Graph) != rec.Height*rec.Width {
		return nil, invalidSnapshot("graph has %d nodes, want %d", len(rec.Graph), rec.Height*rec.Width)
	}
	for key, nr := range rec.Graph {
		if nr.NodeID != key {
			return nil, invalidSnapshot("node %s stored under %s", nr.NodeID, key)
		}
		row, col, err := key.Coords()
		if err != nil {
			return nil, invalidSnapshot("%v", err)
		}
		if row < 0 || row >= rec.Height || col < 0 || col >= rec.Width {
			return nil, invalidSnapshot("node %s outside %dx%d board", key, rec.Height, rec.Width)
		}
		if nr.RouterOwner != NoColor && nr.Controlled != nr.RouterOwner {
			return nil, invalidSnapshot("node %s router %s but controlled by %q", key, nr.RouterOwner, nr.Controlled)
		}
		for _, c := range []Color{nr.RouterOwner, nr.Controlled} {
			if c != NoColor && g.players[c] == nil {
				return nil, invalidSnapshot("node %s owned by unknown color %s", key, c)
			}
		}
		nbrs := make([]NodeID, len(nr.NeighborIDs))
		copy(nbrs, nr.NeighborIDs)
		sort.Slice(nbrs, func(i, j int) bool { return nbrs[i] < nbrs[j] })
		g.graph[key] = &Node{ID: key, Neighbors: nbrs, RouterOwner: nr.RouterOwner, Controlled: nr.Controlled}
	}
	for id, n := range g.graph {
		for _, nbrID := range n.Neighbors {
			if _, ok := g.graph[nbrID]; !ok {
				return nil, invalidSnapshot("node %s links to missing node %s", id, nbrID)
			}
		}
	}
	return g, nil
}

func otherColor(order [2]Color, c Color) Color {
	if order[0] == c {
		return order[1]
	}
	return order[0]
}
