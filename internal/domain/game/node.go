package game

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
)

// NodeID identifies a board cell as "row.col".
type NodeID string

// Pass is the move token that skips a placement.
const Pass NodeID = "pass"

func NewNodeID(row, col int) NodeID {
	return NodeID(fmt.Sprintf("%d.%d", row, col))
}

// Coords parses the id back into its row and column.
func (id NodeID) Coords() (row, col int, err error) {
	rowStr, colStr, ok := strings.Cut(string(id), ".")
	if !ok {
		return 0, 0, fmt.Errorf("malformed node id %q", id)
	}
	row, err = strconv.Atoi(rowStr)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed node id %q: %w", id, err)
	}
	col, err = strconv.Atoi(colStr)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed node id %q: %w", id, err)
	}
	return row, col, nil
}

// Node is a single board cell. Neighbors never change after the board is
// generated; only the ownership fields do.
//
// A node with a router is always controlled by the router owner. A node can be
// controlled (territory) without a router. An empty Color means neutral.
type Node struct {
	ID          NodeID
	Neighbors   []NodeID
	RouterOwner Color
	Controlled  Color
}

func (n *Node) HasRouter() bool {
	return n.RouterOwner != NoColor
}

// Capture marks the node as controlled by owner, optionally with a router.
// Score bookkeeping is done by the GameState.
func (n *Node) Capture(owner Color, placeRouter bool) error {
	if n.Controlled != NoColor {
		return fmt.Errorf("capture node %s held by %s: %w", n.ID, n.Controlled, errs.ErrAlreadyControlled)
	}
	if placeRouter {
		n.RouterOwner = owner
	}
	n.Controlled = owner
	return nil
}

// Uncapture makes the node neutral territory again.
func (n *Node) Uncapture() error {
	if n.Controlled == NoColor {
		return fmt.Errorf("uncapture node %s: %w", n.ID, errs.ErrNotControlled)
	}
	n.Controlled = NoColor
	return nil
}

// Destroy removes both the router and the control of the node.
func (n *Node) Destroy() error {
	if n.Controlled == NoColor {
		return fmt.Errorf("destroy node %s: %w", n.ID, errs.ErrNotControlled)
	}
	n.Controlled = NoColor
	n.RouterOwner = NoColor
	return nil
}

func (n *Node) String() string {
	return fmt.Sprintf("<Node %s | Controlled: %s | Router: %s>", n.ID, n.Controlled, n.RouterOwner)
}

// Graph is the arena of board nodes. Neighbors are referenced by id.
type Graph map[NodeID]*Node

// Clone copies every node. Neighbor slices are shared because they are never
// mutated after generation.
func (g Graph) Clone() Graph {
	out := make(Graph, len(g))
	for id, n := range g {
		cp := *n
		out[id] = &cp
	}
	return out
}
