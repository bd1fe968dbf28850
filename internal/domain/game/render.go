package game

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// String draws the board: an uppercase letter is a router, a lowercase letter
// is territory and '.' is neutral. The last line holds the scores.
func (g *GameState) String() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for col := 0; col < g.width; col++ {
		sb.WriteString(" " + strconv.Itoa(col))
	}
	sb.WriteByte('\n')
	for row := 0; row < g.height; row++ {
		sb.WriteString(fmt.Sprintf("%-2d", row))
		for col := 0; col < g.width; col++ {
			sb.WriteByte(' ')
			sb.WriteRune(cellRune(g.graph[NewNodeID(row, col)]))
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	scores := make([]string, 0, len(g.order))
	for _, c := range g.order {
		scores = append(scores, fmt.Sprintf("%s: %v", c, g.players[c].Score))
	}
	sb.WriteString(strings.Join(scores, " | "))
	return sb.String()
}

func cellRune(n *Node) rune {
	switch {
	case n == nil:
		return ' '
	case n.HasRouter():
		return unicode.ToUpper(rune(n.RouterOwner[0]))
	case n.Controlled != NoColor:
		return unicode.ToLower(rune(n.Controlled[0]))
	default:
		return '.'
	}
}
