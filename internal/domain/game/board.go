package game

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

const (
	MinBoardSize = 3
	MaxBoardSize = 20

	baseKomi = 6.5
	// komi is scaled against a full 19x19 board
	fullBoardCells = 361
)

var directions = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// GenerateMap builds a height x width grid where every cell is linked to its
// orthogonal neighbours. The flag is kept for the non-grid layouts the API
// accepts; only the full grid exists today.
func GenerateMap(height, width int, _ bool) Graph {
	graph := make(Graph, height*width)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			n := &Node{ID: NewNodeID(row, col)}
			for _, d := range directions {
				r, c := row+d[0], col+d[1]
				if r >= 0 && r < height && c >= 0 && c < width {
					n.Neighbors = append(n.Neighbors, NewNodeID(r, c))
				}
			}
			sort.Slice(n.Neighbors, func(i, j int) bool { return n.Neighbors[i] < n.Neighbors[j] })
			graph[n.ID] = n
		}
	}
	return graph
}

// RandomizeColors returns both colours in a random order.
func RandomizeColors(rng *rand.Rand) [2]Color {
	order := Colors
	if rng.Intn(2) == 1 {
		order[0], order[1] = order[1], order[0]
	}
	return order
}

// ComputeKomi returns the compensation for the second colour, rounded to the
// nearest half point. Unknown difficulties get no komi.
func ComputeKomi(difficulty Difficulty, height, width int) float64 {
	scale, ok := komiScale[difficulty]
	if !ok {
		return 0
	}
	komi := baseKomi * scale * (float64(height*width) / fullBoardCells)
	return math.RoundToEven(komi*2) / 2
}
