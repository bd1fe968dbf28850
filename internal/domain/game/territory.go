package game

// GroupHasLiberties walks the routers of owner connected to start and reports
// whether any of them touches a node without a router. start itself is never
// counted as a liberty, so it can be an empty node being evaluated for a
// placement.
func (g *GameState) GroupHasLiberties(start *Node, owner Color) bool {
	visited := map[NodeID]bool{start.ID: true}
	queue := []*Node{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, nbrID := range curr.Neighbors {
			if visited[nbrID] {
				continue
			}
			nbr := g.graph[nbrID]
			switch {
			case nbr.RouterOwner == owner:
				visited[nbrID] = true
				queue = append(queue, nbr)
			case !nbr.HasRouter():
				return true
			}
		}
	}
	return false
}

// IsGroupCapturable reports whether the opposing group reachable from start
// has no liberty. Only that single component is inspected.
func (g *GameState) IsGroupCapturable(start *Node, attacker *Player) bool {
	return !g.GroupHasLiberties(start, attacker.Opponent())
}

// captureTerritory removes the opposing group at start and settles who now
// controls the freed region.
func (g *GameState) captureTerritory(start *Node) error {
	if err := g.destroyTerritoryRouters(start); err != nil {
		return err
	}
	return g.updateTerritoryControl(start)
}

func (g *GameState) destroyTerritoryRouters(start *Node) error {
	owner := start.RouterOwner
	if owner == NoColor {
		return nil
	}
	if err := g.destroy(start); err != nil {
		return err
	}
	queue := []*Node{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, nbrID := range curr.Neighbors {
			nbr := g.graph[nbrID]
			if nbr.RouterOwner != owner {
				continue
			}
			if err := g.destroy(nbr); err != nil {
				return err
			}
			queue = append(queue, nbr)
		}
	}
	return nil
}

// updateTerritoryControl floods the empty region around start, stopping at
// routers, and applies the control rule:
//   - a controlled region that now borders more than one router owner is
//     neutralised;
//   - an uncontrolled region bordered by exactly one owner is captured for
//     that owner, unless it covers nearly the whole board.
func (g *GameState) updateTerritoryControl(start *Node) error {
	visited := map[NodeID]bool{start.ID: true}
	region := []*Node{start}
	owners := make(map[Color]struct{}, 2)
	for i := 0; i < len(region); i++ {
		for _, nbrID := range region[i].Neighbors {
			if visited[nbrID] {
				continue
			}
			nbr := g.graph[nbrID]
			if nbr.HasRouter() {
				owners[nbr.RouterOwner] = struct{}{}
				continue
			}
			visited[nbrID] = true
			region = append(region, nbr)
		}
	}

	controlled := start.Controlled != NoColor
	switch {
	case controlled && len(owners) > 1:
		for _, n := range region {
			if n.Controlled == NoColor {
				continue
			}
			if err := g.uncapture(n); err != nil {
				return err
			}
		}
	case !controlled && len(owners) == 1 && len(region) < len(g.graph)-3:
		var owner Color
		for c := range owners {
			owner = c
		}
		for _, n := range region {
			if n.Controlled == owner {
				continue
			}
			if n.Controlled != NoColor {
				if err := g.uncapture(n); err != nil {
					return err
				}
			}
			if err := g.capture(n, owner, false); err != nil {
				return err
			}
		}
	}
	return nil
}
