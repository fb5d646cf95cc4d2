package grid

import (
	"slices"

	"spires/game"
)

// Directions are the six axial neighbour offsets.
var Directions = [6]game.Coord{
	{Q: 1, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1},
	{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1},
}

// Grid is a hexagon of radius Radius around the origin. Blocked hexes cannot be crossed.
type Grid struct {
	Radius  int
	blocked map[game.Coord]bool
}

func New(radius int) *Grid {
	return &Grid{
		Radius:  max(radius, 0),
		blocked: make(map[game.Coord]bool),
	}
}

// Contains reports whether c lies inside the grid.
func (g *Grid) Contains(c game.Coord) bool {
	return game.HexDistance(game.Coord{}, c) <= g.Radius
}

func (g *Grid) Passable(c game.Coord) bool {
	return g.Contains(c) && !g.blocked[c]
}

func (g *Grid) Block(c game.Coord) {
	if g.Contains(c) {
		g.blocked[c] = true
	}
}

func (g *Grid) Unblock(c game.Coord) {
	delete(g.blocked, c)
}

// Blocked returns the number of blocked hexes.
func (g *Grid) Blocked() int {
	return len(g.blocked)
}

// Neighbors returns the passable neighbours of c.
func (g *Grid) Neighbors(c game.Coord) []game.Coord {
	neighbors := make([]game.Coord, 0, len(Directions))
	for _, d := range Directions {
		n := game.Coord{Q: c.Q + d.Q, R: c.R + d.R}
		if g.Passable(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Hexes lists every hex of the grid in a fixed order, row by row.
func (g *Grid) Hexes() []game.Coord {
	var hexes []game.Coord
	for r := -g.Radius; r <= g.Radius; r++ {
		for q := -g.Radius; q <= g.Radius; q++ {
			c := game.Coord{Q: q, R: r}
			if g.Contains(c) {
				hexes = append(hexes, c)
			}
		}
	}
	return hexes
}

// Flood returns the step count from start to every passable hex reachable from it.
func (g *Grid) Flood(start game.Coord) map[game.Coord]int {
	dist := make(map[game.Coord]int)
	if !g.Passable(start) {
		return dist
	}
	dist[start] = 0
	queue := []game.Coord{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(c) {
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[c] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// PathLength is the number of steps of the shortest passable path from a to b, -1 if none exists.
func (g *Grid) PathLength(a, b game.Coord) int {
	if a == b {
		return 0
	}
	if !g.Passable(a) || !g.Passable(b) {
		return -1
	}
	dist := map[game.Coord]int{a: 0}
	queue := []game.Coord{a}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(c) {
			if _, seen := dist[n]; seen {
				continue
			}
			if n == b {
				return dist[c] + 1
			}
			dist[n] = dist[c] + 1
			queue = append(queue, n)
		}
	}
	return -1
}

// Reachable lists the passable hexes connected to start, in grid order.
func (g *Grid) Reachable(start game.Coord) []game.Coord {
	flood := g.Flood(start)
	var hexes []game.Coord
	for _, c := range g.Hexes() {
		if _, ok := flood[c]; ok {
			hexes = append(hexes, c)
		}
	}
	return slices.Clip(hexes)
}
