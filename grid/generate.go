package grid

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
	"golang.org/x/exp/rand"

	"spires/game"
)

// GenConfig holds board generation parameters.
type GenConfig struct {
	Radius     int     `yaml:"radius"`
	Seed       int64   `yaml:"seed"`
	Obstacles  float64 `yaml:"obstacles"` // noise level above which a hex is blocked (0..1)
	Spires     int     `yaml:"spires"`
	MinSpacing int     `yaml:"min_spacing"`
}

func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:     6,
		Seed:       1,
		Obstacles:  0.7,
		Spires:     9,
		MinSpacing: 2,
	}
}

// Placement is a spire position chosen by Generate.
type Placement struct {
	ID    game.NodeID
	Coord game.Coord
}

// Layout is a generated board: the grid and its spires. The first two spires are the home
// spires, placed as far apart as the chosen set allows.
type Layout struct {
	Grid   *Grid
	Spires []Placement
}

// Oracle returns a distance oracle that knows every spire of the layout.
func (l *Layout) Oracle() *Oracle {
	o := NewOracle(l.Grid)
	for _, p := range l.Spires {
		o.Place(p.ID, p.Coord)
	}
	return o
}

// Generate builds a board from cfg. The same config always yields the same layout.
// Every spire is reachable from every other.
func Generate(cfg GenConfig) *Layout {
	g := New(cfg.Radius)
	noise := opensimplex.NewNormalized(cfg.Seed)

	for _, c := range g.Hexes() {
		// Hex axial to cartesian: x = q + r/2, y = r*sqrt(3)/2
		x := float64(c.Q) + float64(c.R)*0.5
		y := float64(c.R) * math.Sqrt(3.0) / 2.0
		if octaveNoise(noise, x, y, 3, 0.2, 0.5) > cfg.Obstacles {
			g.Block(c)
		}
	}
	// The centre anchors the connected region spires are drawn from
	g.Unblock(game.Coord{})

	rng := rand.New(rand.NewSource(uint64(cfg.Seed)))
	candidates := g.Reachable(game.Coord{})
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	var chosen []game.Coord
	for _, c := range candidates {
		if len(chosen) >= cfg.Spires {
			break
		}
		if spaced(chosen, c, cfg.MinSpacing) {
			chosen = append(chosen, c)
		}
	}
	orderHomes(g, chosen)

	layout := &Layout{Grid: g, Spires: make([]Placement, len(chosen))}
	for i, c := range chosen {
		layout.Spires[i] = Placement{ID: game.NodeID(fmt.Sprintf("s%d", i)), Coord: c}
	}
	return layout
}

func spaced(chosen []game.Coord, c game.Coord, spacing int) bool {
	for _, o := range chosen {
		if game.HexDistance(o, c) < spacing {
			return false
		}
	}
	return true
}

// orderHomes moves the pair of spires with the longest path between them to the front.
func orderHomes(g *Grid, chosen []game.Coord) {
	if len(chosen) < 2 {
		return
	}
	bi, bj, best := 0, 1, -1
	for i := range chosen {
		flood := g.Flood(chosen[i])
		for j := i + 1; j < len(chosen); j++ {
			if d := flood[chosen[j]]; d > best {
				bi, bj, best = i, j, d
			}
		}
	}
	chosen[0], chosen[bi] = chosen[bi], chosen[0]
	chosen[1], chosen[bj] = chosen[bj], chosen[1]
}

// octaveNoise layers several noise frequencies into one value in [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
