// Terrain generation for a new valley.
// Two strategies: layered simplex noise thresholded into height bands, and
// a rule-based layout with edge water, a river band and hill clusters.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Strategy selects how terrain is assigned outside the start area.
type Strategy uint8

const (
	StrategyNoise Strategy = iota // Coherent height noise
	StrategyRules                 // Edge water, river band, hill clusters
)

// ParseStrategy maps "noise" or "rules" to a Strategy.
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "noise", "":
		return StrategyNoise, true
	case "rules":
		return StrategyRules, true
	}
	return 0, false
}

func (s Strategy) String() string {
	if s == StrategyRules {
		return "rules"
	}
	return "noise"
}

// GenConfig holds terrain generation parameters.
type GenConfig struct {
	Width, Height int
	Strategy      Strategy

	StartWidth, StartHeight int     // Centre region forced to discovered plains
	DiscoverPct             float64 // Chance a tile outside the start area starts discovered

	MinRuins, MaxRuins int

	// Noise strategy.
	NoiseScale  float64 // Sampling frequency per tile
	Contrast    float64 // Stretch around 0.5 before thresholding
	WaterLevel  float64 // Below: water
	ForestLevel float64 // Above: forest
	HillLevel   float64 // Above: hills
}

// DefaultGenConfig returns the standard 20x15 valley.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:       20,
		Height:      15,
		Strategy:    StrategyNoise,
		StartWidth:  5,
		StartHeight: 4,
		DiscoverPct: 0.7,
		MinRuins:    1,
		MaxRuins:    3,
		NoiseScale:  0.18,
		Contrast:    1.8,
		WaterLevel:  0.22,
		ForestLevel: 0.62,
		HillLevel:   0.78,
	}
}

// StartArea returns the inclusive bounds of the centre region.
func (cfg GenConfig) StartArea() (x0, y0, x1, y1 int) {
	x0 = cfg.Width/2 - cfg.StartWidth/2
	y0 = cfg.Height/2 - cfg.StartHeight/2
	return x0, y0, x0 + cfg.StartWidth - 1, y0 + cfg.StartHeight - 1
}

// InStartArea reports whether (x, y) lies in the centre region.
func (cfg GenConfig) InStartArea(x, y int) bool {
	x0, y0, x1, y1 := cfg.StartArea()
	return x >= x0 && x <= x1 && y >= y0 && y <= y1
}

// Generate creates a new grid. All randomness is drawn from rng, so a seeded
// source reproduces the same valley. The grid never contains buildings.
func Generate(cfg GenConfig, rng *rand.Rand) *Grid {
	g := NewGrid(cfg.Width, cfg.Height)

	switch cfg.Strategy {
	case StrategyRules:
		ruleTerrain(g, cfg, rng)
	default:
		noiseTerrain(g, cfg, rng)
	}

	placeRuins(g, cfg, rng)

	g.Each(func(t *Tile) {
		if cfg.InStartArea(t.X, t.Y) {
			t.Terrain = TerrainPlains
			t.Height = clampf(t.Height, 0.3, 0.55)
			t.Discovered = true
			return
		}
		t.Discovered = rng.Float64() < cfg.DiscoverPct
	})

	return g
}

// noiseTerrain samples octave noise, pulls the border down toward water and
// thresholds the result into bands.
func noiseTerrain(g *Grid, cfg GenConfig, rng *rand.Rand) {
	elevNoise := opensimplex.NewNormalized(rng.Int63())

	halfW := float64(g.Width) / 2
	halfH := float64(g.Height) / 2

	g.Each(func(t *Tile) {
		x, y := float64(t.X), float64(t.Y)
		elev := octaveNoise(elevNoise, x, y, 4, cfg.NoiseScale, 0.5)
		elev = clampf(0.5+(elev-0.5)*cfg.Contrast, 0, 1)

		// Edge shaping: reduce height near the border so water rings the valley.
		dx := (x + 0.5 - halfW) / halfW
		dy := (y + 0.5 - halfH) / halfH
		dist := math.Max(math.Abs(dx), math.Abs(dy))
		edgeFalloff := 1.0 - math.Pow(dist, 3.5)
		if edgeFalloff < 0 {
			edgeFalloff = 0
		}
		elev *= 0.35 + 0.65*edgeFalloff

		t.Height = elev
		t.Terrain = deriveTerrain(elev, cfg)
	})
}

// deriveTerrain determines terrain type from height.
func deriveTerrain(elev float64, cfg GenConfig) Terrain {
	switch {
	case elev < cfg.WaterLevel:
		return TerrainWater
	case elev < cfg.ForestLevel:
		return TerrainPlains
	case elev < cfg.HillLevel:
		return TerrainForest
	default:
		return TerrainHills
	}
}

// ruleTerrain lays out edge water, a river band, clustered hills and
// scattered forest that thickens away from the centre.
func ruleTerrain(g *Grid, cfg GenConfig, rng *rand.Rand) {
	w, h := g.Width, g.Height

	type point struct{ x, y int }
	hillCount := 2 + rng.Intn(3)
	hills := make([]point, 0, hillCount)
	for i := 0; i < hillCount; i++ {
		hills = append(hills, point{randRange(rng, 3, w-3), randRange(rng, 3, h-3)})
	}

	riverY := int(math.Floor(float64(h) * 0.3))
	cx, cy := w/2, h/2

	g.Each(func(t *Tile) {
		x, y := t.X, t.Y
		t.Terrain = TerrainPlains

		switch {
		case x == 0 || y == 0 || x == w-1 || y == h-1:
			if rng.Float64() < 0.4 {
				t.Terrain = TerrainWater
			}
		case y == riverY && x > 2 && x < w-3 && rng.Float64() < 0.3:
			t.Terrain = TerrainWater
		default:
			for _, c := range hills {
				if abs(x-c.x) <= 1 && abs(y-c.y) <= 1 && rng.Float64() < 0.6 {
					t.Terrain = TerrainHills
					break
				}
			}
			if t.Terrain == TerrainPlains {
				dx, dy := float64(x-cx), float64(y-cy)
				chance := 0.08
				if math.Sqrt(dx*dx+dy*dy) > 6 {
					chance = 0.25
				}
				if rng.Float64() < chance {
					t.Terrain = TerrainForest
				}
			}
		}
		t.Height = bandHeight(t.Terrain)
	})
}

// bandHeight gives rule-placed tiles a cosmetic height inside their band.
func bandHeight(t Terrain) float64 {
	switch t {
	case TerrainWater:
		return 0.12
	case TerrainForest:
		return 0.7
	case TerrainHills:
		return 0.88
	default:
		return 0.42
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
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

// randRange returns an integer in [lo, hi], or lo when the range is empty.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
