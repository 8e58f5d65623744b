package world

import (
	"math/rand"
	"testing"
)

func forEachSeed(t *testing.T, n int, fn func(t *testing.T, cfg GenConfig, g *Grid)) {
	t.Helper()
	for _, strategy := range []Strategy{StrategyNoise, StrategyRules} {
		cfg := DefaultGenConfig()
		cfg.Strategy = strategy
		for seed := int64(1); seed <= int64(n); seed++ {
			g := Generate(cfg, rand.New(rand.NewSource(seed)))
			fn(t, cfg, g)
		}
	}
}

func TestStartAreaIsDiscoveredPlains(t *testing.T) {
	forEachSeed(t, 200, func(t *testing.T, cfg GenConfig, g *Grid) {
		x0, y0, x1, y1 := cfg.StartArea()
		if x1-x0+1 != 5 || y1-y0+1 != 4 {
			t.Fatalf("start area %dx%d, want 5x4", x1-x0+1, y1-y0+1)
		}
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				tile := g.Get(x, y)
				if tile.Terrain != TerrainPlains || !tile.Discovered {
					t.Fatalf("%s start tile (%d,%d) = %s discovered=%v", cfg.Strategy, x, y, tile.Terrain, tile.Discovered)
				}
				if tile.Height < 0.3 || tile.Height > 0.55 {
					t.Fatalf("start tile height %.2f out of [0.3, 0.55]", tile.Height)
				}
			}
		}
	})
}

func TestRuinsCountAndPlacement(t *testing.T) {
	forEachSeed(t, 200, func(t *testing.T, cfg GenConfig, g *Grid) {
		ruins := g.Ruins()
		if len(ruins) < 1 || len(ruins) > 3 {
			t.Fatalf("%s: %d ruins, want 1..3", cfg.Strategy, len(ruins))
		}
		for _, r := range ruins {
			if r.X < 5 || r.X > g.Width-5 || r.Y < 4 || r.Y > g.Height-4 {
				t.Fatalf("ruins at (%d,%d) outside margins", r.X, r.Y)
			}
			if cfg.InStartArea(r.X, r.Y) {
				t.Fatalf("ruins inside start area at (%d,%d)", r.X, r.Y)
			}
		}
	})
}

func TestGridStartsEmpty(t *testing.T) {
	forEachSeed(t, 50, func(t *testing.T, cfg GenConfig, g *Grid) {
		if n := len(g.Buildings()); n != 0 {
			t.Fatalf("%d buildings on fresh grid", n)
		}
		if g.Width != 20 || g.Height != 15 || len(g.Tiles) != 15 || len(g.Tiles[0]) != 20 {
			t.Fatalf("grid shape %s", g)
		}
	})
}

func TestDiscoveryRateNearSeventyPercent(t *testing.T) {
	total, discovered := 0, 0
	forEachSeed(t, 100, func(t *testing.T, cfg GenConfig, g *Grid) {
		g.Each(func(tile *Tile) {
			if cfg.InStartArea(tile.X, tile.Y) {
				return
			}
			total++
			if tile.Discovered {
				discovered++
			}
		})
	})
	rate := float64(discovered) / float64(total)
	if rate < 0.66 || rate > 0.74 {
		t.Fatalf("discovery rate %.3f, want about 0.7", rate)
	}
}

func TestNoiseWaterFavoursBorder(t *testing.T) {
	cfg := DefaultGenConfig()
	borderWater, borderTiles, innerWater, innerTiles := 0, 0, 0, 0
	for seed := int64(1); seed <= 100; seed++ {
		g := Generate(cfg, rand.New(rand.NewSource(seed)))
		g.Each(func(tile *Tile) {
			border := tile.X == 0 || tile.Y == 0 || tile.X == g.Width-1 || tile.Y == g.Height-1
			water := tile.Terrain == TerrainWater
			if border {
				borderTiles++
				if water {
					borderWater++
				}
			} else {
				innerTiles++
				if water {
					innerWater++
				}
			}
		})
	}
	borderRate := float64(borderWater) / float64(borderTiles)
	innerRate := float64(innerWater) / float64(innerTiles)
	if borderRate <= innerRate {
		t.Fatalf("border water %.3f not above interior %.3f", borderRate, innerRate)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultGenConfig()
	a := Generate(cfg, rand.New(rand.NewSource(7)))
	b := Generate(cfg, rand.New(rand.NewSource(7)))
	a.Each(func(tile *Tile) {
		other := b.Get(tile.X, tile.Y)
		if other.Terrain != tile.Terrain || other.Discovered != tile.Discovered {
			t.Fatalf("tile (%d,%d) differs between runs", tile.X, tile.Y)
		}
	})
}

func TestVariant(t *testing.T) {
	g := NewGrid(4, 4)
	if v := g.Get(1, 1).Variant; v != (7+13)%3 {
		t.Fatalf("variant = %d", v)
	}
	if g.Get(4, 0) != nil || g.Get(-1, 0) != nil {
		t.Fatal("out of bounds tile returned")
	}
}

func TestTerrainCountsCoverGrid(t *testing.T) {
	forEachSeed(t, 20, func(t *testing.T, cfg GenConfig, g *Grid) {
		counts := g.TerrainCounts()
		total := 0
		for _, n := range counts {
			total += n
		}
		if total != g.Width*g.Height {
			t.Fatalf("%s: counts sum to %d, want %d", cfg.Strategy, total, g.Width*g.Height)
		}
		if counts[TerrainPlains] < cfg.StartWidth*cfg.StartHeight {
			t.Fatalf("%s: %d plains, fewer than the start area", cfg.Strategy, counts[TerrainPlains])
		}
	})
}
