package world

import "math/rand"

// placeRuins scatters MinRuins..MaxRuins ruins tiles at distinct positions
// inside the interior margins and outside the start area. Small grids fall
// back to any tile outside the start area.
func placeRuins(g *Grid, cfg GenConfig, rng *rand.Rand) {
	var candidates []*Tile
	g.Each(func(t *Tile) {
		if t.X >= 5 && t.X <= g.Width-5 && t.Y >= 4 && t.Y <= g.Height-4 && !cfg.InStartArea(t.X, t.Y) {
			candidates = append(candidates, t)
		}
	})
	if len(candidates) == 0 {
		g.Each(func(t *Tile) {
			if !cfg.InStartArea(t.X, t.Y) {
				candidates = append(candidates, t)
			}
		})
	}

	count := randRange(rng, cfg.MinRuins, cfg.MaxRuins)
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > count {
		candidates = candidates[:count]
	}

	for _, t := range candidates {
		t.Terrain = TerrainRuins
		t.Height = clampf(t.Height, 0.3, 0.6)
	}
}

// Ruins returns every ruins tile in row-major order.
func (g *Grid) Ruins() []*Tile {
	var out []*Tile
	g.Each(func(t *Tile) {
		if t.Terrain == TerrainRuins {
			out = append(out, t)
		}
	})
	return out
}
