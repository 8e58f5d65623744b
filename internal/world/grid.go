package world

import "fmt"

// Grid holds every tile of a session. It is created once and never resized.
type Grid struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tiles  [][]Tile `json:"tiles"` // Indexed [y][x]
}

// NewGrid creates a grid of plains tiles with cosmetic variants filled in.
func NewGrid(width, height int) *Grid {
	g := &Grid{Width: width, Height: height, Tiles: make([][]Tile, height)}
	for y := range g.Tiles {
		g.Tiles[y] = make([]Tile, width)
		for x := range g.Tiles[y] {
			g.Tiles[y][x] = Tile{X: x, Y: y, Terrain: TerrainPlains, Variant: TileVariant(x, y)}
		}
	}
	return g
}

// InBounds returns true if (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Get returns the tile at (x, y), or nil if out of bounds.
func (g *Grid) Get(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.Tiles[y][x]
}

// Each calls fn for every tile in row-major order.
func (g *Grid) Each(fn func(t *Tile)) {
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			fn(&g.Tiles[y][x])
		}
	}
}

// Buildings returns every occupied tile in row-major order.
func (g *Grid) Buildings() []*Tile {
	var out []*Tile
	g.Each(func(t *Tile) {
		if t.Building != nil {
			out = append(out, t)
		}
	})
	return out
}

// HasBuilding reports whether any tile holds a building with the given id.
func (g *Grid) HasBuilding(id BuildingID) bool {
	found := false
	g.Each(func(t *Tile) {
		if t.Building != nil && t.Building.ID == id {
			found = true
		}
	})
	return found
}

// FirstHidden returns the first undiscovered tile of the given terrain in
// row-major order, or nil.
func (g *Grid) FirstHidden(terrain Terrain) *Tile {
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			t := &g.Tiles[y][x]
			if t.Terrain == terrain && !t.Discovered {
				return t
			}
		}
	}
	return nil
}

// AnyDiscovered reports whether any tile of the given terrain is discovered.
func (g *Grid) AnyDiscovered(terrain Terrain) bool {
	found := false
	g.Each(func(t *Tile) {
		if t.Terrain == terrain && t.Discovered {
			found = true
		}
	})
	return found
}

// TerrainCounts returns a summary of terrain type distribution.
func (g *Grid) TerrainCounts() map[Terrain]int {
	counts := make(map[Terrain]int)
	g.Each(func(t *Tile) {
		counts[t.Terrain]++
	})
	return counts
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.Width, g.Height)
}
