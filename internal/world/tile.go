// Package world provides the square tile grid, terrain and terrain generation.
package world

import (
	"fmt"
	"strings"
)

// Terrain types for grid tiles.
type Terrain uint8

const (
	TerrainPlains Terrain = iota // Open land, buildable
	TerrainForest                // Must be cleared before building
	TerrainHills                 // Restricted to quarries
	TerrainWater                 // Never buildable
	TerrainRuins                 // Never buildable, drives the ruins story
)

// Terrains lists every terrain kind.
var Terrains = [...]Terrain{TerrainPlains, TerrainForest, TerrainHills, TerrainWater, TerrainRuins}

var terrainKeys = [...]string{
	TerrainPlains: "plains",
	TerrainForest: "forest",
	TerrainHills:  "hills",
	TerrainWater:  "water",
	TerrainRuins:  "ruins",
}

// String returns the content-table key for the terrain.
func (t Terrain) String() string {
	if int(t) < len(terrainKeys) {
		return terrainKeys[t]
	}
	return fmt.Sprintf("terrain(%d)", t)
}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainPlains:
		return "Plains"
	case TerrainForest:
		return "Forest"
	case TerrainHills:
		return "Hills"
	case TerrainWater:
		return "Water"
	case TerrainRuins:
		return "Ancient Ruins"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Terrain) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Terrain) UnmarshalText(text []byte) error {
	for i, key := range terrainKeys {
		if strings.EqualFold(key, string(text)) {
			*t = Terrain(i)
			return nil
		}
	}
	return fmt.Errorf("unknown terrain %q", text)
}

// BuildingID names a building definition.
type BuildingID string

// Building is a placed building instance. It is owned by its tile.
type Building struct {
	ID        BuildingID `json:"id"`
	BuiltTurn int        `json:"built_turn"`
	Active    bool       `json:"active"` // Staffed this turn
}

// Tile is one grid cell.
type Tile struct {
	X          int       `json:"x"`
	Y          int       `json:"y"`
	Terrain    Terrain   `json:"terrain"`
	Height     float64   `json:"height"`  // Cosmetic, 0.0 to 1.0
	Variant    int       `json:"variant"` // Cosmetic sprite variant, 0 to 2
	Discovered bool      `json:"discovered"`
	Building   *Building `json:"building,omitempty"`
}

// TileVariant returns the cosmetic variant for a position.
func TileVariant(x, y int) int {
	return (x*7 + y*13) % 3
}
