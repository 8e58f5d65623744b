package engine

import (
	"github.com/google/uuid"

	"github.com/ForkArcade/river-valley-settlement/internal/content"
	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/narrative"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

// Screen is the session mode.
type Screen uint8

const (
	ScreenStart Screen = iota
	ScreenPlaying
	ScreenVictory
	ScreenDefeat
)

// String returns the screen name; victory and defeat double as outcomes.
func (s Screen) String() string {
	switch s {
	case ScreenPlaying:
		return "playing"
	case ScreenVictory:
		return "victory"
	case ScreenDefeat:
		return "defeat"
	default:
		return "start"
	}
}

// Message is the narrative line currently shown to the player.
type Message struct {
	Text  string `json:"text"`
	Color string `json:"color"`
	Turn  int    `json:"turn"`
}

// GameState is everything one session mutates. It is created by BeginGame
// and discarded on restart. Operations receive it by pointer and keep no
// reference after returning.
type GameState struct {
	Screen    Screen
	SessionID uuid.UUID
	Seed      int64

	Grid          *world.Grid
	Resources     *economy.Ledger
	Turn          int
	BuildingCount int
	Defense       int

	Selected  *world.Tile
	BuildMode world.BuildingID
	Message   *Message
	Choice    *narrative.Pending
	Score     int

	Story *narrative.Machine
}

// Playing reports whether the session accepts gameplay commands.
func (st *GameState) Playing() bool {
	return st != nil && st.Screen == ScreenPlaying
}

// GetTile returns the tile at (x, y), or nil.
func (st *GameState) GetTile(x, y int) *world.Tile {
	if st.Grid == nil {
		return nil
	}
	return st.Grid.Get(x, y)
}

// Var reads a narrative variable.
func (st *GameState) Var(name string) content.Value {
	if st.Story == nil {
		return content.Null
	}
	return st.Story.Get(name)
}

// stateView adapts GameState to content.View for condition evaluation.
type stateView struct {
	st *GameState
}

func (v stateView) Turn() int          { return v.st.Turn }
func (v stateView) BuildingCount() int { return v.st.BuildingCount }
func (v stateView) Defense() int       { return v.st.Defense }

func (v stateView) HasBuilding(id world.BuildingID) bool {
	return v.st.Grid.HasBuilding(id)
}

func (v stateView) Resource(r economy.Resource) int {
	return v.st.Resources.Get(r)
}

func (v stateView) RuinsDiscovered() bool {
	return v.st.Grid.AnyDiscovered(world.TerrainRuins)
}

func (v stateView) Var(name string) content.Value {
	return v.st.Var(name)
}
