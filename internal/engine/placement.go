package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ForkArcade/river-valley-settlement/internal/content"
	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

// Reason categorises a failed validation.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonOutOfBounds
	ReasonUndiscovered
	ReasonOccupied
	ReasonUnknownBuilding
	ReasonLocked
	ReasonNeedsClearing
	ReasonNotBuildable
	ReasonTerrainRestricted
	ReasonWrongTerrain
	ReasonInsufficient
	ReasonNotForest
)

var reasonNames = [...]string{
	ReasonNone:              "none",
	ReasonOutOfBounds:       "out_of_bounds",
	ReasonUndiscovered:      "undiscovered",
	ReasonOccupied:          "occupied",
	ReasonUnknownBuilding:   "unknown_building",
	ReasonLocked:            "locked",
	ReasonNeedsClearing:     "needs_clearing",
	ReasonNotBuildable:      "not_buildable",
	ReasonTerrainRestricted: "terrain_restricted",
	ReasonWrongTerrain:      "wrong_terrain",
	ReasonInsufficient:      "insufficient",
	ReasonNotForest:         "not_forest",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("reason(%d)", r)
}

// Check is the result of a validation. Detail is the player-facing text.
type Check struct {
	Valid  bool
	Reason Reason
	Detail string
}

var passed = Check{Valid: true}

func fail(r Reason, format string, args ...any) Check {
	return Check{Reason: r, Detail: fmt.Sprintf(format, args...)}
}

// CanPlace validates placing building id at (x, y). The first failing check
// wins. It never mutates state.
func (s *Simulation) CanPlace(st *GameState, id world.BuildingID, x, y int) Check {
	tile := st.GetTile(x, y)
	if tile == nil {
		return fail(ReasonOutOfBounds, "Out of bounds")
	}
	if !tile.Discovered {
		return fail(ReasonUndiscovered, "Not discovered")
	}
	if tile.Building != nil {
		return fail(ReasonOccupied, "Tile occupied")
	}

	def, found := s.Content.Building(id)
	if !found {
		return fail(ReasonUnknownBuilding, "Unknown building")
	}

	if def.UnlockCondition != "" && !st.Var(def.UnlockCondition).Truthy() {
		if def.UnlockHint != "" {
			return fail(ReasonLocked, "%s", def.UnlockHint)
		}
		return fail(ReasonLocked, "Requires %s", def.UnlockCondition)
	}

	terrain, found := s.Content.TerrainDef(tile.Terrain)
	if !found || !terrain.Buildable {
		if found && terrain.Clearable {
			return fail(ReasonNeedsClearing, "Clear %s first", strings.ToLower(terrain.Name))
		}
		return fail(ReasonNotBuildable, "Cannot build here")
	}

	if !terrain.Allows(id) {
		names := make([]string, len(terrain.RestrictedTo))
		for i, r := range terrain.RestrictedTo {
			names[i] = string(r)
		}
		return fail(ReasonTerrainRestricted, "Only %s here", strings.Join(names, ", "))
	}
	if !def.AllowsTerrain(tile.Terrain) {
		return fail(ReasonWrongTerrain, "Wrong terrain")
	}

	if r, short := st.Resources.Shortfall(def.Cost); short {
		return fail(ReasonInsufficient, "Need %d %s", def.Cost[r], r)
	}

	return passed
}

// PlaceBuilding validates and places a building. On success it deducts the
// cost, applies one-time effects, bumps the building count, sets the
// building's narrative trigger and runs a milestone check if a trigger was
// set. It returns false without mutation on any failure.
func (s *Simulation) PlaceBuilding(st *GameState, id world.BuildingID, x, y int) bool {
	if !st.Playing() {
		return false
	}
	if check := s.CanPlace(st, id, x, y); !check.Valid {
		slog.Debug("placement rejected", "building", id, "x", x, "y", y, "reason", check.Reason, "detail", check.Detail)
		return false
	}

	def, _ := s.Content.Building(id)
	tile := st.GetTile(x, y)

	st.Resources.Deduct(def.Cost)
	tile.Building = &world.Building{ID: id, BuiltTurn: st.Turn, Active: true}

	if def.Effect.MaxPopulation != 0 {
		st.Resources.Add(economy.MaxPopulation, def.Effect.MaxPopulation)
	}
	if def.Effect.ResourceCapBonus != 0 {
		st.Resources.RaiseCaps(def.Effect.ResourceCapBonus)
	}
	st.Defense += def.Effect.Defense

	st.BuildingCount++
	s.syncVar(st, VarBuildingsCount, content.Int(st.BuildingCount), "Built "+def.Name)

	s.EmitEvent(st, Event{
		Kind:        KindBuildingPlaced,
		Description: fmt.Sprintf("%s built at (%d,%d)", def.Name, x, y),
		Meta:        map[string]any{"building": string(id), "x": x, "y": y},
	})

	if def.NarrativeTrigger != "" {
		st.Story.Set(def.NarrativeTrigger, content.Bool(true), def.Name+" built")
		s.checkMilestones(st)
	}
	return true
}

// CanClear validates clearing the tile at (x, y).
func (s *Simulation) CanClear(st *GameState, x, y int) Check {
	tile := st.GetTile(x, y)
	if tile == nil {
		return fail(ReasonOutOfBounds, "Out of bounds")
	}
	if tile.Building != nil {
		return fail(ReasonOccupied, "Tile occupied")
	}
	if tile.Terrain != world.TerrainForest {
		return fail(ReasonNotForest, "Nothing to clear")
	}
	return passed
}

// ClearForest turns a forest tile into plains and grants its one-time yield,
// capped by storage.
func (s *Simulation) ClearForest(st *GameState, x, y int) bool {
	if !st.Playing() || !s.CanClear(st, x, y).Valid {
		return false
	}
	tile := st.GetTile(x, y)
	def, _ := s.Content.TerrainDef(world.TerrainForest)
	tile.Terrain = world.TerrainPlains
	for _, r := range economy.All {
		if v, found := def.ClearYield[r]; found {
			st.Resources.Add(r, v)
		}
	}
	slog.Debug("forest cleared", "x", x, "y", y, "yield", def.ClearYield.String())
	return true
}
