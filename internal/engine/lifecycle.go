package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/entropy"
	"github.com/ForkArcade/river-valley-settlement/internal/narrative"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

// StartScreen returns the title-screen state.
func (s *Simulation) StartScreen() *GameState {
	return &GameState{Screen: ScreenStart}
}

// BeginGame generates a fresh valley and returns a playing session.
func (s *Simulation) BeginGame() *GameState {
	cfg := s.Content.Config
	st := &GameState{
		Screen:    ScreenPlaying,
		SessionID: uuid.New(),
		Seed:      s.seed,
		Grid:      world.Generate(s.Content.GenConfig(s.Strategy), entropy.Split(s.rng)),
		Resources: economy.NewLedger(cfg.StartResources, cfg.ResourceCaps),
		Story:     narrative.New(&s.Content.Narrative),
	}

	slog.Info("game started",
		"session", st.SessionID,
		"seed", s.seed,
		"terrain", s.Strategy,
		"grid", st.Grid.String(),
		"ruins", len(st.Grid.Ruins()),
		"tiles", st.Grid.TerrainCounts(),
	)
	s.enterNode(st, s.Content.Narrative.Start)
	return st
}

// endGame fixes the outcome and score and emits the game-over notification.
// It runs at most once per session since it leaves the playing screen.
func (s *Simulation) endGame(st *GameState, outcome Screen) {
	if !st.Playing() {
		return
	}
	st.Screen = outcome
	st.Score = s.CalculateScore(st)
	st.Choice = nil
	if outcome == ScreenVictory && s.Content.Config.Victory.Ending != "" {
		s.enterNode(st, s.Content.Config.Victory.Ending)
	}

	vars, history := storyDigest(st.Story)
	s.EmitEvent(st, Event{
		Kind:        KindGameOver,
		Description: fmt.Sprintf("%s with score %d", outcome, st.Score),
		Meta: map[string]any{
			"outcome":    outcome.String(),
			"score":      st.Score,
			"population": st.Resources.Get(economy.Population),
			"buildings":  st.BuildingCount,
			"identity":   s.Identity(st),
			"variables":  vars,
			"history":    history,
		},
	})
	slog.Info("game over", "outcome", outcome, "score", st.Score, "turn", st.Turn)
}

// SelectTile selects the tile at (x, y); out-of-bounds clears the selection.
func (s *Simulation) SelectTile(st *GameState, x, y int) {
	st.Selected = st.GetTile(x, y)
}

// SetBuildMode toggles build mode for id and clears the selection.
func (s *Simulation) SetBuildMode(st *GameState, id world.BuildingID) {
	if st.BuildMode == id {
		st.BuildMode = ""
	} else {
		st.BuildMode = id
	}
	st.Selected = nil
}

// Cancel leaves build mode, or clears the selection when not building.
func (s *Simulation) Cancel(st *GameState) {
	if st.BuildMode != "" {
		st.BuildMode = ""
		return
	}
	st.Selected = nil
}

// Click applies the grid interaction at (x, y): place in build mode, clear
// forest, or select. Hidden tiles and a pending choice block it.
func (s *Simulation) Click(st *GameState, x, y int) Check {
	if !st.Playing() || st.Choice != nil {
		return fail(ReasonNone, "")
	}
	tile := st.GetTile(x, y)
	if tile == nil {
		return fail(ReasonOutOfBounds, "Out of bounds")
	}
	if !tile.Discovered {
		return fail(ReasonUndiscovered, "Not discovered")
	}

	switch {
	case st.BuildMode != "":
		check := s.CanPlace(st, st.BuildMode, x, y)
		if check.Valid {
			s.PlaceBuilding(st, st.BuildMode, x, y)
		}
		return check
	case tile.Terrain == world.TerrainForest && tile.Building == nil:
		check := s.CanClear(st, x, y)
		if check.Valid {
			s.ClearForest(st, x, y)
		}
		return check
	default:
		st.Selected = tile
		return passed
	}
}
