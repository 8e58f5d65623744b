package engine

import (
	"fmt"
	"log/slog"

	"github.com/ForkArcade/river-valley-settlement/internal/content"
	"github.com/ForkArcade/river-valley-settlement/internal/economy"
)

// ProcessTurn advances the settlement by one turn. The steps run in a fixed
// order because each reads what the previous ones wrote:
//
//  1. turn counter
//  2. worker assignment
//  3. production
//  4. identity bonuses
//  5. food consumption
//  6. starvation
//  7. growth
//  8. random event
//  9. milestones
//  10. variable sync
//  11. end check
//
// It is a no-op outside the playing screen and while a choice is pending.
func (s *Simulation) ProcessTurn(st *GameState) {
	if !st.Playing() || st.Choice != nil {
		return
	}
	res := st.Resources

	st.Turn++
	s.syncVar(st, VarTurns, content.Int(st.Turn), fmt.Sprintf("Turn %d", st.Turn))

	s.assignWorkers(st)

	prod := s.CalculateProduction(st)
	applyProduction(st, prod)

	s.identityBonus(st)

	s.feed(st)

	s.grow(st)

	s.rollRandomEvent(st)

	s.checkMilestones(st)

	s.syncVar(st, VarPopulation, content.Int(res.Get(economy.Population)), "")
	s.syncVar(st, VarHappiness, content.Int(res.Get(economy.Happiness)), "")

	switch {
	case res.Get(economy.Population) <= 0:
		s.endGame(st, ScreenDefeat)
	case s.victory(st):
		s.endGame(st, ScreenVictory)
	}

	slog.Debug("turn processed",
		"turn", st.Turn,
		"production", prod.String(),
		"gold", res.Get(economy.Gold),
		"food", res.Get(economy.Food),
		"wood", res.Get(economy.Wood),
		"stone", res.Get(economy.Stone),
		"population", res.Get(economy.Population),
		"max_population", res.Get(economy.MaxPopulation),
		"happiness", res.Get(economy.Happiness),
		"node", st.Story.Current(),
	)

	s.EmitEvent(st, Event{
		Kind:        KindTurnEnded,
		Description: fmt.Sprintf("Turn %d ended", st.Turn),
	})
}

// victory reports whether every victory threshold holds at once.
func (s *Simulation) victory(st *GameState) bool {
	v := s.Content.Config.Victory
	return st.Resources.Get(economy.Population) >= v.Population &&
		st.BuildingCount >= v.Buildings &&
		st.Turn >= v.Turn &&
		(v.Variable == "" || st.Var(v.Variable).Truthy())
}
