// Population dynamics: food consumption, starvation and natural growth.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/ForkArcade/river-valley-settlement/internal/content"
	"github.com/ForkArcade/river-valley-settlement/internal/economy"
)

// feed subtracts the population's food need. When the stockpile would go
// negative, food snaps to zero and starvation removes up to
// StarvationPenalty people, never the last one.
func (s *Simulation) feed(st *GameState) {
	cfg := s.Content.Config
	res := st.Resources

	pop := res.Get(economy.Population)
	food := res.Get(economy.Food) - pop/cfg.FoodConsumptionRate
	if food >= 0 {
		res.Set(economy.Food, food)
		return
	}

	res.Set(economy.Food, 0)
	lost := min(pop-1, cfg.StarvationPenalty)
	if lost <= 0 {
		return
	}
	res.Set(economy.Population, pop-lost)
	s.syncVar(st, VarPopulation, content.Int(pop-lost), "Starvation")
	s.EmitEvent(st, Event{
		Kind:        KindStarvation,
		Description: fmt.Sprintf("Starvation! -%d population", lost),
		Meta:        map[string]any{"lost": lost, "shortfall": -food},
	})
	slog.Warn("starvation", "turn", st.Turn, "lost", lost, "shortfall", -food)
}

// grow adds one settler when food exceeds the growth threshold and there is
// housing to spare.
func (s *Simulation) grow(st *GameState) {
	res := st.Resources
	if res.Get(economy.Food) <= s.Content.Config.GrowthFoodThreshold {
		return
	}
	if res.Get(economy.Population) >= res.Get(economy.MaxPopulation) {
		return
	}
	res.Add(economy.Population, 1)
	s.syncVar(st, VarPopulation, content.Int(res.Get(economy.Population)), "New settler")
}
