package engine

import (
	"sort"

	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

// assignWorkers staffs buildings strictly by age. Buildings that need
// workers are visited in ascending BuiltTurn order (row-major within a
// turn); each is activated if the remaining headcount covers it and
// deactivated otherwise. Buildings needing no workers stay active.
func (s *Simulation) assignWorkers(st *GameState) {
	var staffed []*world.Building
	need := make(map[*world.Building]int)
	for _, tile := range st.Grid.Buildings() {
		def, found := s.Content.Building(tile.Building.ID)
		if !found {
			continue
		}
		if def.PopulationRequired > 0 {
			staffed = append(staffed, tile.Building)
			need[tile.Building] = def.PopulationRequired
		} else {
			tile.Building.Active = true
		}
	}
	sort.SliceStable(staffed, func(i, j int) bool {
		return staffed[i].BuiltTurn < staffed[j].BuiltTurn
	})

	available := st.Resources.Get(economy.Population)
	for _, b := range staffed {
		if available >= need[b] {
			b.Active = true
			available -= need[b]
		} else {
			b.Active = false
		}
	}
}

// CalculateProduction sums the per-turn output of every active building. It
// is read-only and safe to call for previews.
func (s *Simulation) CalculateProduction(st *GameState) economy.Amounts {
	prod := economy.Amounts{economy.Gold: 0, economy.Food: 0, economy.Wood: 0, economy.Stone: 0, economy.Happiness: 0}
	if st.Grid == nil {
		return prod
	}
	for _, tile := range st.Grid.Buildings() {
		if !tile.Building.Active {
			continue
		}
		def, found := s.Content.Building(tile.Building.ID)
		if !found {
			continue
		}
		for r, v := range def.Production {
			prod[r] += v
		}
	}
	return prod
}

// applyProduction adds prod to the stockpile. Stored resources are clamped
// to their caps; happiness accumulates without one.
func applyProduction(st *GameState, prod economy.Amounts) {
	for _, r := range economy.All {
		if v, found := prod[r]; found && v != 0 {
			st.Resources.Add(r, v)
		}
	}
}

// CalculateDefense returns the settlement's defense.
func (s *Simulation) CalculateDefense(st *GameState) int {
	return st.Defense
}

// CalculateScore returns population x10 + buildings x50 + gold x2 + turn x5
// plus the accumulated narrative bonus.
func (s *Simulation) CalculateScore(st *GameState) int {
	if st.Resources == nil {
		return 0
	}
	score := st.Resources.Get(economy.Population) * 10
	score += st.BuildingCount * 50
	score += st.Resources.Get(economy.Gold) * 2
	score += st.Turn * 5
	score += st.Var(VarNarrativeBonus).AsInt()
	return score
}
