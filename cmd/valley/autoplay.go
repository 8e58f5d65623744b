package main

import (
	"log/slog"

	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/engine"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

// Autoplay begins a session and plays up to turns turns with a simple greedy
// policy: take the first option of any choice, build at most one building a
// turn, clear forest when short of wood.
func Autoplay(sim *engine.Simulation, turns int) *engine.GameState {
	st := sim.BeginGame()
	for st.Playing() && st.Turn < turns {
		if st.Choice != nil {
			sim.ResolveChoice(st, st.Choice.ID, 0)
			continue
		}
		if !build(sim, st) && st.Resources.Get(economy.Wood) < 20 {
			clearForest(sim, st)
		}
		sim.ProcessTurn(st)
	}
	slog.Info("autoplay finished", "turn", st.Turn, "screen", st.Screen, "score", sim.CalculateScore(st))
	return st
}

// wants lists buildings in the order the autoplayer would like them now.
func wants(sim *engine.Simulation, st *engine.GameState) []world.BuildingID {
	res := st.Resources
	pop := res.Get(economy.Population)
	prod := sim.CalculateProduction(st)

	var out []world.BuildingID
	if pop >= res.Get(economy.MaxPopulation)-1 {
		out = append(out, "hut")
	}
	if prod[economy.Food] <= pop/sim.Content.Config.FoodConsumptionRate+1 {
		out = append(out, "farm")
	}
	if res.Get(economy.Wood) < 10 {
		out = append(out, "lumberMill")
	}
	out = append(out, "townHall", "quarry", "warehouse", "market", "tavern",
		"chapel", "watchtower", "library", "walls", "hut")
	return out
}

func build(sim *engine.Simulation, st *engine.GameState) bool {
	for _, id := range wants(sim, st) {
		var placed bool
		st.Grid.Each(func(t *world.Tile) {
			if placed || !sim.CanPlace(st, id, t.X, t.Y).Valid {
				return
			}
			placed = sim.PlaceBuilding(st, id, t.X, t.Y)
		})
		if placed {
			return true
		}
	}
	return false
}

func clearForest(sim *engine.Simulation, st *engine.GameState) bool {
	var cleared bool
	st.Grid.Each(func(t *world.Tile) {
		if !cleared && t.Discovered && sim.CanClear(st, t.X, t.Y).Valid {
			cleared = sim.ClearForest(st, t.X, t.Y)
		}
	})
	return cleared
}
