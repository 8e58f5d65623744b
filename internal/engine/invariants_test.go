package engine

import (
	"math/rand"
	"testing"

	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

// TestRandomPlayInvariants drives many sessions with random actions and a
// high event rate, checking resource bounds and placement legality after
// every step.
func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		for _, strategy := range []world.Strategy{world.StrategyNoise, world.StrategyRules} {
			s := newSim(t, seed)
			s.Strategy = strategy
			s.Roller.Chance = 0.6
			st := s.BeginGame()
			rng := rand.New(rand.NewSource(seed))
			ids := make([]world.BuildingID, len(s.Content.Buildings))
			for i, b := range s.Content.Buildings {
				ids[i] = b.ID
			}

			overs := 0
			s.Subscribe(func(e Event) {
				if e.Kind == KindGameOver {
					overs++
				}
			})

			for step := 0; step < 400 && st.Playing(); step++ {
				x, y := rng.Intn(st.Grid.Width), rng.Intn(st.Grid.Height)
				switch rng.Intn(5) {
				case 0, 1:
					s.PlaceBuilding(st, ids[rng.Intn(len(ids))], x, y)
				case 2:
					s.ClearForest(st, x, y)
				default:
					if st.Choice != nil {
						s.ResolveChoice(st, st.Choice.ID, rng.Intn(len(st.Choice.Options)))
					}
					s.ProcessTurn(st)
				}
				checkInvariants(t, s, st, seed)
			}
			if overs > 1 {
				t.Fatalf("seed %d: game over fired %d times", seed, overs)
			}
			if !st.Playing() && overs != 1 {
				t.Fatalf("seed %d: ended without game over", seed)
			}
		}
	}
}

func checkInvariants(t *testing.T, s *Simulation, st *GameState, seed int64) {
	t.Helper()
	res := st.Resources
	if !res.InRange() {
		t.Fatalf("seed %d turn %d: resources out of range: %v", seed, st.Turn, res.Amounts)
	}
	if st.Playing() && res.Get(economy.Population) < 1 {
		t.Fatalf("seed %d turn %d: playing with no population", seed, st.Turn)
	}
	if res.Get(economy.Population) > res.Get(economy.MaxPopulation) {
		t.Fatalf("seed %d: population above housing", seed)
	}

	count := 0
	st.Grid.Each(func(tl *world.Tile) {
		if tl.Building == nil {
			return
		}
		count++
		def, found := s.Content.Building(tl.Building.ID)
		if !found {
			t.Fatalf("seed %d: unknown building %s", seed, tl.Building.ID)
		}
		terrain, _ := s.Content.TerrainDef(tl.Terrain)
		if !tl.Discovered || !terrain.Buildable || !terrain.Allows(def.ID) || !def.AllowsTerrain(tl.Terrain) {
			t.Fatalf("seed %d: %s on illegal tile %+v", seed, def.ID, *tl)
		}
	})
	if count != st.BuildingCount || st.Var(VarBuildingsCount).AsInt() != count {
		t.Fatalf("seed %d: building count %d, grid has %d", seed, st.BuildingCount, count)
	}
}

func TestRollerEmptyRegistryNeverFires(t *testing.T) {
	r := NewRoller(1, nil, rand.New(rand.NewSource(1)))
	for i := 0; i < 100; i++ {
		if _, fired := r.Roll(); fired {
			t.Fatal("empty registry fired")
		}
	}
}

func TestRollerChance(t *testing.T) {
	s := newSim(t, 3)
	r := s.Roller
	r.Chance = 1
	for i := 0; i < 50; i++ {
		if _, fired := r.Roll(); !fired {
			t.Fatal("chance 1 did not fire")
		}
	}
	r.Chance = 0
	for i := 0; i < 50; i++ {
		if _, fired := r.Roll(); fired {
			t.Fatal("chance 0 fired")
		}
	}
}

func TestEvents(t *testing.T) {
	t.Run("drought floors food", func(t *testing.T) {
		s, st := newGame(t)
		st.Resources.Set(economy.Food, 3)
		s.TriggerEvent(st, "drought")
		if st.Resources.Get(economy.Food) != 0 {
			t.Fatalf("food = %d", st.Resources.Get(economy.Food))
		}
		if st.Message == nil || st.Message.Color != EventColor {
			t.Fatal("event message not shown")
		}
	})
	t.Run("bandits need no defense", func(t *testing.T) {
		s, st := newGame(t)
		s.TriggerEvent(st, "bandits")
		if st.Resources.Get(economy.Gold) != 0 {
			t.Fatalf("gold = %d, want 0", st.Resources.Get(economy.Gold))
		}
		s, st = newGame(t)
		st.Defense = 1
		s.TriggerEvent(st, "bandits")
		if st.Resources.Get(economy.Gold) != 10 {
			t.Fatalf("defended gold = %d, want 10", st.Resources.Get(economy.Gold))
		}
	})
	t.Run("plague keeps one settler", func(t *testing.T) {
		s, st := newGame(t)
		s.TriggerEvent(st, "plague")
		if st.Resources.Get(economy.Population) != 1 {
			t.Fatalf("population = %d", st.Resources.Get(economy.Population))
		}
	})
	t.Run("wanderers respect housing", func(t *testing.T) {
		s, st := newGame(t)
		s.TriggerEvent(st, "wanderers")
		if st.Resources.Get(economy.Population) != 5 {
			t.Fatalf("population = %d", st.Resources.Get(economy.Population))
		}
	})
	t.Run("traders capped", func(t *testing.T) {
		s, st := newGame(t)
		st.Resources.Set(economy.Gold, 45)
		s.TriggerEvent(st, "traders")
		if st.Resources.Get(economy.Gold) != 50 {
			t.Fatalf("gold = %d", st.Resources.Get(economy.Gold))
		}
	})
	t.Run("discovery reveals first hidden ruins", func(t *testing.T) {
		s, st := newGame(t)
		ruins := st.Grid.Ruins()
		for _, r := range ruins {
			r.Discovered = false
		}
		s.TriggerEvent(st, "discovery")
		if !ruins[0].Discovered {
			t.Fatal("first ruins not revealed")
		}
		for _, r := range ruins[1:] {
			if r.Discovered {
				t.Fatal("revealed more than one ruins tile")
			}
		}
	})
	t.Run("unknown id ignored", func(t *testing.T) {
		s, st := newGame(t)
		if s.TriggerEvent(st, "meteor") {
			t.Fatal("unknown event fired")
		}
	})
}

func TestProvision(t *testing.T) {
	s, st := newGame(t)
	if got := s.Provision(st, economy.Stone, 80); got != 50 {
		t.Fatalf("added %d, want 50", got)
	}
	st.Screen = ScreenDefeat
	if s.Provision(st, economy.Gold, 5) != 0 {
		t.Fatal("provisioned after game over")
	}
}
