package engine

import (
	"log/slog"
	"maps"
	"math/rand"
	"slices"

	"github.com/ForkArcade/river-valley-settlement/internal/content"
	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

// EventColor is the message colour used for random events.
const EventColor = "#ffd700"

// Roller picks random events. Each roll fires with probability Chance and
// then picks uniformly from Events; selection has no memory.
type Roller struct {
	Chance float64
	Events []content.EventDef
	rng    *rand.Rand
}

// NewRoller creates a roller drawing from rng.
func NewRoller(chance float64, events []content.EventDef, rng *rand.Rand) *Roller {
	return &Roller{Chance: chance, Events: events, rng: rng}
}

// Roll returns the event to fire this turn, if any. An empty registry never
// fires.
func (r *Roller) Roll() (*content.EventDef, bool) {
	if len(r.Events) == 0 || r.rng.Float64() >= r.Chance {
		return nil, false
	}
	return &r.Events[r.rng.Intn(len(r.Events))], true
}

// rollRandomEvent fires at most one random event.
func (s *Simulation) rollRandomEvent(st *GameState) {
	if evt, fired := s.Roller.Roll(); fired {
		s.applyEvent(st, evt)
	}
}

func (s *Simulation) applyEvent(st *GameState, evt *content.EventDef) {
	st.Message = &Message{Text: evt.Text, Color: EventColor, Turn: st.Turn}
	applied := s.applyEffect(st, &evt.Effect, evt.Name)
	s.EmitEvent(st, Event{
		Kind:        KindEventTriggered,
		Description: evt.Name,
		Meta:        map[string]any{"event": evt.ID, "applied": applied},
	})
	slog.Info("random event", "event", evt.ID, "turn", st.Turn, "applied", applied)
}

// applyEffect mutates state according to e and reports whether its guard
// held. Every resource change goes through the ledger, so caps hold.
func (s *Simulation) applyEffect(st *GameState, e *content.Effect, reason string) bool {
	if !e.When.Holds(stateView{st}) {
		return false
	}

	if e.MaxPopulation != 0 {
		st.Resources.Add(economy.MaxPopulation, e.MaxPopulation)
	}
	for _, r := range economy.All {
		if v, found := e.Resources[r]; found {
			st.Resources.Add(r, v)
		}
	}
	if e.Population != 0 {
		pop := st.Resources.Get(economy.Population)
		target := pop + e.Population
		if e.Population < 0 && target < 1 {
			target = min(pop, 1)
		}
		st.Resources.Set(economy.Population, target)
	}
	st.Defense += e.Defense

	if e.RevealRuins {
		if tile := st.Grid.FirstHidden(world.TerrainRuins); tile != nil {
			tile.Discovered = true
		}
	}

	for _, name := range slices.Sorted(maps.Keys(e.Set)) {
		st.Story.Set(name, e.Set[name], reason)
	}
	for _, name := range slices.Sorted(maps.Keys(e.Add)) {
		st.Story.Set(name, content.Int(st.Var(name).AsInt()+e.Add[name]), reason)
	}
	return true
}
