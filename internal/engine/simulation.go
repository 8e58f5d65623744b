// Package engine runs the settlement simulation: building placement, the
// turn pipeline, random events and the hooks into the narrative machine.
package engine

import (
	"log/slog"
	"math/rand"

	"github.com/ForkArcade/river-valley-settlement/internal/content"
	"github.com/ForkArcade/river-valley-settlement/internal/entropy"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

// EventLogLimit bounds the in-memory notification log.
const EventLogLimit = 1000

// Kind classifies notifications.
type Kind string

const (
	KindBuildingPlaced Kind = "building_placed"
	KindTurnEnded      Kind = "turn_ended"
	KindEventTriggered Kind = "event_triggered"
	KindStarvation     Kind = "starvation"
	KindMilestone      Kind = "milestone"
	KindChoice         Kind = "choice_presented"
	KindGameOver       Kind = "game_over"
)

// Event is a notification emitted on a state change, consumed by the
// presentation layer and the chronicle.
type Event struct {
	Session     string         `json:"session"`
	Turn        int            `json:"turn"`
	Kind        Kind           `json:"kind"`
	Description string         `json:"description"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// Simulation holds the immutable content, the random sources and the
// notification fan-out. All per-session state lives in GameState.
type Simulation struct {
	Content  *content.Content
	Strategy world.Strategy
	Roller   *Roller

	rng  *rand.Rand
	seed int64

	Events    []Event // Recent notifications, oldest first
	listeners []func(Event)
}

// New creates a simulation. A zero seed draws live randomness.
func New(c *content.Content, seed int64, strategy world.Strategy) *Simulation {
	rng, seed := entropy.NewRand(seed)
	return &Simulation{
		Content:  c,
		Strategy: strategy,
		Roller:   NewRoller(c.Config.EventChance, c.Events, entropy.Split(rng)),
		rng:      rng,
		seed:     seed,
	}
}

// Seed returns the effective seed of the simulation.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Subscribe registers fn to receive every notification.
func (s *Simulation) Subscribe(fn func(Event)) {
	s.listeners = append(s.listeners, fn)
}

// EmitEvent records a notification and forwards it to listeners.
func (s *Simulation) EmitEvent(st *GameState, e Event) {
	e.Turn = st.Turn
	e.Session = st.SessionID.String()
	s.Events = append(s.Events, e)
	if len(s.Events) > EventLogLimit {
		s.Events = s.Events[len(s.Events)-EventLogLimit:]
	}
	for _, fn := range s.listeners {
		fn(e)
	}
	slog.Debug("event", "kind", e.Kind, "turn", e.Turn, "description", e.Description)
}
