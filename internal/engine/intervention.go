package engine

import (
	"log/slog"

	"github.com/ForkArcade/river-valley-settlement/internal/economy"
)

// TriggerEvent fires the event with the given id outside the random roll.
// Unknown ids are ignored.
func (s *Simulation) TriggerEvent(st *GameState, id string) bool {
	evt, found := s.Content.Event(id)
	if !found || !st.Playing() {
		return false
	}
	s.applyEvent(st, evt)
	return true
}

// PushNarrative moves the story directly to node id, bypassing milestone
// rules. Any open dialog is dropped; entering a choice node this way
// presents its choice.
func (s *Simulation) PushNarrative(st *GameState, id string) {
	if !st.Playing() {
		return
	}
	st.Choice = nil
	if _, isChoice := s.Content.Narrative.Choices[id]; isChoice {
		s.presentChoice(st, id)
		return
	}
	s.enterNode(st, id)
}

// Provision adds amount of r to the stockpile, clamped by storage, and
// returns what was actually added.
func (s *Simulation) Provision(st *GameState, r economy.Resource, amount int) int {
	if !st.Playing() {
		return 0
	}
	added := st.Resources.Add(r, amount)
	slog.Info("provision", "resource", r, "requested", amount, "added", added)
	return added
}
