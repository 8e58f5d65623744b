package engine

import (
	"log/slog"

	"github.com/ForkArcade/river-valley-settlement/internal/content"
	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/narrative"
)

// Narrative variables the engine keeps in sync with game state.
const (
	VarTurns          = "turns"
	VarBuildingsCount = "buildings_count"
	VarPopulation     = "population"
	VarHappiness      = "happiness"
	VarNarrativeBonus = "narrative_bonus"
)

// syncVar writes a mirrored variable if the content declares it.
func (s *Simulation) syncVar(st *GameState, name string, v content.Value, reason string) {
	if s.Content.Declared(name) {
		st.Story.Set(name, v, reason)
	}
}

// checkMilestones fires at most one milestone rule for the current node.
// Nothing advances while a choice is waiting for the player.
func (s *Simulation) checkMilestones(st *GameState) {
	if st.Choice != nil {
		return
	}
	action := st.Story.Check(stateView{st})
	switch action.Kind {
	case narrative.ActionScene:
		s.enterNode(st, action.Target)
	case narrative.ActionChoice:
		s.presentChoice(st, action.Target)
	}
}

// enterNode moves the story to id. Scene and ending nodes publish their text
// and emit a milestone; choice nodes are entered silently and wait for their
// rule to present them.
func (s *Simulation) enterNode(st *GameState, id string) {
	st.Story.Transition(id)
	node, found := st.Story.Node(id)
	if !found || node.Kind == content.NodeChoice {
		return
	}
	if node.Text != "" {
		st.Message = &Message{Text: node.Text, Color: node.Color, Turn: st.Turn}
	}
	s.EmitEvent(st, Event{
		Kind:        KindMilestone,
		Description: node.Label,
		Meta:        map[string]any{"node": id},
	})
	slog.Info("narrative milestone", "node", id, "label", node.Label, "turn", st.Turn)
}

// presentChoice publishes a pending choice, or skips straight to the
// successor node when none of its options apply.
func (s *Simulation) presentChoice(st *GameState, id string) {
	p, skipTo, found := st.Story.Present(id, stateView{st})
	if !found {
		return
	}
	if p == nil {
		slog.Info("choice skipped, no options apply", "choice", id, "next", skipTo)
		if skipTo != "" {
			s.enterNode(st, skipTo)
		}
		return
	}

	st.Choice = p
	if node, ok := st.Story.Node(id); ok && node.Text != "" {
		st.Message = &Message{Text: node.Text, Color: node.Color, Turn: st.Turn}
	}
	labels := make([]string, len(p.Options))
	for i, opt := range p.Options {
		labels[i] = opt.Label
	}
	s.EmitEvent(st, Event{
		Kind:        KindChoice,
		Description: p.Prompt,
		Meta:        map[string]any{"choice": id, "options": labels},
	})
}

// ResolveChoice applies option index of the pending choice id, clears the
// dialog and advances along the edge leaving the choice node. A mismatched
// or absent pending choice, or an out-of-range index, is ignored.
func (s *Simulation) ResolveChoice(st *GameState, id string, index int) bool {
	if !st.Playing() {
		return false
	}
	opt, next, resolved := st.Story.Resolve(st.Choice, id, index)
	if !resolved {
		slog.Debug("choice resolution ignored", "choice", id, "index", index)
		return false
	}

	s.applyEffect(st, &opt.Effect, opt.Label)
	st.Choice = nil
	s.syncVar(st, VarPopulation, content.Int(st.Resources.Get(economy.Population)), opt.Label)
	slog.Info("choice resolved", "choice", id, "option", opt.Label, "next", next)

	if next != "" {
		s.enterNode(st, next)
	}
	return true
}

// storyDigest flattens the variable store and the retained change history
// into plain values for the game-over notification.
func storyDigest(m *narrative.Machine) (map[string]any, []map[string]any) {
	vars := make(map[string]any)
	for name, v := range m.Vars() {
		vars[name] = v.Any()
	}
	changes := m.History()
	history := make([]map[string]any, len(changes))
	for i, c := range changes {
		history[i] = map[string]any{
			"name":   c.Name,
			"value":  c.Value.Any(),
			"reason": c.Reason,
			"turn":   c.Turn,
		}
	}
	return vars, history
}

// identityBonus applies standing per-turn bonuses for every identity whose
// variable currently holds its value.
func (s *Simulation) identityBonus(st *GameState) {
	for _, id := range s.Content.Identities {
		if !st.Var(id.Variable).Equal(id.Value) {
			continue
		}
		for _, r := range economy.All {
			if v, found := id.PerTurn[r]; found {
				st.Resources.Add(r, v)
			}
		}
	}
}

// Identity returns the label of the identity currently held, or "".
func (s *Simulation) Identity(st *GameState) string {
	for _, id := range s.Content.Identities {
		if st.Var(id.Variable).Equal(id.Value) {
			return id.Label
		}
	}
	return ""
}
