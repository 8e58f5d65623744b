// Package narrative runs the story state machine: the current node, the
// variable store with its change history, milestone rule evaluation and
// choice presentation and resolution.
//
// The machine never touches resources or the grid. Effects of choices are
// returned to the caller, which owns the game state.
package narrative

import (
	"log/slog"

	"github.com/ForkArcade/river-valley-settlement/internal/content"
)

// HistoryLimit bounds the number of retained variable changes.
const HistoryLimit = 256

// Change records one variable write.
type Change struct {
	Name   string        `json:"name"`
	Value  content.Value `json:"-"`
	Reason string        `json:"reason"`
	Turn   int           `json:"turn"`
}

// ActionKind tells the caller what a milestone rule asks for.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionScene
	ActionChoice
)

// Action is the outcome of a milestone check.
type Action struct {
	Kind   ActionKind
	Target string // Node id for scenes, choice id for choices
}

// Pending is a choice waiting for the player. Options are already filtered
// and resolution indexes into this list.
type Pending struct {
	ID      string           `json:"id"`
	Prompt  string           `json:"prompt"`
	Options []content.Option `json:"-"`
}

// Machine holds the narrative position and variables for one session.
type Machine struct {
	def *content.NarrativeDef

	current string
	vars    map[string]content.Value
	history []Change
}

// New creates a machine for def and initialises it.
func New(def *content.NarrativeDef) *Machine {
	m := &Machine{def: def}
	m.Init()
	return m
}

// Init resets variables to their defaults and moves to the start node.
func (m *Machine) Init() {
	m.vars = make(map[string]content.Value, len(m.def.Variables))
	for name, v := range m.def.Variables {
		m.vars[name] = v
	}
	m.history = nil
	m.current = m.def.Start
}

// Current returns the current node id.
func (m *Machine) Current() string {
	return m.current
}

// Node returns the definition of a node.
func (m *Machine) Node(id string) (content.Node, bool) {
	return m.def.Node(id)
}

// Transition moves to id regardless of graph edges.
func (m *Machine) Transition(id string) {
	if _, ok := m.def.Node(id); !ok {
		slog.Warn("narrative transition to undeclared node", "node", id)
	}
	m.current = id
}

// Get returns a variable, or Null if unset.
func (m *Machine) Get(name string) content.Value {
	return m.vars[name]
}

// Set writes a variable and records the change. Writing an undeclared
// variable still succeeds but is logged, since content validation should
// have caught it.
func (m *Machine) Set(name string, v content.Value, reason string) {
	if _, ok := m.def.Variables[name]; !ok {
		slog.Warn("narrative variable not declared", "name", name, "reason", reason)
	}
	m.vars[name] = v
	m.history = append(m.history, Change{
		Name:   name,
		Value:  v,
		Reason: reason,
		Turn:   m.vars["turns"].AsInt(),
	})
	if len(m.history) > HistoryLimit {
		m.history = m.history[len(m.history)-HistoryLimit:]
	}
}

// Vars returns a copy of the variable store.
func (m *Machine) Vars() map[string]content.Value {
	out := make(map[string]content.Value, len(m.vars))
	for name, v := range m.vars {
		out[name] = v
	}
	return out
}

// History returns the retained variable changes, oldest first.
func (m *Machine) History() []Change {
	return append([]Change(nil), m.history...)
}

// Check evaluates the milestone rules of the current node against v and
// returns the action of the first rule that holds.
func (m *Machine) Check(v content.View) Action {
	for _, r := range m.def.Milestones[m.current] {
		if !r.When.Holds(v) {
			continue
		}
		if r.Choice != "" {
			return Action{Kind: ActionChoice, Target: r.Choice}
		}
		return Action{Kind: ActionScene, Target: r.Scene}
	}
	return Action{}
}

// Present moves to the choice node id and filters its options against v.
// With at least one applicable option it returns the pending choice. With
// none it returns a nil Pending and the successor to advance to, or "" when
// the choice node has no outgoing edge. ok is false for an unknown choice,
// in which case nothing changes.
func (m *Machine) Present(id string, v content.View) (p *Pending, skipTo string, ok bool) {
	choice, ok := m.def.Choices[id]
	if !ok {
		return nil, "", false
	}
	m.current = id

	var options []content.Option
	for _, opt := range choice.Options {
		if opt.Condition.Holds(v) {
			options = append(options, opt)
		}
	}
	if len(options) == 0 {
		next, _ := m.def.Successor(id)
		return nil, next, true
	}
	return &Pending{ID: id, Prompt: choice.Text, Options: options}, "", true
}

// Resolve validates a resolution against the pending choice. It returns the
// selected option and the successor node ("" when there is none). ok is
// false when nothing is pending, the id does not match or the index is out
// of range; callers treat that as a no-op.
func (m *Machine) Resolve(p *Pending, id string, index int) (opt content.Option, next string, ok bool) {
	if p == nil || p.ID != id || index < 0 || index >= len(p.Options) {
		return content.Option{}, "", false
	}
	next, _ = m.def.Successor(id)
	return p.Options[index], next, true
}
