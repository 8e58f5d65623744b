package content

import (
	"errors"
	"fmt"

	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

// Validate checks cross references between tables and returns every problem
// found, joined.
func (c *Content) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	cfg := c.Config
	if cfg.GridWidth <= 0 || cfg.GridHeight <= 0 {
		add("config: grid %dx%d must be positive", cfg.GridWidth, cfg.GridHeight)
	}
	if cfg.StartWidth <= 0 || cfg.StartHeight <= 0 || cfg.StartWidth > cfg.GridWidth || cfg.StartHeight > cfg.GridHeight {
		add("config: start area %dx%d does not fit the grid", cfg.StartWidth, cfg.StartHeight)
	}
	if cfg.FoodConsumptionRate <= 0 {
		add("config: foodConsumptionRate must be positive")
	}
	if cfg.EventChance < 0 || cfg.EventChance > 1 {
		add("config: eventChance %.2f outside [0, 1]", cfg.EventChance)
	}
	for r := range cfg.ResourceCaps {
		if !r.Capped() {
			add("config: %s cannot carry a cap", r)
		}
	}

	for _, t := range world.Terrains {
		def, ok := c.Terrain[t]
		if !ok {
			add("terrain %s: missing definition", t)
			continue
		}
		for _, id := range def.RestrictedTo {
			if _, ok := c.buildings[id]; !ok {
				add("terrain %s: restrictedTo unknown building %q", t, id)
			}
		}
	}

	seen := make(map[world.BuildingID]bool)
	for _, b := range c.Buildings {
		if b.ID == "" {
			add("building with empty id")
			continue
		}
		if seen[b.ID] {
			add("building %s: duplicate id", b.ID)
		}
		seen[b.ID] = true
		if len(b.Terrain) == 0 {
			add("building %s: no allowed terrain", b.ID)
		}
		if b.PopulationRequired < 0 {
			add("building %s: negative populationRequired", b.ID)
		}
		for r := range b.Production {
			if r == economy.Population || r == economy.MaxPopulation {
				add("building %s: cannot produce %s", b.ID, r)
			}
		}
		c.checkVar(add, "building "+string(b.ID)+" unlockCondition", b.UnlockCondition)
		c.checkVar(add, "building "+string(b.ID)+" narrativeTrigger", b.NarrativeTrigger)
	}

	events := make(map[string]bool)
	for _, e := range c.Events {
		if events[e.ID] {
			add("event %s: duplicate id", e.ID)
		}
		events[e.ID] = true
		c.checkEffect(add, "event "+e.ID, &e.Effect)
	}

	c.validateNarrative(add)

	for _, id := range c.Identities {
		c.checkVar(add, "identity", id.Variable)
	}

	v := cfg.Victory
	c.checkVar(add, "victory", v.Variable)
	if v.Ending != "" {
		if n, ok := c.Narrative.Node(v.Ending); !ok || n.Kind != NodeEnding {
			add("victory: ending %q is not an ending node", v.Ending)
		}
	}

	return errors.Join(errs...)
}

func (c *Content) validateNarrative(add func(string, ...any)) {
	n := &c.Narrative

	kinds := make(map[string]NodeKind, len(n.Nodes))
	for _, node := range n.Nodes {
		if _, dup := kinds[node.ID]; dup {
			add("narrative node %s: duplicate id", node.ID)
		}
		kinds[node.ID] = node.Kind
	}
	if _, ok := kinds[n.Start]; !ok {
		add("narrative: start node %q not declared", n.Start)
	}

	outgoing := make(map[string]int)
	for _, e := range n.Edges {
		if _, ok := kinds[e.From]; !ok {
			add("narrative edge %s->%s: unknown source", e.From, e.To)
		}
		if _, ok := kinds[e.To]; !ok {
			add("narrative edge %s->%s: unknown target", e.From, e.To)
		}
		outgoing[e.From]++
		if outgoing[e.From] == 2 {
			add("narrative node %s: more than one outgoing edge", e.From)
		}
	}

	for id, kind := range kinds {
		if kind == NodeChoice {
			if _, ok := n.Choices[id]; !ok {
				add("narrative node %s: choice node without choice definition", id)
			}
		}
	}
	for id, ch := range n.Choices {
		if kind, ok := kinds[id]; !ok || kind != NodeChoice {
			add("choice %s: no choice node with that id", id)
		}
		if len(ch.Options) == 0 {
			add("choice %s: no options", id)
		}
		for i := range ch.Options {
			opt := &ch.Options[i]
			where := fmt.Sprintf("choice %s option %d", id, i)
			for _, name := range opt.Condition.vars() {
				c.checkVar(add, where, name)
			}
			c.checkEffect(add, where, &opt.Effect)
		}
	}

	for from, rules := range n.Milestones {
		if _, ok := kinds[from]; !ok {
			add("milestones: unknown node %q", from)
		}
		for i := range rules {
			r := &rules[i]
			where := fmt.Sprintf("milestone %s[%d]", from, i)
			switch {
			case (r.Scene == "") == (r.Choice == ""):
				add("%s: exactly one of scene and choice must be set", where)
			case r.Scene != "":
				if kind, ok := kinds[r.Scene]; !ok || kind == NodeChoice {
					add("%s: scene %q is not a scene or ending node", where, r.Scene)
				}
			default:
				if _, ok := n.Choices[r.Choice]; !ok {
					add("%s: unknown choice %q", where, r.Choice)
				}
			}
			for _, name := range r.When.vars() {
				c.checkVar(add, where, name)
			}
			if r.When.HasBuilding != "" {
				if _, ok := c.buildings[r.When.HasBuilding]; !ok {
					add("%s: unknown building %q", where, r.When.HasBuilding)
				}
			}
		}
	}
}

func (c *Content) checkEffect(add func(string, ...any), where string, e *Effect) {
	for _, name := range e.vars() {
		c.checkVar(add, where, name)
	}
	for name := range e.Add {
		if v := c.Narrative.Variables[name]; v.Kind != KindInt {
			add("%s: add to non-integer variable %q", where, name)
		}
	}
}

// checkVar reports a reference to an undeclared narrative variable. Empty
// names are ignored.
func (c *Content) checkVar(add func(string, ...any), where, name string) {
	if name == "" {
		return
	}
	if _, ok := c.Narrative.Variables[name]; !ok {
		add("%s: undeclared narrative variable %q", where, name)
	}
}

// Declared reports whether name is a known narrative variable.
func (c *Content) Declared(name string) bool {
	_, ok := c.Narrative.Variables[name]
	return ok
}
