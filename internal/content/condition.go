package content

import (
	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

// View is the read-only game state a Condition is evaluated against.
type View interface {
	Turn() int
	BuildingCount() int
	HasBuilding(id world.BuildingID) bool
	Resource(r economy.Resource) int
	Defense() int
	RuinsDiscovered() bool
	Var(name string) Value
}

// Condition is a declarative predicate over game state. Every field that is
// set must hold; the zero Condition always holds.
type Condition struct {
	MinBuildings    int              `yaml:"minBuildings"`
	HasBuilding     world.BuildingID `yaml:"hasBuilding"`
	MinPopulation   int              `yaml:"minPopulation"`
	MinHappiness    int              `yaml:"minHappiness"`
	MinTurn         int              `yaml:"minTurn"`
	MinDefense      int              `yaml:"minDefense"`
	MaxDefense      *int             `yaml:"maxDefense"`
	RuinsDiscovered bool             `yaml:"ruinsDiscovered"`
	VarsTrue        []string         `yaml:"varsTrue"`
	VarEquals       map[string]Value `yaml:"varEquals"`
}

// Holds evaluates the condition. A nil condition always holds.
func (c *Condition) Holds(v View) bool {
	if c == nil {
		return true
	}
	if c.MinBuildings > 0 && v.BuildingCount() < c.MinBuildings {
		return false
	}
	if c.HasBuilding != "" && !v.HasBuilding(c.HasBuilding) {
		return false
	}
	if c.MinPopulation > 0 && v.Resource(economy.Population) < c.MinPopulation {
		return false
	}
	if c.MinHappiness > 0 && v.Resource(economy.Happiness) < c.MinHappiness {
		return false
	}
	if c.MinTurn > 0 && v.Turn() < c.MinTurn {
		return false
	}
	if c.MinDefense > 0 && v.Defense() < c.MinDefense {
		return false
	}
	if c.MaxDefense != nil && v.Defense() > *c.MaxDefense {
		return false
	}
	if c.RuinsDiscovered && !v.RuinsDiscovered() {
		return false
	}
	for _, name := range c.VarsTrue {
		if !v.Var(name).Truthy() {
			return false
		}
	}
	for name, want := range c.VarEquals {
		if !v.Var(name).Equal(want) {
			return false
		}
	}
	return true
}

// vars lists the narrative variables the condition reads.
func (c *Condition) vars() []string {
	if c == nil {
		return nil
	}
	out := append([]string(nil), c.VarsTrue...)
	for name := range c.VarEquals {
		out = append(out, name)
	}
	return out
}

// Effect is a declarative state mutation. Fields apply in declaration order:
// max population, resources, population, defense, ruins reveal, variables.
type Effect struct {
	When          *Condition       `yaml:"when"` // Effect is skipped unless this holds
	MaxPopulation int              `yaml:"maxPopulation"`
	Resources     economy.Amounts  `yaml:"resources"`
	Population    int              `yaml:"population"` // Losses never drop population below 1
	Defense       int              `yaml:"defense"`
	RevealRuins   bool             `yaml:"revealRuins"`
	Set           map[string]Value `yaml:"set"`
	Add           map[string]int   `yaml:"add"`
}

func (e *Effect) vars() []string {
	out := e.When.vars()
	for name := range e.Set {
		out = append(out, name)
	}
	for name := range e.Add {
		out = append(out, name)
	}
	return out
}
