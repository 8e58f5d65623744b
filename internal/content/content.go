// Package content holds the static definition tables a game session consumes:
// terrain, buildings, random events, the narrative graph with its choices and
// milestone rules, standing identity bonuses and the game tunables.
// Tables load from YAML; the default valley is embedded in the binary.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

//go:embed valley.yaml
var defaultValley []byte

// Content is the complete, validated set of definitions.
type Content struct {
	Config     Tunables                     `yaml:"config"`
	Terrain    map[world.Terrain]TerrainDef `yaml:"terrain"`
	Buildings  []BuildingDef                `yaml:"buildings"` // Build menu order
	Events     []EventDef                   `yaml:"events"`
	Narrative  NarrativeDef                 `yaml:"narrative"`
	Identities []Identity                   `yaml:"identities"`

	buildings map[world.BuildingID]*BuildingDef
}

// Tunables are the numeric rules of the game.
type Tunables struct {
	GridWidth           int             `yaml:"gridWidth"`
	GridHeight          int             `yaml:"gridHeight"`
	StartWidth          int             `yaml:"startWidth"`
	StartHeight         int             `yaml:"startHeight"`
	DiscoverChance      float64         `yaml:"discoverChance"`
	StartResources      economy.Amounts `yaml:"startResources"`
	ResourceCaps        economy.Amounts `yaml:"resourceCaps"`
	EventChance         float64         `yaml:"eventChance"`
	FoodConsumptionRate int             `yaml:"foodConsumptionRate"`
	StarvationPenalty   int             `yaml:"starvationPenalty"`
	GrowthFoodThreshold int             `yaml:"growthFoodThreshold"`
	Victory             Victory         `yaml:"victory"`
}

// Victory thresholds; all must hold in the same turn.
type Victory struct {
	Population int    `yaml:"population"`
	Buildings  int    `yaml:"buildings"`
	Turn       int    `yaml:"turn"`
	Variable   string `yaml:"variable"`
	Ending     string `yaml:"ending"` // Node shown on victory
}

// TerrainDef describes what can happen on a terrain kind.
type TerrainDef struct {
	Name         string             `yaml:"name"`
	Buildable    bool               `yaml:"buildable"`
	Clearable    bool               `yaml:"clearable"`
	ClearYield   economy.Amounts    `yaml:"clearYield"`
	RestrictedTo []world.BuildingID `yaml:"restrictedTo"`
	Symbol       string             `yaml:"symbol"`
	Color        string             `yaml:"color"`
}

// Allows reports whether the terrain's exclusive list admits id.
func (t TerrainDef) Allows(id world.BuildingID) bool {
	if len(t.RestrictedTo) == 0 {
		return true
	}
	for _, r := range t.RestrictedTo {
		if r == id {
			return true
		}
	}
	return false
}

// BuildingDef is an immutable building definition.
type BuildingDef struct {
	ID                 world.BuildingID `yaml:"id"`
	Name               string           `yaml:"name"`
	Description        string           `yaml:"description"`
	Symbol             string           `yaml:"symbol"`
	Color              string           `yaml:"color"`
	Cost               economy.Amounts  `yaml:"cost"`
	PopulationRequired int              `yaml:"populationRequired"`
	Production         economy.Amounts  `yaml:"production"`
	Effect             BuildingEffect   `yaml:"effect"`
	Terrain            []world.Terrain  `yaml:"terrain"`
	UnlockCondition    string           `yaml:"unlockCondition"`
	UnlockHint         string           `yaml:"unlockHint"`
	NarrativeTrigger   string           `yaml:"narrativeTrigger"`
}

// BuildingEffect is applied once when the building is placed.
type BuildingEffect struct {
	MaxPopulation    int `yaml:"maxPopulation"`
	ResourceCapBonus int `yaml:"resourceCapBonus"`
	Defense          int `yaml:"defense"`
}

// AllowsTerrain reports whether the building may stand on t.
func (b *BuildingDef) AllowsTerrain(t world.Terrain) bool {
	for _, allowed := range b.Terrain {
		if allowed == t {
			return true
		}
	}
	return false
}

// EventDef is a one-shot random world event.
type EventDef struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Text   string `yaml:"text"`
	Effect Effect `yaml:"effect"`
}

// Identity grants a standing per-turn bonus while a variable holds a value.
type Identity struct {
	Variable string          `yaml:"variable"`
	Value    Value           `yaml:"value"`
	Label    string          `yaml:"label"`
	PerTurn  economy.Amounts `yaml:"perTurn"`
}

// Building looks up a definition by id.
func (c *Content) Building(id world.BuildingID) (*BuildingDef, bool) {
	b, ok := c.buildings[id]
	return b, ok
}

// TerrainDef looks up a terrain definition. Unknown terrain is never buildable.
func (c *Content) TerrainDef(t world.Terrain) (TerrainDef, bool) {
	d, ok := c.Terrain[t]
	return d, ok
}

// Event looks up an event by id.
func (c *Content) Event(id string) (*EventDef, bool) {
	for i := range c.Events {
		if c.Events[i].ID == id {
			return &c.Events[i], true
		}
	}
	return nil, false
}

// GenConfig derives terrain generation parameters from the tunables.
func (c *Content) GenConfig(strategy world.Strategy) world.GenConfig {
	cfg := world.DefaultGenConfig()
	cfg.Width = c.Config.GridWidth
	cfg.Height = c.Config.GridHeight
	cfg.StartWidth = c.Config.StartWidth
	cfg.StartHeight = c.Config.StartHeight
	cfg.DiscoverPct = c.Config.DiscoverChance
	cfg.Strategy = strategy
	return cfg
}

// Default returns the embedded valley content.
func Default() (*Content, error) {
	return Load(bytes.NewReader(defaultValley))
}

// LoadFile reads content from a YAML file.
func LoadFile(path string) (*Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates content. Unknown keys are rejected.
func Load(r io.Reader) (*Content, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	c.index()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	return &c, nil
}

func (c *Content) index() {
	c.buildings = make(map[world.BuildingID]*BuildingDef, len(c.Buildings))
	for i := range c.Buildings {
		c.buildings[c.Buildings[i].ID] = &c.Buildings[i]
	}
}
