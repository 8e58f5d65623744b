package narrative

import (
	"fmt"
	"testing"

	"github.com/ForkArcade/river-valley-settlement/internal/content"
	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

type view struct {
	turn, buildings, defense int
	res                      economy.Amounts
	has                      map[world.BuildingID]bool
	ruins                    bool
	m                        *Machine
}

func (v view) Turn() int                            { return v.turn }
func (v view) BuildingCount() int                   { return v.buildings }
func (v view) HasBuilding(id world.BuildingID) bool { return v.has[id] }
func (v view) Resource(r economy.Resource) int      { return v.res[r] }
func (v view) Defense() int                         { return v.defense }
func (v view) RuinsDiscovered() bool                { return v.ruins }
func (v view) Var(name string) content.Value {
	if v.m == nil {
		return content.Null
	}
	return v.m.Get(name)
}

func defaultMachine(t *testing.T) *Machine {
	t.Helper()
	c, err := content.Default()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	return New(&c.Narrative)
}

func TestInitResetsVariables(t *testing.T) {
	m := defaultMachine(t)
	m.Set("town_hall_built", content.Bool(true), "test")
	m.Transition("festival")
	m.Init()

	if m.Current() != "founding" {
		t.Fatalf("current = %s", m.Current())
	}
	if m.Get("town_hall_built").Truthy() {
		t.Fatal("variable survived Init")
	}
	if len(m.History()) != 0 {
		t.Fatal("history survived Init")
	}
}

func TestSetRecordsHistoryBounded(t *testing.T) {
	m := defaultMachine(t)
	m.Set("turns", content.Int(3), "Turn 3")
	m.Set("narrative_bonus", content.Int(200), "bonus")
	h := m.History()
	if len(h) != 2 || h[1].Turn != 3 || h[1].Reason != "bonus" {
		t.Fatalf("history = %+v", h)
	}
	for i := 0; i < HistoryLimit+50; i++ {
		m.Set("happiness", content.Int(i), fmt.Sprintf("tick %d", i))
	}
	h = m.History()
	if len(h) != HistoryLimit {
		t.Fatalf("history len = %d, want %d", len(h), HistoryLimit)
	}
	if last := h[len(h)-1]; last.Value.AsInt() != HistoryLimit+49 {
		t.Fatalf("last = %+v", last)
	}
}

func TestSetUndeclaredStillStores(t *testing.T) {
	m := defaultMachine(t)
	m.Set("mystery", content.String("x"), "")
	if got := m.Get("mystery"); !got.Equal(content.String("x")) {
		t.Fatalf("mystery = %v", got)
	}
}

func TestCheckFirstMatchingRuleWins(t *testing.T) {
	m := defaultMachine(t)
	v := view{m: m}
	if a := m.Check(v); a.Kind != ActionNone {
		t.Fatalf("founding with no buildings: %+v", a)
	}
	v.buildings = 1
	if a := m.Check(v); a.Kind != ActionScene || a.Target != "first_shelter" {
		t.Fatalf("founding with a building: %+v", a)
	}

	m.Transition("the_ruins")
	v.turn = 12
	v.ruins = true
	if a := m.Check(v); a.Kind != ActionChoice || a.Target != "the_ruins" {
		t.Fatalf("ruins discovered: %+v", a)
	}
	v.ruins = false
	if a := m.Check(v); a.Kind != ActionScene || a.Target != "first_winter" {
		t.Fatalf("ruins fallback: %+v", a)
	}
}

func TestCheckUnknownNodeNoop(t *testing.T) {
	m := defaultMachine(t)
	m.Transition("legacy")
	if a := m.Check(view{turn: 100, buildings: 100}); a.Kind != ActionNone {
		t.Fatalf("action at ending: %+v", a)
	}
}

func TestPresentFiltersOptions(t *testing.T) {
	m := defaultMachine(t)
	p, skip, ok := m.Present("bandit_threat", view{res: economy.Amounts{economy.Happiness: 20}})
	if !ok || p == nil || skip != "" {
		t.Fatalf("present = %v %q %v", p, skip, ok)
	}
	if m.Current() != "bandit_threat" {
		t.Fatalf("current = %s", m.Current())
	}
	if len(p.Options) != 2 || p.Options[0].Label != "Pay tribute" || p.Options[1].Label != "Negotiate" {
		t.Fatalf("options = %+v", p.Options)
	}
}

func TestPresentAllFilteredSkipsToSuccessor(t *testing.T) {
	def := &content.NarrativeDef{
		Start: "a",
		Nodes: []content.Node{
			{ID: "a", Kind: content.NodeScene},
			{ID: "gate", Kind: content.NodeChoice},
			{ID: "b", Kind: content.NodeScene},
		},
		Edges: []content.Edge{{From: "a", To: "gate"}, {From: "gate", To: "b"}},
		Choices: map[string]content.Choice{
			"gate": {Text: "?", Options: []content.Option{
				{Label: "strong", Condition: &content.Condition{MinDefense: 5}},
				{Label: "rich", Condition: &content.Condition{MinPopulation: 100}},
			}},
		},
	}
	m := New(def)
	p, skip, ok := m.Present("gate", view{})
	if !ok || p != nil || skip != "b" {
		t.Fatalf("present = %v %q %v, want skip to b", p, skip, ok)
	}
}

func TestPresentUnknownChoice(t *testing.T) {
	m := defaultMachine(t)
	if _, _, ok := m.Present("nope", view{}); ok {
		t.Fatal("unknown choice presented")
	}
	if m.Current() != "founding" {
		t.Fatalf("current moved to %s", m.Current())
	}
}

func TestResolve(t *testing.T) {
	m := defaultMachine(t)
	p, _, _ := m.Present("strangers_arrive", view{})

	if _, _, ok := m.Resolve(nil, "strangers_arrive", 0); ok {
		t.Fatal("resolved without pending")
	}
	if _, _, ok := m.Resolve(p, "the_ruins", 0); ok {
		t.Fatal("resolved mismatched id")
	}
	if _, _, ok := m.Resolve(p, "strangers_arrive", 5); ok {
		t.Fatal("resolved out of range option")
	}
	opt, next, ok := m.Resolve(p, "strangers_arrive", 0)
	if !ok || opt.Label != "Welcome them" || next != "the_ruins" {
		t.Fatalf("resolve = %q %q %v", opt.Label, next, ok)
	}
}
