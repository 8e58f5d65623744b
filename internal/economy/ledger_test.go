package economy

import "testing"

func startLedger() *Ledger {
	return NewLedger(
		Amounts{Gold: 10, Food: 20, Wood: 15, Stone: 0, Population: 5, MaxPopulation: 5, Happiness: 5},
		Amounts{Gold: 50, Food: 50, Wood: 50, Stone: 50},
	)
}

func TestNewLedgerClampsStart(t *testing.T) {
	l := NewLedger(Amounts{Wood: 80, Population: 9, MaxPopulation: 4}, Amounts{Wood: 50})
	if got := l.Get(Wood); got != 50 {
		t.Fatalf("wood = %d, want 50", got)
	}
	if got := l.Get(Population); got != 4 {
		t.Fatalf("population = %d, want 4", got)
	}
}

func TestAddClampsToCap(t *testing.T) {
	l := startLedger()
	applied := l.Add(Wood, 100)
	if applied != 35 {
		t.Fatalf("applied = %d, want 35", applied)
	}
	if l.Get(Wood) != 50 {
		t.Fatalf("wood = %d, want 50", l.Get(Wood))
	}
	l.Add(Gold, -100)
	if l.Get(Gold) != 0 {
		t.Fatalf("gold = %d, want 0", l.Get(Gold))
	}
}

func TestHappinessUncapped(t *testing.T) {
	l := startLedger()
	l.Add(Happiness, 5000)
	if l.Get(Happiness) != 5005 {
		t.Fatalf("happiness = %d, want 5005", l.Get(Happiness))
	}
}

func TestPopulationBoundedByMax(t *testing.T) {
	l := startLedger()
	l.Add(Population, 3)
	if l.Get(Population) != 5 {
		t.Fatalf("population = %d, want 5", l.Get(Population))
	}
	l.Add(MaxPopulation, 5)
	l.Add(Population, 3)
	if l.Get(Population) != 8 {
		t.Fatalf("population = %d, want 8", l.Get(Population))
	}
}

func TestUncappedStoredUsesDefault(t *testing.T) {
	l := NewLedger(Amounts{}, Amounts{})
	if l.Cap(Gold) != Unbounded {
		t.Fatalf("cap = %d, want %d", l.Cap(Gold), Unbounded)
	}
}

func TestShortfallAndDeduct(t *testing.T) {
	l := startLedger()
	cost := Amounts{Wood: 8, Stone: 5}
	r, short := l.Shortfall(cost)
	if !short || r != Stone {
		t.Fatalf("shortfall = %v %v, want stone true", r, short)
	}
	l.Add(Stone, 5)
	if _, short := l.Shortfall(cost); short {
		t.Fatal("expected affordable")
	}
	l.Deduct(cost)
	if l.Get(Wood) != 7 || l.Get(Stone) != 0 {
		t.Fatalf("after deduct wood=%d stone=%d", l.Get(Wood), l.Get(Stone))
	}
}

func TestRaiseCaps(t *testing.T) {
	l := startLedger()
	l.RaiseCaps(50)
	for _, r := range Stored {
		if l.Cap(r) != 100 {
			t.Errorf("%s cap = %d, want 100", r, l.Cap(r))
		}
	}
	if !l.InRange() {
		t.Fatal("ledger out of range")
	}
}

func TestResourceText(t *testing.T) {
	var r Resource
	if err := r.UnmarshalText([]byte("maxPopulation")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r != MaxPopulation {
		t.Fatalf("got %v", r)
	}
	if err := r.UnmarshalText([]byte("mana")); err == nil {
		t.Fatal("expected error for unknown resource")
	}
	if s := (Amounts{Wood: 5, Stone: 3}).String(); s != "wood 5, stone 3" {
		t.Fatalf("String = %q", s)
	}
}
