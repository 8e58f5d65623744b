package economy

// Ledger holds a settlement's stockpile together with its storage caps.
// Every mutation goes through Set, so stored resources stay within
// [0, cap] and population within [0, maxPopulation].
type Ledger struct {
	Amounts Amounts `json:"amounts"`
	Caps    Amounts `json:"caps"`
}

// NewLedger creates a ledger from starting amounts and caps. Inputs are copied
// and every starting amount is clamped into range.
func NewLedger(start, caps Amounts) *Ledger {
	l := &Ledger{Amounts: make(Amounts, len(All)), Caps: caps.Clone()}
	// MaxPopulation first so the population bound is known.
	l.Set(MaxPopulation, start[MaxPopulation])
	for _, r := range All {
		if r != MaxPopulation {
			l.Set(r, start[r])
		}
	}
	return l
}

// Get returns the current amount of r.
func (l *Ledger) Get(r Resource) int {
	return l.Amounts[r]
}

// Cap returns the upper bound for r.
func (l *Ledger) Cap(r Resource) int {
	switch {
	case r.Capped():
		if c, ok := l.Caps[r]; ok {
			return c
		}
		return Unbounded
	case r == Population:
		return l.Amounts[MaxPopulation]
	default:
		return int(^uint(0) >> 1)
	}
}

// Set stores v clamped into the valid range for r.
func (l *Ledger) Set(r Resource, v int) {
	l.Amounts[r] = Clamp(v, 0, l.Cap(r))
	if r == MaxPopulation {
		l.Amounts[Population] = Clamp(l.Amounts[Population], 0, l.Amounts[MaxPopulation])
	}
}

// Add applies delta to r and returns the change actually applied after clamping.
func (l *Ledger) Add(r Resource, delta int) int {
	before := l.Amounts[r]
	l.Set(r, before+delta)
	return l.Amounts[r] - before
}

// Shortfall returns the first resource, in display order, that cost exceeds.
func (l *Ledger) Shortfall(cost Amounts) (Resource, bool) {
	for _, r := range All {
		if need, ok := cost[r]; ok && l.Amounts[r] < need {
			return r, true
		}
	}
	return 0, false
}

// Deduct subtracts every cost component. Callers check Shortfall first.
func (l *Ledger) Deduct(cost Amounts) {
	for _, r := range All {
		if need, ok := cost[r]; ok {
			l.Add(r, -need)
		}
	}
}

// RaiseCaps increases the cap of every stored resource by bonus.
func (l *Ledger) RaiseCaps(bonus int) {
	for _, r := range Stored {
		l.Caps[r] = l.Cap(r) + bonus
	}
}

// Snapshot returns a copy of the current amounts.
func (l *Ledger) Snapshot() Amounts {
	return l.Amounts.Clone()
}

// InRange reports whether every amount satisfies its bound.
func (l *Ledger) InRange() bool {
	for _, r := range All {
		v := l.Amounts[r]
		if v < 0 || v > l.Cap(r) {
			return false
		}
	}
	return true
}
