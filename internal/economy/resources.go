// Package economy provides the settlement's resource kinds, stockpile and storage caps.
package economy

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Resource enumerates the quantities tracked by a settlement.
type Resource uint8

const (
	Gold          Resource = iota
	Food                   // Consumed by population every turn
	Wood                   // Main construction material
	Stone                  // Advanced construction material
	Population             // Bounded by MaxPopulation
	MaxPopulation          // Raised by housing
	Happiness              // Accumulates without a cap
)

// All lists every resource kind in display order.
var All = [...]Resource{Gold, Food, Wood, Stone, Population, MaxPopulation, Happiness}

// Stored lists the resource kinds held in storage and limited by caps.
var Stored = [...]Resource{Gold, Food, Wood, Stone}

// Unbounded is the cap assumed for a stored resource with no configured cap.
const Unbounded = 999

var resourceNames = [...]string{
	Gold:          "gold",
	Food:          "food",
	Wood:          "wood",
	Stone:         "stone",
	Population:    "population",
	MaxPopulation: "maxPopulation",
	Happiness:     "happiness",
}

// String returns the content-table name of the resource.
func (r Resource) String() string {
	if int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return fmt.Sprintf("resource(%d)", r)
}

// ParseResource maps a content-table name back to a Resource.
func ParseResource(s string) (Resource, bool) {
	for i, name := range resourceNames {
		if strings.EqualFold(name, s) {
			return Resource(i), true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (r Resource) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so content tables can key by name.
func (r *Resource) UnmarshalText(text []byte) error {
	res, ok := ParseResource(string(text))
	if !ok {
		return fmt.Errorf("unknown resource %q", text)
	}
	*r = res
	return nil
}

// Capped reports whether the resource is limited by a storage cap.
func (r Resource) Capped() bool {
	return r <= Stone
}

// Amounts maps resource kinds to integer quantities.
type Amounts map[Resource]int

// Clone returns an independent copy.
func (a Amounts) Clone() Amounts {
	out := make(Amounts, len(a))
	for r, v := range a {
		out[r] = v
	}
	return out
}

// String renders non-zero amounts in display order, e.g. "wood 5, stone 3".
func (a Amounts) String() string {
	var parts []string
	for _, r := range All {
		if v, ok := a[r]; ok && v != 0 {
			parts = append(parts, fmt.Sprintf("%s %d", r, v))
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
