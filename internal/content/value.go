package content

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind tags the type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindString
)

// Value is a narrative variable value: null, bool, int or string.
type Value struct {
	Kind Kind
	B    bool
	I    int
	S    string
}

// Null is the unset value.
var Null = Value{}

// Bool wraps a bool.
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }

// Int wraps an int.
func Int(i int) Value { return Value{Kind: KindInt, I: i} }

// String wraps a string.
func String(s string) Value { return Value{Kind: KindString, S: s} }

// Truthy follows the usual scripting rules: false, 0, "" and null are false.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.B
	case KindInt:
		return v.I != 0
	case KindString:
		return v.S != ""
	default:
		return false
	}
}

// AsInt returns the numeric value; non-numeric values count as 0.
func (v Value) AsInt() int {
	if v.Kind == KindInt {
		return v.I
	}
	return 0
}

// Equal compares kind and payload.
func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindInt:
		return strconv.Itoa(v.I)
	case KindString:
		return v.S
	default:
		return "null"
	}
}

// Any returns the payload as a plain Go value, nil for null.
func (v Value) Any() any {
	switch v.Kind {
	case KindBool:
		return v.B
	case KindInt:
		return v.I
	case KindString:
		return v.S
	default:
		return nil
	}
}

// UnmarshalYAML decodes a scalar into the matching kind.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: narrative value must be a scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		*v = Null
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = Bool(b)
	case "!!int":
		var i int
		if err := node.Decode(&i); err != nil {
			return err
		}
		*v = Int(i)
	case "!!str":
		*v = String(node.Value)
	default:
		return fmt.Errorf("line %d: unsupported narrative value %q", node.Line, node.Value)
	}
	return nil
}
