package content

import (
	"fmt"
	"strings"
)

// NodeKind classifies narrative graph nodes.
type NodeKind uint8

const (
	NodeScene NodeKind = iota
	NodeChoice
	NodeEnding
)

var nodeKindNames = [...]string{NodeScene: "scene", NodeChoice: "choice", NodeEnding: "ending"}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NodeKind) UnmarshalText(text []byte) error {
	for i, name := range nodeKindNames {
		if strings.EqualFold(name, string(text)) {
			*k = NodeKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", text)
}

// NarrativeDef is the authored story: variables, graph, choices and the
// milestone table that drives automatic advancement.
type NarrativeDef struct {
	Start      string            `yaml:"start"`
	Variables  map[string]Value  `yaml:"variables"`
	Nodes      []Node            `yaml:"nodes"`
	Edges      []Edge            `yaml:"edges"`
	Choices    map[string]Choice `yaml:"choices"`
	Milestones map[string][]Rule `yaml:"milestones"` // Current node → ordered rules
}

// Node is one story beat.
type Node struct {
	ID    string   `yaml:"id"`
	Label string   `yaml:"label"`
	Kind  NodeKind `yaml:"kind"`
	Text  string   `yaml:"text"`
	Color string   `yaml:"color"`
}

// Edge links a node to its successor.
type Edge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Choice is a player decision attached to a choice node of the same id.
type Choice struct {
	Text    string   `yaml:"text"`
	Options []Option `yaml:"options"`
}

// Option is one answer to a Choice.
type Option struct {
	Label     string     `yaml:"label"`
	Text      string     `yaml:"text"`
	Condition *Condition `yaml:"condition"` // Nil means always available
	Effect    Effect     `yaml:"effect"`
}

// Rule is one milestone: when the condition holds, move to Scene or present
// Choice. Exactly one of Scene and Choice is set.
type Rule struct {
	When   Condition `yaml:"when"`
	Scene  string    `yaml:"scene"`
	Choice string    `yaml:"choice"`
}

// Node looks up a node by id.
func (n *NarrativeDef) Node(id string) (Node, bool) {
	for _, node := range n.Nodes {
		if node.ID == id {
			return node, true
		}
	}
	return Node{}, false
}

// Successor returns the target of the single edge leaving id.
func (n *NarrativeDef) Successor(id string) (string, bool) {
	for _, e := range n.Edges {
		if e.From == id {
			return e.To, true
		}
	}
	return "", false
}
