// Package state implements the nested state tree rebuilt from partial
// config updates, addressed by dot-separated paths like
// "Root.App.PrbsRx[0].FrameCnt".
package state

import "fmt"

// Kind identifies the variant held by a Node.
type Kind int

const (
	Absent Kind = iota
	Scalar
	Mapping
	Sequence
)

// Node is one vertex of the state tree. Exactly one of the variant
// fields is meaningful, selected by kind.
type Node struct {
	kind   Kind
	value  any
	fields map[string]*Node
	items  []*Node
}

// NewMapping returns an empty mapping node, the root shape of every
// state tree.
func NewMapping() *Node {
	return &Node{kind: Mapping, fields: map[string]*Node{}}
}

func newSequence() *Node { return &Node{kind: Sequence} }

func newAbsent() *Node { return &Node{kind: Absent} }

// FromValue converts a plain Go value, as produced by yaml.Unmarshal,
// into a node subtree. Nested maps and slices are converted wholesale;
// nil becomes an absent marker.
func FromValue(v any) *Node {
	switch t := v.(type) {
	case nil:
		return newAbsent()
	case map[string]any:
		m := NewMapping()
		for k, e := range t {
			m.fields[k] = FromValue(e)
		}
		return m
	case map[any]any:
		m := NewMapping()
		for k, e := range t {
			m.fields[keyString(k)] = FromValue(e)
		}
		return m
	case []any:
		s := newSequence()
		for _, e := range t {
			s.items = append(s.items, FromValue(e))
		}
		return s
	default:
		return &Node{kind: Scalar, value: v}
	}
}

// Value converts the subtree back into plain Go values. Absent nodes
// become nil.
func (n *Node) Value() any {
	switch n.kind {
	case Mapping:
		m := make(map[string]any, len(n.fields))
		for k, e := range n.fields {
			m[k] = e.Value()
		}
		return m
	case Sequence:
		s := make([]any, len(n.items))
		for i, e := range n.items {
			s[i] = e.Value()
		}
		return s
	case Scalar:
		return n.value
	default:
		return nil
	}
}

// Kind returns the variant of this node.
func (n *Node) Kind() Kind { return n.kind }

// keyString renders a non-string YAML key as a mapping key.
func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
