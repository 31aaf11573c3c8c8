// Package xmltree holds the ordered key/value tree that message builders
// produce and renders it into namespaced XML fragments.
//
// Keys starting with "@" become attributes, the key "#text" becomes text
// content and every other key becomes a child element. Key order is kept
// all the way into the rendered output.
package xmltree

import "strings"

const (
	// AttrPrefix marks a mapping key as an attribute.
	AttrPrefix = "@"
	// TextKey marks a mapping key as the element's text content.
	TextKey = "#text"
)

// Node is one value in a tree: *Mapping, Sequence, Scalar or Absent.
type Node interface {
	node()
}

// Scalar is a leaf text value.
type Scalar string

// Sequence renders as repeated sibling elements sharing the parent key's tag.
type Sequence []Node

type absentNode struct{}

// Absent marks an optional field that was not supplied. It is removed by
// Prune and never rendered.
var Absent Node = absentNode{}

// Mapping is an ordered set of unique keys.
type Mapping struct {
	keys   []string
	values map[string]Node
}

func (*Mapping) node()   {}
func (Sequence) node()   {}
func (Scalar) node()     {}
func (absentNode) node() {}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Node)}
}

// Set stores value under key. Setting an existing key replaces its value in
// place and keeps its original position.
func (m *Mapping) Set(key string, value Node) *Mapping {
	if m.values == nil {
		m.values = make(map[string]Node)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, if present.
func (m *Mapping) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			return
		}
	}
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Text returns a Scalar, or Absent when s is empty. Builders use it for
// optional payload fields.
func Text(s string) Node {
	if s == "" {
		return Absent
	}
	return Scalar(s)
}

// IsAbsent reports whether n is the Absent marker.
func IsAbsent(n Node) bool {
	_, ok := n.(absentNode)
	return ok
}

func isAttrKey(key string) bool {
	return strings.HasPrefix(key, AttrPrefix)
}

func isElementKey(key string) bool {
	return !isAttrKey(key) && key != TextKey
}

// Prune returns a copy of n with every Absent value removed at any depth,
// including Absent members of sequences. Prune is idempotent.
func Prune(n Node) Node {
	switch v := n.(type) {
	case *Mapping:
		if v == nil {
			return n
		}
		out := NewMapping()
		for _, k := range v.keys {
			child := v.values[k]
			if IsAbsent(child) {
				continue
			}
			out.Set(k, Prune(child))
		}
		return out
	case Sequence:
		out := make(Sequence, 0, len(v))
		for _, item := range v {
			if IsAbsent(item) {
				continue
			}
			out = append(out, Prune(item))
		}
		return out
	default:
		return n
	}
}

// ApplyPrefix returns a copy of n in which every element key is qualified as
// "prefix:key". Attribute and text keys are left alone. It is not idempotent.
func ApplyPrefix(n Node, prefix string) Node {
	if prefix == "" {
		return n
	}
	switch v := n.(type) {
	case *Mapping:
		if v == nil {
			return n
		}
		out := NewMapping()
		for _, k := range v.keys {
			key := k
			if isElementKey(k) {
				key = prefix + ":" + k
			}
			out.Set(key, ApplyPrefix(v.values[k], prefix))
		}
		return out
	case Sequence:
		out := make(Sequence, len(v))
		for i, item := range v {
			out[i] = ApplyPrefix(item, prefix)
		}
		return out
	default:
		return n
	}
}
