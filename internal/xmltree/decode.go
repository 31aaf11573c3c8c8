package xmltree

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Decode reads a single YAML or JSON document and converts it into a tree,
// keeping key order. JSON null and YAML ~ become Absent.
func Decode(r io.Reader) (Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty tree document")
		}
		return nil, fmt.Errorf("failed to decode tree document: %w", err)
	}
	return FromYAML(&doc)
}

// FromYAML converts a parsed YAML node into a tree.
func FromYAML(n *yaml.Node) (Node, error) {
	if n == nil {
		return nil, fmt.Errorf("nil yaml node")
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Absent, nil
		}
		return FromYAML(n.Content[0])
	case yaml.AliasNode:
		return FromYAML(n.Alias)
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return Absent, nil
		}
		return Scalar(n.Value), nil
	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := FromYAML(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			v, err := FromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, v)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}
