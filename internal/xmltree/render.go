package xmltree

import (
	"fmt"

	"fjacquet/iso20022-gen/internal/msgerror"

	"github.com/beevik/etree"
)

// IndentSpaces is the indentation width of rendered fragments.
const IndentSpaces = 2

// RenderOptions control prefixing and root wrapping.
type RenderOptions struct {
	// Prefix qualifies every element key as "Prefix:key".
	Prefix string
	// Namespace is declared on the fragment's root element.
	Namespace string
	// RootName wraps the whole tree in a synthetic root element.
	RootName string
}

// Render prunes, prefixes and optionally wraps tree, then renders it as an
// indented XML fragment without a prolog or trailing newline.
//
// With RootName set, the tree becomes the content of a synthetic element
// named "Prefix:RootName" carrying the namespace declaration. Without it, the
// declaration goes on the tree's own single top-level element; a tree with
// several top-level elements and a namespace is rejected.
func Render(tree Node, opts RenderOptions) (string, error) {
	if tree == nil {
		return "", &msgerror.SerializationError{Reason: "tree is nil"}
	}

	t := Prune(tree)
	if opts.Prefix != "" {
		t = ApplyPrefix(t, opts.Prefix)
	}

	root, ok := t.(*Mapping)
	if !ok || root == nil {
		return "", &msgerror.SerializationError{Reason: fmt.Sprintf("document root must be a mapping, got %s", kindOf(t))}
	}

	if opts.RootName != "" {
		root = wrapRoot(root, opts)
	} else if opts.Namespace != "" {
		var err error
		if root, err = declareOnRoot(root, opts); err != nil {
			return "", err
		}
	}

	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true

	for _, key := range root.keys {
		if !isElementKey(key) {
			return "", &msgerror.SerializationError{Path: key, Reason: "attributes and text are not allowed at document level"}
		}
		if err := renderValue(&doc.Element, key, root.values[key], key); err != nil {
			return "", err
		}
	}

	doc.IndentWithSettings(&etree.IndentSettings{
		Spaces:                     IndentSpaces,
		SuppressTrailingWhitespace: true,
	})
	return doc.WriteToString()
}

func namespaceAttr(prefix string) string {
	if prefix == "" {
		return AttrPrefix + "xmlns"
	}
	return AttrPrefix + "xmlns:" + prefix
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + ":" + name
}

func wrapRoot(content *Mapping, opts RenderOptions) *Mapping {
	inner := NewMapping()
	for _, k := range content.keys {
		inner.Set(k, content.values[k])
	}
	if opts.Namespace != "" {
		inner.Set(namespaceAttr(opts.Prefix), Scalar(opts.Namespace))
	}
	return NewMapping().Set(qualify(opts.Prefix, opts.RootName), inner)
}

func declareOnRoot(tree *Mapping, opts RenderOptions) (*Mapping, error) {
	var rootKey string
	for _, k := range tree.keys {
		if !isElementKey(k) {
			continue
		}
		if rootKey != "" {
			return nil, &msgerror.SerializationError{
				Reason: "namespace declaration needs a single top-level element; set RootName to wrap several",
			}
		}
		rootKey = k
	}
	if rootKey == "" {
		return nil, &msgerror.SerializationError{Reason: "tree has no top-level element to carry the namespace"}
	}

	var element *Mapping
	switch v := tree.values[rootKey].(type) {
	case *Mapping:
		if v == nil {
			return nil, &msgerror.SerializationError{Path: rootKey, Reason: "nil mapping"}
		}
		element = NewMapping()
		for _, k := range v.keys {
			element.Set(k, v.values[k])
		}
	case Scalar:
		element = NewMapping().Set(TextKey, v)
	default:
		return nil, &msgerror.SerializationError{Path: rootKey, Reason: fmt.Sprintf("top-level element must be a mapping, got %s", kindOf(v))}
	}
	element.Set(namespaceAttr(opts.Prefix), Scalar(opts.Namespace))

	out := NewMapping()
	for _, k := range tree.keys {
		if k == rootKey {
			out.Set(k, element)
			continue
		}
		out.Set(k, tree.values[k])
	}
	return out, nil
}

func renderValue(parent *etree.Element, key string, value Node, path string) error {
	switch v := value.(type) {
	case Scalar:
		parent.CreateElement(key).SetText(string(v))
	case *Mapping:
		if v == nil {
			return &msgerror.SerializationError{Path: path, Reason: "nil mapping"}
		}
		return renderMapping(parent.CreateElement(key), v, path)
	case Sequence:
		for i, item := range v {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			if _, nested := item.(Sequence); nested {
				return &msgerror.SerializationError{Path: itemPath, Reason: "sequence cannot directly contain a sequence"}
			}
			if err := renderValue(parent, key, item, itemPath); err != nil {
				return err
			}
		}
	case absentNode:
	default:
		return &msgerror.SerializationError{Path: path, Reason: fmt.Sprintf("unrecognized value %s", kindOf(v))}
	}
	return nil
}

func renderMapping(el *etree.Element, m *Mapping, path string) error {
	for _, k := range m.keys {
		v := m.values[k]
		childPath := path + "/" + k
		switch {
		case isAttrKey(k):
			s, ok := v.(Scalar)
			if !ok {
				return &msgerror.SerializationError{Path: childPath, Reason: fmt.Sprintf("attribute value must be a scalar, got %s", kindOf(v))}
			}
			el.CreateAttr(k[len(AttrPrefix):], string(s))
		case k == TextKey:
			s, ok := v.(Scalar)
			if !ok {
				return &msgerror.SerializationError{Path: childPath, Reason: fmt.Sprintf("text value must be a scalar, got %s", kindOf(v))}
			}
			if s != "" {
				el.CreateText(string(s))
			}
		default:
			if err := renderValue(el, k, v, childPath); err != nil {
				return err
			}
		}
	}
	return nil
}

func kindOf(n Node) string {
	switch n.(type) {
	case nil:
		return "nil"
	case *Mapping:
		return "mapping"
	case Sequence:
		return "sequence"
	case Scalar:
		return "scalar"
	case absentNode:
		return "absent"
	default:
		return fmt.Sprintf("%T", n)
	}
}
