// Package envelope resolves, from a Fedwire/FedNow style envelope schema,
// the wrapper elements that carry a given ISO 20022 message, and nests
// header and body fragments inside them.
//
// The schema is never compiled. A regex pass collects the namespace
// prefixes declared anywhere in the text and a light structural pass
// collects element declarations and the references in their sequences.
package envelope

import (
	"regexp"
	"strings"

	"fjacquet/iso20022-gen/internal/msgerror"

	"github.com/beevik/etree"
)

// XSDNamespace is the XML Schema namespace.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema"

// DocumentRef is the local name of the reference that marks a message element.
const DocumentRef = "Document"

var xmlnsPattern = regexp.MustCompile(`xmlns:([a-zA-Z0-9]+)\s*=\s*(?:"([^"]+)"|'([^']+)')`)

// QName is a possibly prefixed reference such as "pacs:Document".
type QName struct {
	Prefix string
	Local  string
}

func parseQName(s string) QName {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return QName{Prefix: s[:i], Local: s[i+1:]}
	}
	return QName{Local: s}
}

func (q QName) String() string {
	if q.Prefix == "" {
		return q.Local
	}
	return q.Prefix + ":" + q.Local
}

// ElementDeclaration is a named xs:element and the references found in its
// nested sequences, in document order.
type ElementDeclaration struct {
	Name      string
	ChildRefs []QName
}

// SchemaDocument is the scanned view of an envelope schema.
type SchemaDocument struct {
	TargetNamespace string
	PrefixMap       map[string]string
	Elements        []ElementDeclaration
}

// DeclarationScope selects which element declarations a scan collects.
type DeclarationScope int

const (
	// TopLevel collects only direct xs:element children of xs:schema.
	TopLevel DeclarationScope = iota
	// Nested collects every named xs:element in the schema, at any depth.
	Nested
)

// ScanPrefixes returns the prefix to namespace URI map declared in text.
// When a prefix is declared twice the last declaration wins.
func ScanPrefixes(text string) map[string]string {
	out := make(map[string]string)
	for _, m := range xmlnsPattern.FindAllStringSubmatch(text, -1) {
		uri := m[2]
		if uri == "" {
			uri = m[3]
		}
		out[m[1]] = uri
	}
	return out
}

// ParseSchema scans schema text into a SchemaDocument.
func ParseSchema(text []byte, scope DeclarationScope) (*SchemaDocument, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(text); err != nil {
		return nil, &msgerror.SchemaError{Kind: msgerror.ErrSchemaParse, Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &msgerror.SchemaError{Kind: msgerror.ErrSchemaParse, Detail: "no root element"}
	}
	tns := root.SelectAttrValue("targetNamespace", "")
	if tns == "" {
		return nil, &msgerror.SchemaError{Kind: msgerror.ErrMissingTargetNamespace}
	}

	sd := &SchemaDocument{
		TargetNamespace: tns,
		PrefixMap:       ScanPrefixes(string(text)),
	}
	for _, el := range collectElements(root, scope) {
		sd.Elements = append(sd.Elements, ElementDeclaration{
			Name:      el.SelectAttrValue("name", ""),
			ChildRefs: sequenceRefs(el),
		})
	}
	return sd, nil
}

// Resolve maps a prefix through the schema's prefix map.
func (sd *SchemaDocument) Resolve(q QName) (string, bool) {
	if q.Prefix == "" {
		return "", false
	}
	uri, ok := sd.PrefixMap[q.Prefix]
	return uri, ok
}

// ElementNames returns the declared element names in order.
func (sd *SchemaDocument) ElementNames() []string {
	names := make([]string, len(sd.Elements))
	for i, el := range sd.Elements {
		names[i] = el.Name
	}
	return names
}

func isXSD(el *etree.Element, local string) bool {
	return el.Tag == local && el.NamespaceURI() == XSDNamespace
}

func collectElements(root *etree.Element, scope DeclarationScope) []*etree.Element {
	var out []*etree.Element
	if scope == TopLevel {
		for _, child := range root.ChildElements() {
			if isXSD(child, "element") && child.SelectAttrValue("name", "") != "" {
				out = append(out, child)
			}
		}
		return out
	}

	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if isXSD(child, "element") && child.SelectAttrValue("name", "") != "" {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(root)
	return out
}

// sequenceRefs returns the ref attributes of xs:element declarations found
// inside any xs:sequence nested in el, without duplicates across
// overlapping sequences.
func sequenceRefs(el *etree.Element) []QName {
	var refs []QName
	seen := make(map[*etree.Element]bool)

	var inSequence func(e *etree.Element)
	inSequence = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			if isXSD(child, "element") && !seen[child] {
				seen[child] = true
				if ref := child.SelectAttrValue("ref", ""); ref != "" {
					refs = append(refs, parseQName(ref))
				}
			}
			inSequence(child)
		}
	}

	var find func(e *etree.Element)
	find = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			if isXSD(child, "sequence") {
				inSequence(child)
			}
			find(child)
		}
	}
	find(el)
	return refs
}
