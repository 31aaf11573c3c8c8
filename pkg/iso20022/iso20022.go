// Package iso20022 exposes the tree renderer, the envelope resolver and the
// message generator to code outside this module.
package iso20022

import (
	"context"

	"fjacquet/iso20022-gen/internal/assembler"
	"fjacquet/iso20022-gen/internal/envelope"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/messages"
	"fjacquet/iso20022-gen/internal/xmltree"
)

type (
	// Node is one value of an element tree.
	Node = xmltree.Node
	// Mapping is an ordered set of element, attribute and text keys.
	Mapping = xmltree.Mapping
	// Sequence renders as repeated sibling elements.
	Sequence = xmltree.Sequence
	// Scalar is a leaf text value.
	Scalar = xmltree.Scalar
	// RenderOptions control prefixing and root wrapping.
	RenderOptions = xmltree.RenderOptions

	// Descriptor names the envelope elements that carry one message type.
	Descriptor = envelope.Descriptor

	// Settings are the Fedwire header settings.
	Settings = messages.Settings
	// Result is a generated message.
	Result = assembler.Result
)

// Absent marks an optional value that is never rendered.
var Absent = xmltree.Absent

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return xmltree.NewMapping()
}

// Text returns a Scalar, or Absent for the empty string.
func Text(s string) Node {
	return xmltree.Text(s)
}

// Render renders tree as an indented XML fragment.
func Render(tree Node, opts RenderOptions) (string, error) {
	return xmltree.Render(tree, opts)
}

// ResolveEnvelope finds the envelope elements that carry messageCode in
// the schema text.
func ResolveEnvelope(schema []byte, messageCode string) (Descriptor, error) {
	return envelope.NewResolver().Resolve(schema, messageCode)
}

// Wrap nests fragments inside the envelope d describes.
func Wrap(d Descriptor, fragments ...string) string {
	return envelope.Wrap(d, fragments...)
}

// DefaultSettings returns the Fedwire test-environment header settings.
func DefaultSettings() Settings {
	return messages.DefaultSettings()
}

// Generate builds the header and body for payload and wraps them in the
// envelope schema declares for messageCode.
func Generate(ctx context.Context, settings Settings, messageCode string, payload, schema []byte) (Result, error) {
	a := assembler.New(messages.NewGenerator(settings), logging.NewLogrusAdapter("warn", "text"))
	return a.Generate(ctx, assembler.Request{
		MessageCode: messageCode,
		Payload:     payload,
		Schema:      schema,
	})
}
