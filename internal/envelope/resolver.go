package envelope

import (
	"fmt"
	"strings"

	"fjacquet/iso20022-gen/internal/msgerror"
)

// TechnicalHeaderSuffix marks envelope elements that never carry a message.
const TechnicalHeaderSuffix = "TechnicalHeader"

// Descriptor names the envelope elements that carry one message type.
type Descriptor struct {
	MessageElementName   string `json:"message_element_name" yaml:"message_element_name"`
	TargetNamespace      string `json:"target_namespace" yaml:"target_namespace"`
	RootElementName      string `json:"root_element_name" yaml:"root_element_name"`
	ContainerElementName string `json:"container_element_name" yaml:"container_element_name"`
}

// Message is one message element declared by an envelope schema.
type Message struct {
	ElementName string `json:"element_name" yaml:"element_name"`
	MessageCode string `json:"message_code" yaml:"message_code"`
}

// PositionPolicy picks the root and container element names from the
// declared element names, in declaration order.
type PositionPolicy func(names []string) (root, container string, err error)

// PositionalPolicy takes the 1st declared element as root and the 3rd as
// container, falling back to the 2nd when only two are declared.
func PositionalPolicy(names []string) (string, string, error) {
	switch {
	case len(names) >= 3:
		return names[0], names[2], nil
	case len(names) == 2:
		return names[0], names[1], nil
	default:
		return "", "", &msgerror.SchemaError{
			Kind:   msgerror.ErrInsufficientTopLevelElements,
			Detail: fmt.Sprintf("found %d, need at least 2", len(names)),
		}
	}
}

// Resolver resolves envelope descriptors. It holds no mutable state and is
// safe for concurrent use.
type Resolver struct {
	policy PositionPolicy
	scope  DeclarationScope
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPolicy replaces the root/container selection policy.
func WithPolicy(p PositionPolicy) Option {
	return func(r *Resolver) {
		if p != nil {
			r.policy = p
		}
	}
}

// WithScope selects which element declarations are considered.
func WithScope(s DeclarationScope) Option {
	return func(r *Resolver) {
		r.scope = s
	}
}

// NewResolver creates a Resolver using PositionalPolicy over top-level
// declarations unless told otherwise.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		policy: PositionalPolicy,
		scope:  TopLevel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the descriptor of the element whose Document reference
// resolves to messageCode.
func (r *Resolver) Resolve(schemaText []byte, messageCode string) (Descriptor, error) {
	if strings.TrimSpace(messageCode) == "" {
		return Descriptor{}, &msgerror.SchemaError{Kind: msgerror.ErrMessageCodeNotFound, Detail: "message code is required"}
	}
	sd, err := ParseSchema(schemaText, r.scope)
	if err != nil {
		return Descriptor{}, err
	}
	return r.ResolveSchema(sd, messageCode)
}

// ResolveSchema is Resolve over an already scanned schema.
func (r *Resolver) ResolveSchema(sd *SchemaDocument, messageCode string) (Descriptor, error) {
	if strings.TrimSpace(messageCode) == "" {
		return Descriptor{}, &msgerror.SchemaError{Kind: msgerror.ErrMessageCodeNotFound, Detail: "message code is required"}
	}
	root, container, err := r.policy(sd.ElementNames())
	if err != nil {
		return Descriptor{}, err
	}

	for _, el := range candidates(sd, root, container) {
		for _, ref := range el.ChildRefs {
			if ref.Local != DocumentRef {
				continue
			}
			if uri, ok := sd.Resolve(ref); ok && uri == messageCode {
				return Descriptor{
					MessageElementName:   el.Name,
					TargetNamespace:      sd.TargetNamespace,
					RootElementName:      root,
					ContainerElementName: container,
				}, nil
			}
		}
	}

	return Descriptor{}, &msgerror.SchemaError{Kind: msgerror.ErrMessageCodeNotFound, MessageCode: messageCode}
}

// Messages lists every message element the schema declares, in order.
func (r *Resolver) Messages(schemaText []byte) ([]Message, error) {
	sd, err := ParseSchema(schemaText, r.scope)
	if err != nil {
		return nil, err
	}
	root, container, err := r.policy(sd.ElementNames())
	if err != nil {
		return nil, err
	}

	var out []Message
	for _, el := range candidates(sd, root, container) {
		for _, ref := range el.ChildRefs {
			if ref.Local != DocumentRef {
				continue
			}
			if uri, ok := sd.Resolve(ref); ok {
				out = append(out, Message{ElementName: el.Name, MessageCode: uri})
			}
		}
	}
	return out, nil
}

func candidates(sd *SchemaDocument, root, container string) []ElementDeclaration {
	var out []ElementDeclaration
	for _, el := range sd.Elements {
		if el.Name == root || el.Name == container || strings.HasSuffix(el.Name, TechnicalHeaderSuffix) {
			continue
		}
		out = append(out, el)
	}
	return out
}
