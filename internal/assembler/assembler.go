// Package assembler turns a payload into a complete enveloped message:
// header and body trees are built, rendered into two fragments, optionally
// checked against the ISO 20022 schemas, and nested inside the envelope
// that the envelope schema declares for the message code.
package assembler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/iso20022-gen/internal/envelope"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/messages"
	"fjacquet/iso20022-gen/internal/models"
	"fjacquet/iso20022-gen/internal/msgerror"
	"fjacquet/iso20022-gen/internal/xmltree"
	"fjacquet/iso20022-gen/internal/xsdvalidate"
)

// HeaderPrefix is the namespace prefix of the business application header.
const HeaderPrefix = "head"

// Validator checks rendered fragments against their schemas.
type Validator interface {
	ValidateAll(pairs ...xsdvalidate.Pair) error
}

// Request describes one message to generate.
type Request struct {
	// MessageCode is the namespace URI of the body schema.
	MessageCode string
	// Payload is the JSON (or YAML) payload for the message type.
	Payload []byte
	// Schema is the envelope schema text.
	Schema []byte
}

// Fragments are the two rendered parts of a message.
type Fragments struct {
	Header string
	Body   string
}

// Result is a fully assembled message.
type Result struct {
	MessageCode string
	Fragments
	Envelope envelope.Descriptor
	Document string
}

// Assembler is safe for concurrent use.
type Assembler struct {
	generator *messages.Generator
	resolver  *envelope.Resolver
	validator Validator
	logger    logging.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithValidator enables schema validation of both fragments.
func WithValidator(v Validator) Option {
	return func(a *Assembler) {
		a.validator = v
	}
}

// WithResolver replaces the default envelope resolver.
func WithResolver(r *envelope.Resolver) Option {
	return func(a *Assembler) {
		if r != nil {
			a.resolver = r
		}
	}
}

// New creates an Assembler.
func New(generator *messages.Generator, logger logging.Logger, opts ...Option) *Assembler {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	a := &Assembler{
		generator: generator,
		resolver:  envelope.NewResolver(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GenerateFragments builds and renders the header and body of a message.
// No envelope schema is involved.
func (a *Assembler) GenerateFragments(ctx context.Context, messageCode string, payload []byte) (Fragments, error) {
	if err := ctx.Err(); err != nil {
		return Fragments{}, err
	}
	log := a.logger.WithFields(logging.F(logging.FieldMessageCode, messageCode))

	built, err := a.generator.Build(messageCode, payload)
	if err != nil {
		return Fragments{}, fmt.Errorf("failed to build %s: %w", messages.TypeOf(messageCode), err)
	}

	header, err := xmltree.Render(a.generator.AppHdr(built.Header), xmltree.RenderOptions{
		Prefix:    HeaderPrefix,
		Namespace: models.BusinessAppHeaderNamespace,
	})
	if err != nil {
		return Fragments{}, fmt.Errorf("failed to render application header: %w", err)
	}

	body, err := xmltree.Render(built.Body, xmltree.RenderOptions{
		Prefix:    built.Prefix,
		Namespace: strings.TrimSpace(messageCode),
	})
	if err != nil {
		return Fragments{}, fmt.Errorf("failed to render document: %w", err)
	}

	if a.validator != nil {
		if err := ctx.Err(); err != nil {
			return Fragments{}, err
		}
		if err := a.validator.ValidateAll(
			xsdvalidate.Pair{Definition: models.BusinessAppHeaderDefinition, Fragment: header},
			xsdvalidate.Pair{Definition: messages.Definition(messageCode), Fragment: body},
		); err != nil {
			return Fragments{}, err
		}
	}

	log.Debug("Rendered message fragments",
		logging.F("header_bytes", len(header)),
		logging.F("body_bytes", len(body)))
	return Fragments{Header: header, Body: body}, nil
}

// Generate produces the enveloped document. Any failure returns an error
// and an empty Result.
func (a *Assembler) Generate(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	if strings.TrimSpace(req.MessageCode) == "" {
		return Result{}, &msgerror.SchemaError{Kind: msgerror.ErrMessageCodeNotFound, Detail: "message code is required"}
	}
	if !messages.IsSupported(req.MessageCode) {
		return Result{}, &msgerror.UnsupportedMessageError{MessageCode: req.MessageCode}
	}

	fragments, err := a.GenerateFragments(ctx, req.MessageCode, req.Payload)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	desc, err := a.resolver.Resolve(req.Schema, req.MessageCode)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve envelope: %w", err)
	}

	result := Result{
		MessageCode: req.MessageCode,
		Fragments:   fragments,
		Envelope:    desc,
		Document:    envelope.Wrap(desc, fragments.Header, fragments.Body),
	}

	a.logger.Info("Generated message",
		logging.F(logging.FieldMessageCode, req.MessageCode),
		logging.F(logging.FieldElement, desc.MessageElementName),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return result, nil
}
