// Package msgerror defines the error kinds shared by the schema resolver,
// the tree serializer, the message builders and the payload parser.
package msgerror

import (
	"errors"
	"fmt"
)

// Error kinds. Typed errors below match one of these through errors.Is.
var (
	ErrSchemaParse                  = errors.New("schema parse error")
	ErrMissingTargetNamespace       = errors.New("schema has no target namespace")
	ErrInsufficientTopLevelElements = errors.New("schema declares too few top-level elements")
	ErrMessageCodeNotFound          = errors.New("message code not found in schema")
	ErrSerialization                = errors.New("serialization error")
	ErrRequiredFieldMissing         = errors.New("required field missing")
	ErrUnsupportedMessage           = errors.New("unsupported message type")
	ErrValidation                   = errors.New("schema validation failed")
	ErrDataExtraction               = errors.New("data extraction failed")
)

// SchemaError reports a failure while resolving an envelope from schema text.
type SchemaError struct {
	Kind        error
	MessageCode string
	Detail      string
	Err         error
}

func (e *SchemaError) Error() string {
	msg := e.Kind.Error()
	if e.MessageCode != "" {
		msg = fmt.Sprintf("%s: '%s'", msg, e.MessageCode)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is matches the error kind so callers can write errors.Is(err, ErrMessageCodeNotFound).
func (e *SchemaError) Is(target error) bool {
	return target == e.Kind
}

// SerializationError reports a tree value the serializer cannot render.
// It signals a caller contract violation rather than bad input data.
type SerializationError struct {
	Path   string
	Reason string
}

func (e *SerializationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("serialization error: %s", e.Reason)
	}
	return fmt.Sprintf("serialization error at '%s': %s", e.Path, e.Reason)
}

func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}

// RequiredFieldError reports a payload field a message builder cannot do without.
type RequiredFieldError struct {
	Message string
	Field   string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s: payload is missing required field '%s'", e.Message, e.Field)
}

func (e *RequiredFieldError) Is(target error) bool {
	return target == ErrRequiredFieldMissing
}

// UnsupportedMessageError reports a message code no builder or parser handles.
type UnsupportedMessageError struct {
	MessageCode string
}

func (e *UnsupportedMessageError) Error() string {
	return fmt.Sprintf("message code '%s' is not supported", e.MessageCode)
}

func (e *UnsupportedMessageError) Is(target error) bool {
	return target == ErrUnsupportedMessage
}

// ValidationError represents a fragment rejected by the XSD oracle.
type ValidationError struct {
	Schema string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed against %s: %s", e.Schema, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DataExtractionError represents an error where specific required data could not be extracted
// from an XML message, even if the document itself is well-formed.
type DataExtractionError struct {
	Source         string
	FieldName      string
	RawDataSnippet string // Optional: a snippet of the raw data where extraction failed
	Reason         string
}

func (e *DataExtractionError) Error() string {
	if e.RawDataSnippet != "" {
		return fmt.Sprintf("data extraction failed in '%s' for field '%s': %s. Raw data snippet: '%s'",
			e.Source, e.FieldName, e.Reason, e.RawDataSnippet)
	}
	return fmt.Sprintf("data extraction failed in '%s' for field '%s': %s",
		e.Source, e.FieldName, e.Reason)
}

func (e *DataExtractionError) Is(target error) bool {
	return target == ErrDataExtraction
}
