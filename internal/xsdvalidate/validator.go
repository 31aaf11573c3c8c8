// Package xsdvalidate checks generated fragments against the official
// ISO 20022 schemas using github.com/jacoelho/xsd.
//
// Schemas are looked up as <dir>/<definition>.xsd, e.g.
// schemas/pacs.008.001.08.xsd, compiled once and cached. A definition whose
// schema file is absent is skipped with a warning, so generation works
// without a schema bundle installed.
package xsdvalidate

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"fjacquet/iso20022-gen/internal/fileutils"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/msgerror"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"
)

// maxReportedViolations caps how many violations end up in an error message.
const maxReportedViolations = 5

// Validator validates XML fragments against cached compiled schemas. It is
// safe for concurrent use.
type Validator struct {
	dir    string
	logger logging.Logger

	mu    sync.Mutex
	cache map[string]*xsd.Schema
}

// NewValidator creates a Validator reading schemas from dir.
func NewValidator(dir string, logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Validator{
		dir:    dir,
		logger: logger,
		cache:  make(map[string]*xsd.Schema),
	}
}

// SchemaPath returns where the schema of a definition is expected.
func (v *Validator) SchemaPath(definition string) string {
	return filepath.Join(v.dir, definition+".xsd")
}

// HasSchema reports whether a schema file exists for definition.
func (v *Validator) HasSchema(definition string) bool {
	return fileutils.FileExists(v.SchemaPath(definition))
}

// Validate checks one fragment against the schema of definition.
func (v *Validator) Validate(definition, fragment string) error {
	path := v.SchemaPath(definition)
	if !v.HasSchema(definition) {
		v.logger.Warn("Schema file not found, skipping validation",
			logging.F(logging.FieldSchemaFile, path),
			logging.F(logging.FieldMessageType, definition))
		return nil
	}

	schema, err := v.load(path)
	if err != nil {
		return &msgerror.ValidationError{Schema: path, Reason: "schema could not be compiled", Err: err}
	}

	if err := schema.Validate(strings.NewReader(fragment)); err != nil {
		return &msgerror.ValidationError{Schema: path, Reason: describe(err), Err: err}
	}

	v.logger.Debug("Fragment is valid",
		logging.F(logging.FieldSchemaFile, path),
		logging.F(logging.FieldMessageType, definition))
	return nil
}

// ValidateAll validates definition/fragment pairs in order and reports
// every failure.
func (v *Validator) ValidateAll(pairs ...Pair) error {
	var errs []error
	for _, p := range pairs {
		if err := v.Validate(p.Definition, p.Fragment); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Pair is a fragment and the definition it must conform to.
type Pair struct {
	Definition string
	Fragment   string
}

func (v *Validator) load(path string) (*xsd.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.cache[path]; ok {
		return schema, nil
	}
	v.logger.Debug("Compiling schema", logging.F(logging.FieldSchemaFile, path))
	schema, err := xsd.LoadFile(path)
	if err != nil {
		return nil, err
	}
	v.cache[path] = schema
	return schema, nil
}

func describe(err error) string {
	violations, ok := xsderrors.AsValidations(err)
	if !ok || len(violations) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(violations))
	for i := range violations {
		if i == maxReportedViolations {
			msgs = append(msgs, "...")
			break
		}
		msgs = append(msgs, violations[i].Error())
	}
	return strings.Join(msgs, "; ")
}
