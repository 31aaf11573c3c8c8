package messages

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"fjacquet/iso20022-gen/internal/dateutils"
	"fjacquet/iso20022-gen/internal/msgerror"
	"fjacquet/iso20022-gen/internal/xmltree"

	"gopkg.in/yaml.v3"
)

// Header is what a builder contributes to the business application header.
type Header struct {
	From      string
	To        string
	BizMsgIdr string
	MsgDefIdr string
}

// Built is the output of one builder run.
type Built struct {
	Header Header
	// Body has the single top-level key "Document".
	Body *xmltree.Mapping
	// Prefix is the namespace prefix the body is rendered with.
	Prefix string
}

// Generator builds message trees. It is safe for concurrent use as long as
// its clock and id source are.
type Generator struct {
	settings Settings
	clock    Clock
	ids      IDSource
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(g *Generator) {
		if c != nil {
			g.clock = c
		}
	}
}

// WithIDSource replaces the random id source.
func WithIDSource(ids IDSource) Option {
	return func(g *Generator) {
		if ids != nil {
			g.ids = ids
		}
	}
}

// NewGenerator creates a Generator. Empty settings fields fall back to the
// defaults.
func NewGenerator(settings Settings, opts ...Option) *Generator {
	defaults := DefaultSettings()
	if settings.RoutingNumber == "" {
		settings.RoutingNumber = defaults.RoutingNumber
	}
	if settings.BusinessService == "" {
		settings.BusinessService = defaults.BusinessService
	}
	if settings.MarketPracticeRegistry == "" {
		settings.MarketPracticeRegistry = defaults.MarketPracticeRegistry
	}
	if settings.MarketPracticeID == "" {
		settings.MarketPracticeID = defaults.MarketPracticeID
	}

	g := &Generator{
		settings: settings,
		clock:    time.Now,
		ids:      RandomIDs(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Settings returns the settings in effect.
func (g *Generator) Settings() Settings {
	return g.settings
}

// Build decodes raw (JSON or YAML) and builds the body tree of the message
// named by messageCode.
func (g *Generator) Build(messageCode string, raw []byte) (Built, error) {
	entry, err := lookup(messageCode)
	if err != nil {
		return Built{}, err
	}
	built, err := entry.build(g, raw, Definition(messageCode))
	if err != nil {
		return Built{}, err
	}
	built.Prefix = entry.prefix
	return built, nil
}

// AppHdr builds the head.001.001.03 business application header tree.
func (g *Generator) AppHdr(h Header) *xmltree.Mapping {
	return xmltree.NewMapping().Set("AppHdr", xmltree.NewMapping().
		Set("Fr", financialInstitution(h.From)).
		Set("To", financialInstitution(h.To)).
		Set("BizMsgIdr", xmltree.Text(h.BizMsgIdr)).
		Set("MsgDefIdr", xmltree.Text(h.MsgDefIdr)).
		Set("BizSvc", xmltree.Text(g.settings.BusinessService)).
		Set("MktPrctc", optionalMapping(xmltree.NewMapping().
			Set("Regy", xmltree.Text(g.settings.MarketPracticeRegistry)).
			Set("Id", xmltree.Text(g.settings.MarketPracticeID)))).
		Set("CreDt", xmltree.Text(g.now())))
}

func (g *Generator) now() string {
	return dateutils.FormatTimestamp(g.clock())
}

// decodePayload accepts JSON objects and YAML documents.
func decodePayload(raw []byte, out interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return &msgerror.DataExtractionError{Source: "payload", FieldName: "payload", Reason: "empty payload"}
	}
	var err error
	if trimmed[0] == '{' {
		err = json.Unmarshal(trimmed, out)
	} else {
		err = yaml.Unmarshal(trimmed, out)
	}
	if err != nil {
		return &msgerror.DataExtractionError{Source: "payload", FieldName: "payload", Reason: err.Error()}
	}
	return nil
}

type requiredField struct {
	path  string
	value string
}

func checkRequired(message string, fields ...requiredField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &msgerror.RequiredFieldError{Message: message, Field: f.path}
		}
	}
	return nil
}

func financialInstitution(memberID string) xmltree.Node {
	if memberID == "" {
		return xmltree.Absent
	}
	return xmltree.NewMapping().Set("FIId", xmltree.NewMapping().
		Set("FinInstnId", xmltree.NewMapping().
			Set("ClrSysMmbId", xmltree.NewMapping().
				Set("MmbId", xmltree.Scalar(memberID)))))
}

// agent renders an agent identified by its USABA member id.
func agent(memberID, name string) xmltree.Node {
	if memberID == "" {
		return xmltree.Absent
	}
	return xmltree.NewMapping().Set("FinInstnId", xmltree.NewMapping().
		Set("ClrSysMmbId", xmltree.NewMapping().
			Set("ClrSysId", xmltree.NewMapping().Set("Cd", xmltree.Scalar("USABA"))).
			Set("MmbId", xmltree.Scalar(memberID))).
		Set("Nm", xmltree.Text(name)))
}

func postalAddress(lines []string) xmltree.Node {
	if len(lines) == 0 {
		return xmltree.Absent
	}
	seq := make(xmltree.Sequence, len(lines))
	for i, line := range lines {
		seq[i] = xmltree.Scalar(line)
	}
	return xmltree.NewMapping().Set("AdrLine", seq)
}

// optionalMapping is Absent when every value of m is Absent.
func optionalMapping(m *xmltree.Mapping) xmltree.Node {
	for _, k := range m.Keys() {
		if v, _ := m.Get(k); !xmltree.IsAbsent(v) {
			return m
		}
	}
	return xmltree.Absent
}
