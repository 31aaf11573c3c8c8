// Package container provides dependency injection for the generator.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/iso20022-gen/internal/assembler"
	"fjacquet/iso20022-gen/internal/batch"
	"fjacquet/iso20022-gen/internal/config"
	"fjacquet/iso20022-gen/internal/envelope"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/messages"
	"fjacquet/iso20022-gen/internal/payloadparser"
	"fjacquet/iso20022-gen/internal/xsdvalidate"
)

// Overrides are command-line values that take precedence over the
// configuration.
type Overrides struct {
	RoutingNumber   string
	BusinessService string
	// Validate forces schema validation on when true.
	Validate bool
}

// Option customizes a Container.
type Option func(*options)

type options struct {
	overrides     Overrides
	logger        logging.Logger
	generatorOpts []messages.Option
}

// WithOverrides applies command-line overrides.
func WithOverrides(o Overrides) Option {
	return func(opts *options) {
		opts.overrides = o
	}
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(l logging.Logger) Option {
	return func(opts *options) {
		opts.logger = l
	}
}

// WithGeneratorOptions passes options to the message generator.
func WithGeneratorOptions(o ...messages.Option) Option {
	return func(opts *options) {
		opts.generatorOpts = append(opts.generatorOpts, o...)
	}
}

// Container holds all application dependencies. It is immutable after
// creation; dependencies are reached through getters.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	settings  messages.Settings
	generator *messages.Generator
	resolver  *envelope.Resolver
	validator *xsdvalidate.Validator
	assembler *assembler.Assembler
	parser    *payloadparser.Parser
	batch     *batch.Runner
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	settings := messages.Settings{
		RoutingNumber:          cfg.Fedwire.RoutingNumber,
		BusinessService:        cfg.Fedwire.BusinessService,
		MarketPracticeRegistry: cfg.Fedwire.MarketPracticeRegistry,
		MarketPracticeID:       cfg.Fedwire.MarketPracticeID,
	}
	if v := o.overrides.RoutingNumber; v != "" {
		if !config.ValidRoutingNumber(v) {
			return nil, fmt.Errorf("routing number must be 9 digits, got: %s", v)
		}
		settings.RoutingNumber = v
	}
	if v := o.overrides.BusinessService; v != "" {
		settings.BusinessService = v
	}

	generator := messages.NewGenerator(settings, o.generatorOpts...)
	resolver := envelope.NewResolver()
	validator := xsdvalidate.NewValidator(cfg.Schemas.Directory, logger)

	asmOpts := []assembler.Option{assembler.WithResolver(resolver)}
	validate := cfg.Schemas.Validate || o.overrides.Validate
	if validate {
		asmOpts = append(asmOpts, assembler.WithValidator(validator))
	}
	asm := assembler.New(generator, logger, asmOpts...)

	logger.Debug("Container initialized successfully",
		logging.F("routing_number", generator.Settings().RoutingNumber),
		logging.F("business_service", generator.Settings().BusinessService),
		logging.F("validate", validate),
		logging.F("message_types", len(messages.Supported())))

	return &Container{
		logger:    logger,
		config:    cfg,
		settings:  generator.Settings(),
		generator: generator,
		resolver:  resolver,
		validator: validator,
		assembler: asm,
		parser:    payloadparser.NewParser(logger),
		batch:     batch.NewRunner(asm, logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetSettings returns the header settings in effect after overrides.
func (c *Container) GetSettings() messages.Settings {
	return c.settings
}

// GetGenerator returns the message tree builder.
func (c *Container) GetGenerator() *messages.Generator {
	return c.generator
}

// GetResolver returns the envelope resolver.
func (c *Container) GetResolver() *envelope.Resolver {
	return c.resolver
}

// GetValidator returns the schema validator, configured even when
// validation is off.
func (c *Container) GetValidator() *xsdvalidate.Validator {
	return c.validator
}

// GetAssembler returns the message assembler.
func (c *Container) GetAssembler() *assembler.Assembler {
	return c.assembler
}

// GetParser returns the payload parser.
func (c *Container) GetParser() *payloadparser.Parser {
	return c.parser
}

// GetBatchRunner returns the batch runner.
func (c *Container) GetBatchRunner() *batch.Runner {
	return c.batch
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
