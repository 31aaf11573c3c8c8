// Package root contains the root command for the application
package root

import (
	"fmt"
	"strings"

	"fjacquet/iso20022-gen/internal/config"
	"fjacquet/iso20022-gen/internal/container"
	"fjacquet/iso20022-gen/internal/currencyutils"
	"fjacquet/iso20022-gen/internal/fileutils"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/models"
	"fjacquet/iso20022-gen/internal/xmlutils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

// FedwireFlags override the Fedwire header settings of the configuration.
type FedwireFlags struct {
	FedABA      string
	Environment string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "iso20022-gen",
		Short: "A CLI tool to generate ISO 20022 messages wrapped in Fedwire envelopes.",
		Long: `iso20022-gen builds ISO 20022 messages (pacs.008, pacs.028, admi.004) from
JSON or YAML payloads, adds the head.001 business application header and nests
both inside the envelope an XSD declares for the message. It also parses
generated messages back into payloads and serves the same operations over HTTP.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to iso20022-gen!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer != nil {
				if err := appContainer.Close(); err != nil {
					Log.Warnf("Failed to close container: %v", err)
				}
			}
		},
		SilenceUsage: true,
	}

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}

	// Fedwire holds the header overrides accessible to all commands
	Fedwire = FedwireFlags{}

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory (- for stdout)")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate header and body against the ISO 20022 schemas")
	Cmd.PersistentFlags().StringVar(&Fedwire.FedABA, "fed-aba", "", "Routing number used when a payload names no counterparty")
	Cmd.PersistentFlags().StringVar(&Fedwire.Environment, "environment", "", "Business service: TEST or PROD")
}

// Setup loads the configuration, configures logging and wires the
// container used by every subcommand.
func Setup() error {
	config.LoadEnv()

	cfg, err := config.InitializeConfig()
	if err != nil {
		return err
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	xmlutils.SetLogger(Log)
	fileutils.SetLogger(Log)
	currencyutils.SetLogger(Log)

	overrides, err := Overrides(SharedFlags, Fedwire)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg,
		container.WithOverrides(overrides),
		container.WithLogger(logging.NewLogrusAdapterFromLogger(Log)))
	if err != nil {
		return err
	}
	appContainer = c
	return nil
}

// Overrides turns command-line flags into container overrides.
func Overrides(shared CommonFlags, fw FedwireFlags) (container.Overrides, error) {
	o := container.Overrides{
		RoutingNumber: strings.TrimSpace(fw.FedABA),
		Validate:      shared.Validate,
	}
	switch env := strings.ToUpper(strings.TrimSpace(fw.Environment)); env {
	case "":
	case models.EnvironmentTest, models.EnvironmentProd:
		o.BusinessService = env
	default:
		return container.Overrides{}, fmt.Errorf("invalid environment %q (must be %s or %s)",
			fw.Environment, models.EnvironmentTest, models.EnvironmentProd)
	}
	return o, nil
}

// GetContainer returns the container wired by Setup, or nil before it ran.
func GetContainer() *container.Container {
	return appContainer
}

// GetLogger returns the container's logger, or an adapter over Log.
func GetLogger() logging.Logger {
	if appContainer != nil {
		return appContainer.GetLogger()
	}
	return logging.NewLogrusAdapterFromLogger(Log)
}
