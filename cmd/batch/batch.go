// Package batch handles batch generation of messages from a directory
package batch

import (
	"context"
	"fmt"

	"fjacquet/iso20022-gen/cmd/common"
	"fjacquet/iso20022-gen/cmd/root"
	"fjacquet/iso20022-gen/internal/batch"
	"fjacquet/iso20022-gen/internal/fileutils"
	"fjacquet/iso20022-gen/internal/logging"

	"github.com/spf13/cobra"
)

var (
	xsdFile     string
	messageCode string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate messages for every payload in a directory",
	Long: `Generate an enveloped message for every JSON or YAML payload in the input
directory and write them to the output directory, with a manifest.csv listing
the outcome of each file. A failing payload does not stop the run.

When --message-code is omitted the message type is taken from the file name,
e.g. pacs.008_wire1.json or pacs.028-status.yaml.

Example:
  iso20022-gen batch -i payloads/ -o out/ --xsd-file fedwire.xsd`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVar(&xsdFile, "xsd-file", "", "Envelope schema file")
	Cmd.Flags().StringVar(&messageCode, "message-code", "", "Message namespace for every payload (inferred from file names when empty)")
	_ = Cmd.MarkFlagRequired("xsd-file")

	Cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags (for batch, -i/-o refer to directories):
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`)
}

// Runner runs a batch job.
type Runner interface {
	Run(ctx context.Context, job batch.Job) (batch.Summary, error)
}

// RunWithError reads the schema and runs the job for inputDir.
func RunWithError(ctx context.Context, r Runner, inputDir, outputDir, schemaFile, code string, log logging.Logger) (batch.Summary, error) {
	if inputDir == "" || outputDir == "" {
		return batch.Summary{}, fmt.Errorf("input and output directories must be specified")
	}
	if !fileutils.DirectoryExists(inputDir) {
		return batch.Summary{}, fmt.Errorf("input directory does not exist: %s", inputDir)
	}
	schema, err := fileutils.ReadFile(schemaFile)
	if err != nil {
		return batch.Summary{}, err
	}

	log.Info("Starting batch generation",
		logging.F(logging.FieldInputFile, inputDir),
		logging.F(logging.FieldOutputFile, outputDir))

	return r.Run(ctx, batch.Job{
		InputDir:    inputDir,
		OutputDir:   outputDir,
		MessageCode: code,
		Schema:      schema,
	})
}

func batchFunc(cmd *cobra.Command, args []string) {
	log := root.GetLogger()

	summary, err := RunWithError(cmd.Context(), root.GetContainer().GetBatchRunner(),
		root.SharedFlags.Input, root.SharedFlags.Output, xsdFile, messageCode, log)
	if err != nil {
		common.Exit(log, "running batch", err)
	}

	log.Info(fmt.Sprintf("Generated %d of %d messages, manifest at %s",
		summary.Succeeded, summary.Total, summary.ManifestPath))
	if summary.Failed > 0 {
		common.Exit(log, "running batch", fmt.Errorf("%d payloads failed", summary.Failed))
	}
}
