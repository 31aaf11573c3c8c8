// Package generate implements the generate command.
package generate

import (
	"os"

	"fjacquet/iso20022-gen/cmd/common"
	"fjacquet/iso20022-gen/cmd/root"

	"github.com/spf13/cobra"
)

var (
	xsdFile       string
	messageCode   string
	fragmentsOnly bool
)

// Cmd represents the generate command
var Cmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an enveloped ISO 20022 message from a payload",
	Long: `Generate builds the business application header and the message body from a
JSON or YAML payload and nests both in the envelope the XSD declares for the
message code. The payload is read from --input (or stdin), the document is
written to --output, "-" for stdout, or a timestamped file in the configured
output directory.`,
	Run: generateFunc,
}

func init() {
	Cmd.Flags().StringVar(&xsdFile, "xsd-file", "", "Envelope schema file")
	Cmd.Flags().StringVar(&messageCode, "message-code", "", "Message namespace, e.g. urn:iso:std:iso:20022:tech:xsd:pacs.008.001.08")
	Cmd.Flags().BoolVar(&fragmentsOnly, "fragments-only", false, "Write the header and body without the envelope")
	_ = Cmd.MarkFlagRequired("xsd-file")
	_ = Cmd.MarkFlagRequired("message-code")
}

func generateFunc(cmd *cobra.Command, args []string) {
	c := root.GetContainer()
	log := root.GetLogger()

	_, err := common.GenerateFileWithError(cmd.Context(), c.GetAssembler(), common.GenerateOptions{
		PayloadFile:   root.SharedFlags.Input,
		SchemaFile:    xsdFile,
		MessageCode:   messageCode,
		Output:        root.SharedFlags.Output,
		OutputDir:     c.GetConfig().Output.Directory,
		FragmentsOnly: fragmentsOnly,
	}, os.Stdin, os.Stdout, log)
	if err != nil {
		common.Exit(log, "generating message", err)
	}
}
