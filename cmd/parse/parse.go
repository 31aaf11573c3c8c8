// Package parse implements the parse command, the inverse of generate.
package parse

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/iso20022-gen/cmd/common"
	"fjacquet/iso20022-gen/cmd/root"
	"fjacquet/iso20022-gen/internal/logging"

	"github.com/spf13/cobra"
)

var (
	messageCode string
	format      string
)

// PayloadParser reads a generated message back into its payload.
type PayloadParser interface {
	Parse(r io.Reader, messageCode string) (any, error)
	ParseFile(path, messageCode string) (any, error)
	Encode(w io.Writer, payload any, format string) error
}

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract the payload from a generated ISO 20022 message",
	Long: `Parse reads a header and body, enveloped or not, and writes back the
payload that would generate them, as JSON or YAML.`,
	Run: parseFunc,
}

func init() {
	Cmd.Flags().StringVar(&messageCode, "message-code", "", "Message namespace of the body")
	Cmd.Flags().StringVar(&format, "format", "", "Payload format: json or yaml (default from configuration)")
	_ = Cmd.MarkFlagRequired("message-code")
}

// ParseWithError parses input and writes the encoded payload to output.
func ParseWithError(p PayloadParser, input, output, code, format string, stdin io.Reader, stdout io.Writer, log logging.Logger) error {
	var (
		payload any
		err     error
	)
	if input == "" || input == common.Stdio {
		var data []byte
		if data, err = common.ReadInput(input, stdin); err == nil {
			payload, err = p.Parse(bytes.NewReader(data), code)
		}
	} else {
		payload, err = p.ParseFile(input, code)
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := p.Encode(&buf, payload, strings.ToLower(format)); err != nil {
		return fmt.Errorf("error encoding payload: %w", err)
	}

	if output == "" {
		output = common.Stdio
	}
	if err := common.WriteOutput(output, buf.Bytes(), stdout); err != nil {
		return err
	}
	log.Info("Payload extracted",
		logging.F(logging.FieldMessageCode, code),
		logging.F(logging.FieldOutputFile, output))
	return nil
}

func parseFunc(cmd *cobra.Command, args []string) {
	c := root.GetContainer()
	log := root.GetLogger()

	f := format
	if f == "" {
		f = c.GetConfig().Output.PayloadFormat
	}
	err := ParseWithError(c.GetParser(), root.SharedFlags.Input, root.SharedFlags.Output, messageCode, f, os.Stdin, os.Stdout, log)
	if err != nil {
		common.Exit(log, "parsing message", err)
	}
}
