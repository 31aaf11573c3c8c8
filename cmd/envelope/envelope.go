// Package envelope implements the envelope command, which inspects an
// envelope schema without generating a message.
package envelope

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/iso20022-gen/cmd/common"
	"fjacquet/iso20022-gen/cmd/root"
	env "fjacquet/iso20022-gen/internal/envelope"
	"fjacquet/iso20022-gen/internal/fileutils"
	"fjacquet/iso20022-gen/internal/payloadparser"

	"github.com/spf13/cobra"
)

// Options are the flags shared by the envelope subcommands.
type Options struct {
	SchemaFile  string
	MessageCode string
	Scope       string
	Format      string
}

var opts Options

// Cmd represents the envelope command
var Cmd = &cobra.Command{
	Use:   "envelope",
	Short: "Inspect the message elements an envelope schema declares",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every message element and its message code",
	Run: func(cmd *cobra.Command, args []string) {
		if err := List(opts, os.Stdout); err != nil {
			common.Exit(root.GetLogger(), "listing envelope messages", err)
		}
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show the root, container and message elements for a message code",
	Run: func(cmd *cobra.Command, args []string) {
		if err := Resolve(opts, os.Stdout); err != nil {
			common.Exit(root.GetLogger(), "resolving envelope", err)
		}
	},
}

func init() {
	Cmd.PersistentFlags().StringVar(&opts.SchemaFile, "xsd-file", "", "Envelope schema file")
	Cmd.PersistentFlags().StringVar(&opts.Scope, "scope", "top", "Element declarations to scan: top or nested")
	Cmd.PersistentFlags().StringVar(&opts.Format, "format", payloadparser.FormatYAML, "Output format: json or yaml")
	_ = Cmd.MarkPersistentFlagRequired("xsd-file")

	resolveCmd.Flags().StringVar(&opts.MessageCode, "message-code", "", "Message namespace to resolve")
	_ = resolveCmd.MarkFlagRequired("message-code")

	Cmd.AddCommand(listCmd, resolveCmd)
}

func resolver(scope string) (*env.Resolver, error) {
	switch strings.ToLower(scope) {
	case "", "top":
		return env.NewResolver(), nil
	case "nested":
		return env.NewResolver(env.WithScope(env.Nested)), nil
	default:
		return nil, fmt.Errorf("invalid scope %q (must be top or nested)", scope)
	}
}

// List writes every message element the schema declares.
func List(o Options, w io.Writer) error {
	r, err := resolver(o.Scope)
	if err != nil {
		return err
	}
	schema, err := fileutils.ReadFile(o.SchemaFile)
	if err != nil {
		return err
	}
	msgs, err := r.Messages(schema)
	if err != nil {
		return err
	}
	if msgs == nil {
		msgs = []env.Message{}
	}
	return payloadparser.Encode(w, msgs, o.Format)
}

// Resolve writes the envelope descriptor for o.MessageCode.
func Resolve(o Options, w io.Writer) error {
	r, err := resolver(o.Scope)
	if err != nil {
		return err
	}
	schema, err := fileutils.ReadFile(o.SchemaFile)
	if err != nil {
		return err
	}
	d, err := r.Resolve(schema, o.MessageCode)
	if err != nil {
		return err
	}
	return payloadparser.Encode(w, d, o.Format)
}
