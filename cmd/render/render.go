// Package render implements the render command, which turns a JSON or YAML
// element tree into an XML fragment.
package render

import (
	"bytes"
	"io"
	"os"

	"fjacquet/iso20022-gen/cmd/common"
	"fjacquet/iso20022-gen/cmd/root"
	"fjacquet/iso20022-gen/internal/xmltree"

	"github.com/spf13/cobra"
)

var opts xmltree.RenderOptions

// Cmd represents the render command
var Cmd = &cobra.Command{
	Use:   "render",
	Short: "Render a JSON or YAML element tree as an XML fragment",
	Long: `Render reads an ordered element tree and writes it as an indented XML
fragment. Keys starting with "@" become attributes, "#text" becomes element
text, lists become repeated siblings and null values are dropped.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := RenderWithError(root.SharedFlags.Input, root.SharedFlags.Output, opts, os.Stdin, os.Stdout)
		if err != nil {
			common.Exit(root.GetLogger(), "rendering tree", err)
		}
	},
}

func init() {
	Cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Namespace prefix for every element")
	Cmd.Flags().StringVar(&opts.Namespace, "namespace", "", "Namespace declared on the root element")
	Cmd.Flags().StringVar(&opts.RootName, "root", "", "Wrap the tree in this root element")
}

// RenderWithError decodes the tree at input and writes the fragment to output.
func RenderWithError(input, output string, o xmltree.RenderOptions, stdin io.Reader, stdout io.Writer) error {
	data, err := common.ReadInput(input, stdin)
	if err != nil {
		return err
	}
	tree, err := xmltree.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	out, err := xmltree.Render(tree, o)
	if err != nil {
		return err
	}
	if output == "" {
		output = common.Stdio
	}
	return common.WriteOutput(output, []byte(out+"\n"), stdout)
}
