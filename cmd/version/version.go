// Package version implements the version command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X fjacquet/iso20022-gen/cmd/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
)

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), String())
	},
}

// String formats the version and commit.
func String() string {
	return fmt.Sprintf("iso20022-gen %s (%s)", Version, Commit)
}
