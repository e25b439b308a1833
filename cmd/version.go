package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rosmasterd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmdOutput, version)
	},
}
