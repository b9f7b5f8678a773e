package cmd

import (
	"runtime"

	"alpr/internal/buildinfo"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of alpr.",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(buildinfo.String())
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
