// Package cmd defines the command-line interface for alpr.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	bindFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	bindFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	bindFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.Flags().Int("width", 0, "Initial window width (config window.width)")
	rootCmd.Flags().Int("height", 0, "Initial window height (config window.height)")
	bindFlag("window.width", rootCmd.Flags().Lookup("width"))
	bindFlag("window.height", rootCmd.Flags().Lookup("height"))

	headlessCmd.Flags().Int("hz", 0, "Steps per second")
	headlessCmd.Flags().Uint64("ticks", 0, "Stop after this many steps (0 = until interrupted)")
	headlessCmd.Flags().Int("cycle", 0, "Switch to the next profile after this many idle frames (0 = never)")
	headlessCmd.Flags().Int("viewport-width", 0, "Simulated viewport width")
	headlessCmd.Flags().Int("viewport-height", 0, "Simulated viewport height")
	for _, name := range []string{"hz", "ticks", "cycle", "viewport-width", "viewport-height"} {
		bindFlag("headless."+name, headlessCmd.Flags().Lookup(name))
	}

	renderCmd.Flags().String("profile", "", "Profile id to render (default: chart.default-profile)")
	renderCmd.Flags().Float64("size", 0, "Chart size in logical pixels (default: chart.max-size)")
	renderCmd.Flags().String("format", "png", "Output format: png or svg")
	renderCmd.Flags().StringP("out", "o", "-", "Output file, - for stdout")
	renderCmd.Flags().Int("frames", 0, "Stop after this many animation frames (0 = until settled)")

	profilesCmd.Flags().Bool("yaml", false, "Dump the catalogue in config file shape")
}

// bindFlag binds a flag to a nested config key. Unset flags fall below the
// config file and the registered defaults.
func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		Fatal("Error binding flag "+key, err)
	}
}
