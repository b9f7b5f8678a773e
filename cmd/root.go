package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"alpr/app"
	"alpr/hal"
	"alpr/internal/buildinfo"
	"alpr/internal/config"
	"alpr/internal/logging"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &config.Config{}

var (
	fatalColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow)
)

// rootCmd opens the chart window.
var rootCmd = &cobra.Command{
	Use:   "alpr",
	Short: "Animated radar chart of learner profiles.",
	Long: `alpr draws a six-axis radar chart of a learner profile and animates
between profiles. Without a subcommand it opens a desktop window:
keys 1-9 select a profile, Left/Right cycle, q or Escape quit.`,
	Version:       buildinfo.Short(),
	SilenceErrors: true,
	SilenceUsage:  true,
	PreRunE:       sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return hal.RunWindow(hal.WindowConfig{
			Host:       hostConfig(cfg.Window.Width, cfg.Window.Height),
			Title:      cfg.Window.Title,
			TPS:        cfg.Window.TPS,
			Background: cfg.Chart.Background.ToRGBA(),
		}, newApp(0))
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.Setup(viper.GetViper(), viper.GetString("config"))
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	*cfg = *loaded
	return nil
}

// cliLogger logs CLI-side events to stderr.
func cliLogger() *slog.Logger {
	return logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
}

func hostConfig(w, h int) hal.HostConfig {
	return hal.HostConfig{
		SurfaceID: cfg.Chart.Surface,
		Width:     w,
		Height:    h,
		Log:       os.Stderr,
	}
}

// newApp returns the host callback that builds the chart app, logging
// through the host's line sink.
func newApp(cycle int) func(hal.HAL) (func() error, error) {
	return func(h hal.HAL) (func() error, error) {
		log := logging.NewLogger(logging.LogConfig{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: logging.NewLineWriter(h.Logger()),
		})
		return app.NewWithConfig(h, app.Config{
			SurfaceID:      cfg.Chart.Surface,
			Registry:       cfg.Chart.Registry,
			Axes:           cfg.Chart.Axes,
			DefaultProfile: cfg.Chart.DefaultProfile,
			Sizing:         cfg.Chart.Sizing,
			Background:     cfg.Chart.Background,
			CycleEvery:     cycle,
			Logger:         log,
		})
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Fatal prints msg and err to stderr and exits with status 1.
func Fatal(msg string, err error) {
	_, _ = fatalColor.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// warn prints a non-fatal notice to w.
func warn(w io.Writer, format string, args ...any) {
	_, _ = warnColor.Fprintf(w, "Warn "+format+"\n", args...)
}
