package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"alpr/hal"

	"github.com/spf13/cobra"
)

// headlessCmd runs the chart against an off-screen framebuffer.
var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the chart without a window.",
	Long: `Run the chart loop against an off-screen framebuffer at a fixed rate.

Useful for:
- Exercising the animation and profile cycling on machines without a display
- Watching switch and settle events in the log (--log-level debug)`,
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt)
		defer stop()

		hc := cfg.Headless
		err := hal.RunHeadless(ctx, newApp(hc.Cycle), hal.HeadlessConfig{
			Host:  hostConfig(hc.ViewportWidth, hc.ViewportHeight),
			Hz:    hc.Hz,
			Ticks: hc.Ticks,
		})
		if errors.Is(err, context.Canceled) {
			cliLogger().Info("headless run interrupted")
			return nil
		}
		return err
	},
}
