package cmd

import (
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"alpr/frame"
	"alpr/gfx"
	"alpr/internal/config"
	"alpr/radar"

	"github.com/spf13/cobra"
)

const renderSurfaceID = "render"

// renderOptions selects what the render command draws.
type renderOptions struct {
	Profile string
	Size    float64
	Format  string
	Frames  int
}

// renderCmd writes one chart image.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a profile chart to PNG or SVG.",
	Long: `Animate a profile off-screen until it settles and write the final frame.

--frames stops the animation early, which renders an in-between frame.`,
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		var opts renderOptions
		opts.Profile, _ = flags.GetString("profile")
		opts.Size, _ = flags.GetFloat64("size")
		opts.Format, _ = flags.GetString("format")
		opts.Frames, _ = flags.GetInt("frames")
		out, _ := flags.GetString("out")

		var settled bool
		var err error
		if out != "" && out != "-" {
			settled, err = renderFile(out, cfg.Chart, opts, cliLogger())
		} else {
			settled, err = renderChart(cmd.OutOrStdout(), cfg.Chart, opts, cliLogger())
		}
		if err == nil && !settled {
			warn(cmd.ErrOrStderr(), "stopped after %d frames before the chart settled", opts.Frames)
		}
		return err
	},
}

type singleSurface struct {
	id string
	s  radar.Surface
}

func (ss singleSurface) Surface(id string) (radar.Surface, bool) {
	if id != ss.id {
		return nil, false
	}
	return ss.s, true
}

// renderFile renders into a temporary file next to path and renames it into
// place once the image is complete. On failure path is left untouched.
func renderFile(path string, chart config.ChartConfig, opts renderOptions, log *slog.Logger) (settled bool, err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return false, fmt.Errorf("could not create output file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if settled, err = renderChart(f, chart, opts, log); err != nil {
		return false, err
	}
	_ = f.Chmod(0o644)
	if err = f.Close(); err != nil {
		return false, fmt.Errorf("could not write output file: %w", err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return false, fmt.Errorf("could not write output file: %w", err)
	}
	return settled, nil
}

// renderChart settles the chart on an in-memory canvas and encodes the
// last drawn frame. settled is false when opts.Frames cut the animation short.
func renderChart(out io.Writer, chart config.ChartConfig, opts renderOptions, log *slog.Logger) (settled bool, err error) {
	format := strings.ToLower(opts.Format)
	if format != "png" && format != "svg" {
		return false, fmt.Errorf("unsupported format %q: want png or svg", opts.Format)
	}
	size := opts.Size
	if size <= 0 || size > chart.Sizing.Max {
		size = chart.Sizing.Max
	}
	profile := opts.Profile
	if profile == "" {
		profile = chart.DefaultProfile
	}

	img := gfx.NewImageTarget(0, 0)
	cv := gfx.NewCanvas(img)
	cv.Background = chart.Background

	sched := frame.New()
	w, err := radar.Initialize(singleSurface{id: renderSurfaceID, s: cv}, renderSurfaceID, chart.Registry, chart.Axes[:], radar.Options{
		DefaultProfile: profile,
		DisplaySize:    size,
		PixelRatio:     1,
		MinSize:        chart.Sizing.Min,
		MaxSize:        chart.Sizing.Max,
		Scheduler:      sched,
		Logger:         log,
	})
	if err != nil {
		return false, err
	}

	frames := 1
	for w.State() != radar.Idle && (opts.Frames <= 0 || frames < opts.Frames) {
		sched.Tick()
		frames++
	}
	settled = w.State() == radar.Idle
	log.Debug("render frame ready", "profile", w.Current().ID, "frames", frames, "size", w.Geometry().Size)

	switch format {
	case "svg":
		side := int(math.Round(w.Geometry().Size))
		sc := gfx.NewSVGCanvas(out, side, side)
		sc.Background = chart.Background
		w.RenderTo(sc)
		return settled, sc.Close()
	default:
		if err := png.Encode(out, img.Img); err != nil {
			return settled, fmt.Errorf("could not encode png: %w", err)
		}
		return settled, nil
	}
}
