// Package config resolves alpr settings from defaults, the config file,
// environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"alpr/gfx"
	"alpr/internal/logging"
	"alpr/radar"

	"github.com/spf13/viper"
)

// Default values for configuration.
const (
	DefaultSurface    = "radarCanvas"
	DefaultTitle      = "ALPR Radar"
	DefaultWidth      = 480
	DefaultHeight     = 480
	DefaultTPS        = 60
	DefaultHz         = 60
	DefaultBackground = "#0b0d17"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Name, type and env prefix of the config file.
const (
	FileName  = ".alpr"
	FileType  = "yaml"
	EnvPrefix = "ALPR"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// LogRaw holds the log section as read from file, env and flags.
type LogRaw struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WindowRaw holds the desktop window section.
type WindowRaw struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	TPS    int    `mapstructure:"tps"`
}

// HeadlessRaw holds the headless runner section.
type HeadlessRaw struct {
	Hz             int `mapstructure:"hz"`
	Ticks          int `mapstructure:"ticks"`
	Cycle          int `mapstructure:"cycle"`
	ViewportWidth  int `mapstructure:"viewport-width"`
	ViewportHeight int `mapstructure:"viewport-height"`
}

// ProfileRaw is one catalogue entry. The yaml tags let the catalogue be
// written back in the config file shape.
type ProfileRaw struct {
	ID     string    `mapstructure:"id" yaml:"id"`
	Name   string    `mapstructure:"name" yaml:"name"`
	Values []float64 `mapstructure:"values" yaml:"values,flow"`
	Color  string    `mapstructure:"color" yaml:"color"`
}

// ChartRaw holds the chart section. Empty Axes or Profiles select the
// built-in reference set.
type ChartRaw struct {
	Surface        string       `mapstructure:"surface" yaml:"surface"`
	DefaultProfile string       `mapstructure:"default-profile" yaml:"default-profile,omitempty"`
	MaxSize        float64      `mapstructure:"max-size" yaml:"max-size"`
	Margin         float64      `mapstructure:"margin" yaml:"margin"`
	MinSize        float64      `mapstructure:"min-size" yaml:"min-size"`
	Background     string       `mapstructure:"background" yaml:"background"`
	Axes           []string     `mapstructure:"axes" yaml:"axes"`
	Profiles       []ProfileRaw `mapstructure:"profiles" yaml:"profiles"`
}

// RawInput holds the raw, unvalidated configuration from all sources.
// Viper unmarshals into this struct.
type RawInput struct {
	Log      LogRaw      `mapstructure:"log"`
	Window   WindowRaw   `mapstructure:"window"`
	Headless HeadlessRaw `mapstructure:"headless"`
	Chart    ChartRaw    `mapstructure:"chart"`
}

// WindowConfig is the validated window section.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	TPS    int
}

// HeadlessConfig is the validated headless section.
type HeadlessConfig struct {
	Hz             int
	Ticks          uint64
	Cycle          int
	ViewportWidth  int
	ViewportHeight int
}

// ChartConfig is the validated chart section.
type ChartConfig struct {
	Surface        string
	DefaultProfile string
	Sizing         radar.Sizing
	Background     gfx.Color
	Axes           radar.Axes
	Registry       *radar.Registry
}

// Config holds the final, validated configuration.
type Config struct {
	Log      logging.LogConfig
	Window   WindowConfig
	Headless HeadlessConfig
	Chart    ChartConfig
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("window.title", DefaultTitle)
	v.SetDefault("window.width", DefaultWidth)
	v.SetDefault("window.height", DefaultHeight)
	v.SetDefault("window.tps", DefaultTPS)

	v.SetDefault("headless.hz", DefaultHz)
	v.SetDefault("headless.ticks", 0)
	v.SetDefault("headless.cycle", 0)
	v.SetDefault("headless.viewport-width", DefaultWidth)
	v.SetDefault("headless.viewport-height", DefaultHeight)

	v.SetDefault("chart.surface", DefaultSurface)
	v.SetDefault("chart.default-profile", "")
	v.SetDefault("chart.max-size", radar.MaxDisplaySize)
	v.SetDefault("chart.margin", radar.ViewportMargin)
	v.SetDefault("chart.min-size", radar.MinDisplaySize)
	v.SetDefault("chart.background", DefaultBackground)
}

// Setup points v at the config file and environment. An explicit file path
// wins over the search in the current and home directories.
func Setup(v *viper.Viper, configFile string) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType(FileType)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
}

// Load reads the config file (a missing file is fine), unmarshals every
// resolved value and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	input := &RawInput{}
	if err := v.Unmarshal(input); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	cfg := &Config{}
	if err := ProcessAndValidate(cfg, input); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProcessAndValidate fills cfg from input.
func ProcessAndValidate(cfg *Config, input *RawInput) error {
	if err := processLog(cfg, input.Log); err != nil {
		return err
	}
	if err := processWindow(cfg, input.Window); err != nil {
		return err
	}
	if err := processHeadless(cfg, input.Headless); err != nil {
		return err
	}
	return processChart(cfg, input.Chart)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func processLog(cfg *Config, in LogRaw) error {
	if _, err := logging.ParseLevel(in.Level); err != nil {
		return invalid("log.level: %v", err)
	}
	format := strings.ToLower(in.Format)
	switch format {
	case "":
		format = DefaultLogFormat
	case "text", "json":
	default:
		return invalid("log.format must be text or json, got %q", in.Format)
	}
	cfg.Log = logging.LogConfig{Level: in.Level, Format: format}
	return nil
}

func processWindow(cfg *Config, in WindowRaw) error {
	if in.Width <= 0 || in.Height <= 0 {
		return invalid("window size must be positive, got %dx%d", in.Width, in.Height)
	}
	if in.TPS <= 0 {
		return invalid("window.tps must be positive, got %d", in.TPS)
	}
	title := in.Title
	if title == "" {
		title = DefaultTitle
	}
	cfg.Window = WindowConfig{Title: title, Width: in.Width, Height: in.Height, TPS: in.TPS}
	return nil
}

func processHeadless(cfg *Config, in HeadlessRaw) error {
	switch {
	case in.Hz <= 0:
		return invalid("headless.hz must be positive, got %d", in.Hz)
	case in.Ticks < 0:
		return invalid("headless.ticks must not be negative, got %d", in.Ticks)
	case in.Cycle < 0:
		return invalid("headless.cycle must not be negative, got %d", in.Cycle)
	case in.ViewportWidth <= 0 || in.ViewportHeight <= 0:
		return invalid("headless viewport must be positive, got %dx%d", in.ViewportWidth, in.ViewportHeight)
	}
	cfg.Headless = HeadlessConfig{
		Hz:             in.Hz,
		Ticks:          uint64(in.Ticks),
		Cycle:          in.Cycle,
		ViewportWidth:  in.ViewportWidth,
		ViewportHeight: in.ViewportHeight,
	}
	return nil
}

func processChart(cfg *Config, in ChartRaw) error {
	if strings.TrimSpace(in.Surface) == "" {
		return invalid("chart.surface must not be empty")
	}

	sizing := radar.Sizing{Max: in.MaxSize, Margin: in.Margin, Min: in.MinSize}
	switch {
	case sizing.Min <= 0:
		return invalid("chart.min-size must be positive, got %g", sizing.Min)
	case sizing.Max < sizing.Min:
		return invalid("chart.max-size %g is below chart.min-size %g", sizing.Max, sizing.Min)
	case sizing.Margin < 0:
		return invalid("chart.margin must not be negative, got %g", sizing.Margin)
	}

	bg, err := gfx.ParseColor(in.Background)
	if err != nil {
		return invalid("chart.background: %v", err)
	}

	axes := radar.DefaultAxes()
	if len(in.Axes) > 0 {
		if axes, err = radar.AxesFrom(in.Axes); err != nil {
			return invalid("chart.axes: %v", err)
		}
	}

	profiles := radar.DefaultProfiles()
	if len(in.Profiles) > 0 {
		profiles = make([]radar.Profile, 0, len(in.Profiles))
		for i, p := range in.Profiles {
			prof, err := parseProfile(p)
			if err != nil {
				return invalid("chart.profiles[%d]: %v", i, err)
			}
			profiles = append(profiles, prof)
		}
	}
	reg, err := radar.NewRegistry(profiles...)
	if err != nil {
		return invalid("chart.profiles: %v", err)
	}

	def := in.DefaultProfile
	if def == "" {
		def = radar.DefaultProfileID
		if reg.Index(def) < 0 {
			first, _ := reg.At(0)
			def = first.ID
		}
	} else if _, err := reg.Lookup(def); err != nil {
		return invalid("chart.default-profile: %v", err)
	}

	cfg.Chart = ChartConfig{
		Surface:        in.Surface,
		DefaultProfile: def,
		Sizing:         sizing,
		Background:     bg,
		Axes:           axes,
		Registry:       reg,
	}
	return nil
}

func parseProfile(p ProfileRaw) (radar.Profile, error) {
	values, err := radar.ValuesFrom(p.Values)
	if err != nil {
		return radar.Profile{}, err
	}
	col, err := gfx.ParseColor(p.Color)
	if err != nil {
		return radar.Profile{}, err
	}
	return radar.Profile{ID: p.ID, Name: p.Name, Values: values, Color: col}, nil
}

// Catalogue returns the chart section in config file shape.
func Catalogue(c ChartConfig) ChartRaw {
	out := ChartRaw{
		Surface:        c.Surface,
		DefaultProfile: c.DefaultProfile,
		MaxSize:        c.Sizing.Max,
		Margin:         c.Sizing.Margin,
		MinSize:        c.Sizing.Min,
		Background:     c.Background.Hex(),
		Axes:           c.Axes[:],
	}
	if c.Registry == nil {
		return out
	}
	for _, p := range c.Registry.Profiles() {
		out.Profiles = append(out.Profiles, ProfileRaw{
			ID:     p.ID,
			Name:   p.Name,
			Values: p.Values[:],
			Color:  p.Color.String(),
		})
	}
	return out
}
