package config

import (
	"os"
	"path/filepath"
	"testing"

	"alpr/gfx"
	"alpr/radar"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alpr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func defaultInput(t *testing.T) *RawInput {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	input := &RawInput{}
	require.NoError(t, v.Unmarshal(input))
	return input
}

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	Setup(v, writeConfig(t, "{}\n"))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, WindowConfig{Title: DefaultTitle, Width: 480, Height: 480, TPS: 60}, cfg.Window)
	assert.Equal(t, 60, cfg.Headless.Hz)
	assert.Equal(t, uint64(0), cfg.Headless.Ticks)

	assert.Equal(t, DefaultSurface, cfg.Chart.Surface)
	assert.Equal(t, radar.DefaultProfileID, cfg.Chart.DefaultProfile)
	assert.Equal(t, radar.DefaultSizing(), cfg.Chart.Sizing)
	assert.Equal(t, gfx.RGB(0x0b, 0x0d, 0x17), cfg.Chart.Background)
	assert.Equal(t, radar.DefaultAxes(), cfg.Chart.Axes)
	assert.Equal(t, radar.DefaultProfiles(), cfg.Chart.Registry.Profiles())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
headless:
  cycle: 120
chart:
  default-profile: beta
  max-size: 300
  axes: [A, B, C, D, E, "F\nG"]
  profiles:
    - id: alpha
      name: Alpha
      values: [0.1, 0.2, 0.3, 0.4, 0.5, 0.6]
      color: "255, 0, 0"
    - id: beta
      values: [1, 1, 1, 1, 1, 1]
      color: "#00ff00"
`)
	v := viper.New()
	Setup(v, path)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 120, cfg.Headless.Cycle)
	assert.Equal(t, 300.0, cfg.Chart.Sizing.Max)
	assert.Equal(t, float64(radar.ViewportMargin), cfg.Chart.Sizing.Margin)
	assert.Equal(t, "beta", cfg.Chart.DefaultProfile)
	assert.Equal(t, []string{"F", "G"}, cfg.Chart.Axes.Lines(5))

	require.Equal(t, 2, cfg.Chart.Registry.Len())
	beta, err := cfg.Chart.Registry.Lookup("beta")
	require.NoError(t, err)
	assert.Equal(t, "beta", beta.Name)
	assert.Equal(t, gfx.RGB(0, 255, 0), beta.Color)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("ALPR_LOG_LEVEL", "warn")
	t.Setenv("ALPR_CHART_MIN_SIZE", "100")

	v := viper.New()
	Setup(v, writeConfig(t, "{}\n"))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 100.0, cfg.Chart.Sizing.Min)
}

func TestLoadBadFile(t *testing.T) {
	v := viper.New()
	Setup(v, writeConfig(t, "log: [\n"))
	_, err := Load(v)
	assert.Error(t, err)
}

func TestDefaultProfileFallsBackToFirst(t *testing.T) {
	input := defaultInput(t)
	input.Chart.Profiles = []ProfileRaw{
		{ID: "solo", Values: []float64{0, 0, 0, 0, 0, 0}, Color: "1, 2, 3"},
	}
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "solo", cfg.Chart.DefaultProfile)
}

func TestProcessAndValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *RawInput)
	}{
		{"log level", func(in *RawInput) { in.Log.Level = "loud" }},
		{"log format", func(in *RawInput) { in.Log.Format = "xml" }},
		{"window size", func(in *RawInput) { in.Window.Width = 0 }},
		{"window tps", func(in *RawInput) { in.Window.TPS = -1 }},
		{"headless hz", func(in *RawInput) { in.Headless.Hz = 0 }},
		{"headless ticks", func(in *RawInput) { in.Headless.Ticks = -5 }},
		{"headless cycle", func(in *RawInput) { in.Headless.Cycle = -1 }},
		{"headless viewport", func(in *RawInput) { in.Headless.ViewportHeight = 0 }},
		{"surface", func(in *RawInput) { in.Chart.Surface = " " }},
		{"min size", func(in *RawInput) { in.Chart.MinSize = 0 }},
		{"max below min", func(in *RawInput) { in.Chart.MaxSize = 10 }},
		{"margin", func(in *RawInput) { in.Chart.Margin = -1 }},
		{"background", func(in *RawInput) { in.Chart.Background = "navy" }},
		{"axes", func(in *RawInput) { in.Chart.Axes = []string{"a", "b"} }},
		{"default profile", func(in *RawInput) { in.Chart.DefaultProfile = "nobody" }},
		{"value out of range", func(in *RawInput) {
			in.Chart.Profiles = []ProfileRaw{{ID: "x", Values: []float64{0, 0, 0, 0, 0, 1.5}, Color: "1, 2, 3"}}
		}},
		{"value count", func(in *RawInput) {
			in.Chart.Profiles = []ProfileRaw{{ID: "x", Values: []float64{0.5}, Color: "1, 2, 3"}}
		}},
		{"profile color", func(in *RawInput) {
			in.Chart.Profiles = []ProfileRaw{{ID: "x", Values: []float64{0, 0, 0, 0, 0, 0}, Color: "300, 0, 0"}}
		}},
		{"duplicate id", func(in *RawInput) {
			p := ProfileRaw{ID: "x", Values: []float64{0, 0, 0, 0, 0, 0}, Color: "1, 2, 3"}
			in.Chart.Profiles = []ProfileRaw{p, p}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := defaultInput(t)
			tt.mutate(input)
			err := ProcessAndValidate(&Config{}, input)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestCatalogueRoundTrip(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, defaultInput(t)))

	raw := Catalogue(cfg.Chart)
	assert.Equal(t, DefaultBackground, raw.Background)
	require.Len(t, raw.Profiles, 4)
	assert.Equal(t, "99, 102, 241", raw.Profiles[0].Color)

	input := defaultInput(t)
	input.Chart = raw
	again := &Config{}
	require.NoError(t, ProcessAndValidate(again, input))
	assert.Equal(t, cfg.Chart.Registry.Profiles(), again.Chart.Registry.Profiles())
	assert.Equal(t, cfg.Chart.Axes, again.Chart.Axes)
}
