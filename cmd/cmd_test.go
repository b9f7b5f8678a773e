package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"alpr/internal/config"
	"alpr/internal/logging"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testChart(t *testing.T) config.ChartConfig {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	input := &config.RawInput{}
	require.NoError(t, v.Unmarshal(input))
	c := &config.Config{}
	require.NoError(t, config.ProcessAndValidate(c, input))
	return c.Chart
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	settled, err := renderChart(&buf, testChart(t), renderOptions{Format: "png", Size: 200}, logging.Discard())
	require.NoError(t, err)
	assert.True(t, settled)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0x0b, 0x0d, 0x17}, [3]uint32{r >> 8, g >> 8, b >> 8}, "corner is background")
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	settled, err := renderChart(&buf, testChart(t), renderOptions{Format: "SVG", Profile: "explorer"}, logging.Discard())
	require.NoError(t, err)
	assert.True(t, settled)

	out := buf.String()
	assert.Contains(t, out, `width="380"`)
	assert.Contains(t, out, "<polygon")
	assert.Contains(t, out, ">90<", "settled score of the third axis")
	assert.Contains(t, out, "Intellectual")
	assert.Contains(t, out, "</svg>")
}

func TestRenderFramesStopsEarly(t *testing.T) {
	var buf bytes.Buffer
	settled, err := renderChart(&buf, testChart(t), renderOptions{Format: "svg", Frames: 2}, logging.Discard())
	require.NoError(t, err)
	assert.False(t, settled)
	assert.NotContains(t, buf.String(), ">92<")
}

func TestRenderErrors(t *testing.T) {
	var buf bytes.Buffer
	_, err := renderChart(&buf, testChart(t), renderOptions{Format: "gif"}, logging.Discard())
	assert.Error(t, err)

	_, err = renderChart(&buf, testChart(t), renderOptions{Format: "png", Profile: "nobody"}, logging.Discard())
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRenderClampsOversizedRequest(t *testing.T) {
	var buf bytes.Buffer
	_, err := renderChart(&buf, testChart(t), renderOptions{Format: "png", Size: 4000}, logging.Discard())
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 380, img.Bounds().Dx())
	assert.Equal(t, 380, img.Bounds().Dy())
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")

	settled, err := renderFile(path, testChart(t), renderOptions{Format: "png", Size: 120}, logging.Discard())
	require.NoError(t, err)
	assert.True(t, settled)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestRenderFileErrorLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")

	_, err := renderFile(path, testChart(t), renderOptions{Format: "png", Profile: "nobody"}, logging.Discard())
	require.Error(t, err)
	assert.NoFileExists(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// An existing file survives a failed render.
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	_, err = renderFile(path, testChart(t), renderOptions{Format: "gif"}, logging.Discard())
	require.Error(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	_, err = renderFile(filepath.Join(dir, "missing", "chart.png"), testChart(t), renderOptions{Format: "png"}, logging.Discard())
	assert.Error(t, err)
}

func TestWriteProfileTable(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	require.NoError(t, writeProfileTable(&buf, testChart(t)))

	out := buf.String()
	for _, want := range []string{"Independent Thinker", "methodical", "92", "95", "99, 102, 241", "A6=AI Literacy"} {
		assert.Contains(t, out, want)
	}
}

func TestWriteCatalogue(t *testing.T) {
	var buf bytes.Buffer
	chart := testChart(t)
	require.NoError(t, writeCatalogue(&buf, chart))

	var file catalogueFile
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &file))
	assert.Equal(t, "radarCanvas", file.Chart.Surface)
	require.Len(t, file.Chart.Profiles, 4)
	assert.Equal(t, "collaborative", file.Chart.Profiles[1].ID)
	assert.Equal(t, []float64{0.65, 0.82, 0.70, 0.88, 0.80, 0.75}, file.Chart.Profiles[1].Values)
	assert.Equal(t, "Intellectual\nAutonomy", file.Chart.Axes[0])
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())
	assert.Contains(t, buf.String(), "alpr dev")
	assert.Contains(t, buf.String(), "Runtime:")
}
