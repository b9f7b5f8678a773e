package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"alpr/internal/config"
	"alpr/radar"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// profilesCmd lists the profile catalogue.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the profile catalogue.",
	Long: `List every profile with its scores per axis.

With --yaml the chart section is printed in config file shape, ready to be
edited and saved as .alpr.yaml.`,
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asYAML {
			return writeCatalogue(cmd.OutOrStdout(), cfg.Chart)
		}
		return writeProfileTable(cmd.OutOrStdout(), cfg.Chart)
	},
}

// writeProfileTable prints one row per profile, using the tablewriter API.
func writeProfileTable(w io.Writer, chart config.ChartConfig) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"#", "ID", "Name"}
	for i := 0; i < radar.AxisCount; i++ {
		headers = append(headers, fmt.Sprintf("A%d", i+1))
	}
	headers = append(headers, "Color")
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	bold := color.New(color.Bold).SprintFunc()
	var data [][]string
	for i, p := range chart.Registry.Profiles() {
		name := p.Name
		if p.ID == chart.DefaultProfile {
			name = bold(name)
		}
		row := []string{strconv.Itoa(i + 1), p.ID, name}
		for _, v := range p.Values {
			row = append(row, radar.Score(v))
		}
		swatch := color.RGB(int(p.Color.R), int(p.Color.G), int(p.Color.B)).Sprint("■")
		row = append(row, swatch+" "+p.Color.String())
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Axes: ")
	if err != nil {
		return err
	}
	for i := 0; i < radar.AxisCount; i++ {
		sep := ", "
		if i == radar.AxisCount-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "A%d=%s%s", i+1, strings.Join(chart.Axes.Lines(i), " "), sep); err != nil {
			return err
		}
	}
	return nil
}

type catalogueFile struct {
	Chart config.ChartRaw `yaml:"chart"`
}

// writeCatalogue dumps the chart section as YAML.
func writeCatalogue(w io.Writer, chart config.ChartConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalogueFile{Chart: config.Catalogue(chart)}); err != nil {
		return fmt.Errorf("could not encode catalogue: %w", err)
	}
	return enc.Close()
}
