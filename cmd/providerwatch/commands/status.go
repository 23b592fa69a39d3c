package commands

import (
	"fmt"
	"os"

	"providerwatch/lib/catalog"
	"providerwatch/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statusCatalog *string

func init() {
	statusCatalog = statusCmd.Flags().String("catalog", "models.json", "The catalog file to summarize.")
	rootCmd.AddCommand(statusCmd)
}

func catalogStore(path string) catalog.Store {
	return catalog.NewStore(path)
}

var statusCmd = &cobra.Command{
	Use:   "status [--catalog <path/to/models.json>]",
	Short: "Prints the provider data currently stored in the catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		cat, err := catalogStore(*statusCatalog).Load()
		if err != nil {
			serviceutil.Fatal("failed to load catalog", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Model", "Provider", "Context", "Max Out", "In $/M", "Out $/M", "Latency", "t/s"})

		for _, model := range cat.Data {
			for _, p := range model.Providers {
				t.AppendRow(table.Row{
					model.ID,
					cell(p.Name),
					cell(p.Metrics.ContextLength),
					cell(p.Metrics.MaxOutputTokens),
					cell(p.Metrics.InputPricePerMillion),
					cell(p.Metrics.OutputPricePerMillion),
					cell(p.Metrics.LatencySeconds),
					cell(p.Metrics.ThroughputTokensPerSecond),
				})
			}
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

func cell[T any](v *T) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%v", *v)
}
