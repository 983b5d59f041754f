package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/pareto/internal/output"
)

var tableJSON bool

var tableCmd = &cobra.Command{
	Use:   "table [label=frequency ...]",
	Short: "Show items ranked by frequency with shares",
	Long: `Sort items by frequency (largest first, ties keep input order) and show
each item's share of the total and the cumulative share.

Rows up to the first one reaching 80% cumulative share are highlighted.`,
	Example: `  # From arguments
  pareto table A=10 B=30 C=60

  # From a CSV file, as JSON
  pareto table --file defects.csv --json`,
	RunE: runTable,
}

func init() {
	tableCmd.Flags().BoolVar(&tableJSON, "json", false, "print the table as JSON")

	RootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := loadPareto(args, cfg)
	if err != nil {
		return err
	}

	t, err := p.Table()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if tableJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	}

	fmt.Fprint(out, output.RenderParetoTable(t))
	return nil
}
