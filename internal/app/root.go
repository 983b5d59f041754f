package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/pareto/internal/output"
)

var (
	filePath   string
	dbPath     string
	dbQuery    string
	label      string
	configPath string
	noColor    bool

	// RootCmd is the root command for pareto
	RootCmd = &cobra.Command{
		Use:   "pareto",
		Short: "Pareto analysis of categorical frequencies",
		Long: `pareto ranks items by frequency, computes each item's share of the total
and the running cumulative share, and draws a Pareto diagram: bars for
frequencies with a cumulative percentage line on a secondary axis.

Data sources (exactly one):
  • label=frequency pairs as arguments
  • --file with a .csv, .tsv or .json file
  • --db with a SQLite database and --query selecting (label, frequency)

Render defaults can be set in a YAML config file: --config, ./.pareto.yaml
or $XDG_CONFIG_HOME/pareto/config.yaml.

Examples:
  # Ranked table with shares
  pareto table scratch=12 dent=30 crack=5

  # Terminal chart with the 80% reference line
  pareto render --file defects.csv --hline

  # Save a PNG named after the title
  pareto render --file defects.csv --title "Defects Q3" --save

  # Aggregate straight from a database
  pareto table --db qa.db --query "SELECT cause, COUNT(*) FROM returns GROUP BY cause"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				output.DisableColor()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&filePath, "file", "", "read pairs from a .csv, .tsv or .json file")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "read pairs from a SQLite database (requires --query)")
	RootCmd.PersistentFlags().StringVar(&dbQuery, "query", "", "SQL query returning (label, frequency) rows")
	RootCmd.PersistentFlags().StringVar(&label, "label", "", "name of the item category (default \"items\")")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./.pareto.yaml or $XDG_CONFIG_HOME/pareto/config.yaml)")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
