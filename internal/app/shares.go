package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

var sharesCmd = &cobra.Command{
	Use:   "shares [label=frequency ...]",
	Short: "Print each item's share of the total, largest first",
	Example: `  pareto shares A=10 B=30 C=60
  # 0.6
  # 0.3
  # 0.1`,
	RunE: runShares,
}

var cumulativeCmd = &cobra.Command{
	Use:   "cumulative [label=frequency ...]",
	Short: "Print the running cumulative share, largest first",
	Example: `  pareto cumulative A=10 B=30 C=60
  # 0.6
  # 0.9
  # 1`,
	RunE: runCumulative,
}

func init() {
	RootCmd.AddCommand(sharesCmd)
	RootCmd.AddCommand(cumulativeCmd)
}

func runShares(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := loadPareto(args, cfg)
	if err != nil {
		return err
	}

	shares, err := p.Shares()
	if err != nil {
		return err
	}
	printValues(cmd.OutOrStdout(), shares)
	return nil
}

func runCumulative(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := loadPareto(args, cfg)
	if err != nil {
		return err
	}

	cum, err := p.CumulativeShares()
	if err != nil {
		return err
	}
	printValues(cmd.OutOrStdout(), cum)
	return nil
}

// printValues writes one value per line, rounded to 12 significant digits.
func printValues(w io.Writer, values []float64) {
	for _, v := range values {
		fmt.Fprintln(w, strconv.FormatFloat(v, 'g', 12, 64))
	}
}
