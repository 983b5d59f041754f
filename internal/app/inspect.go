package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [label=frequency ...]",
	Short: "Print the loaded items, frequencies and label",
	Long: `Print the data exactly as loaded, before sorting or validation.
Useful for checking what a --file or --db query produced.`,
	RunE: runInspect,
}

func init() {
	RootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := loadPareto(args, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), p.String())
	return nil
}
