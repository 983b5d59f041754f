package app

import (
	"fmt"
	"os"

	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/blackwell-systems/pareto/internal/config"
	"github.com/blackwell-systems/pareto/internal/output"
	"github.com/blackwell-systems/pareto/internal/pareto"
	"github.com/blackwell-systems/pareto/internal/render"
)

var (
	renderTitle       string
	renderWidth       float64
	renderHeight      float64
	renderXLabel      string
	renderHLine       bool
	renderSave        bool
	renderDPI         float64
	renderOutDir      string
	renderInteractive bool
)

var renderCmd = &cobra.Command{
	Use:   "render [label=frequency ...]",
	Short: "Draw the Pareto diagram",
	Long: `Draw the Pareto diagram: one bar per item in descending order of frequency,
and the cumulative percentage on a secondary axis.

The chart is printed to the terminal, or shown in a scrollable viewer with
--interactive. With --save the full-resolution PNG is written to
<out-dir>/<title>.png, spaces in the title replaced by underscores.

Flags override values from the config file.`,
	Example: `  # Terminal chart with the 80% reference line
  pareto render --file defects.csv --hline

  # Save Defects_Q3.png at 300 DPI
  pareto render --file defects.csv --title "Defects Q3" --save --dpi 300

  # Browse a long chart
  pareto render --db qa.db --query "SELECT cause, n FROM causes" --interactive`,
	RunE: runRender,
}

func init() {
	defaults := render.DefaultOptions()

	renderCmd.Flags().StringVar(&renderTitle, "title", defaults.Title, "chart title (also names the saved file)")
	renderCmd.Flags().Float64Var(&renderWidth, "width", defaults.FigureSize.Width, "figure width in inches")
	renderCmd.Flags().Float64Var(&renderHeight, "height", defaults.FigureSize.Height, "figure height in inches")
	renderCmd.Flags().StringVar(&renderXLabel, "xlabel", "", "x-axis label (default: the item label)")
	renderCmd.Flags().BoolVar(&renderHLine, "hline", false, "draw the 80% reference line")
	renderCmd.Flags().BoolVar(&renderSave, "save", false, "save the figure as a PNG")
	renderCmd.Flags().Float64Var(&renderDPI, "dpi", defaults.DPI, "resolution of the saved PNG")
	renderCmd.Flags().StringVar(&renderOutDir, "out-dir", "", "directory for the saved PNG (default: current directory)")
	renderCmd.Flags().BoolVarP(&renderInteractive, "interactive", "i", false, "show the chart in a scrollable viewer")

	RootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := loadPareto(args, cfg)
	if err != nil {
		return err
	}

	opts := renderOptions(cmd, cfg)

	var d render.Displayer = render.DisplayFunc(func(t pareto.Table, l string, o render.Options) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), output.RenderParetoChart(t, l, o, chartWidth()))
		return err
	})
	if renderInteractive {
		if isatty.IsTerminal(os.Stdout.Fd()) {
			d = render.DisplayFunc(output.RunViewer)
		} else {
			fmt.Fprintln(os.Stderr, "Warning: --interactive needs a terminal, printing the chart instead")
		}
	}

	saved, err := render.New(d).Render(p, opts)
	if err != nil {
		return err
	}
	if saved != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", saved)
	}
	return nil
}

// renderOptions merges config values under the flags the user actually set.
func renderOptions(cmd *cobra.Command, cfg *config.Config) render.Options {
	opts := cfg.RenderOptions()
	flags := cmd.Flags()

	if flags.Changed("title") {
		opts.Title = renderTitle
	}
	if flags.Changed("width") {
		opts.FigureSize.Width = renderWidth
	}
	if flags.Changed("height") {
		opts.FigureSize.Height = renderHeight
	}
	if flags.Changed("xlabel") {
		opts.XAxisLabel = renderXLabel
	}
	if flags.Changed("hline") {
		opts.Show80PercentLine = renderHLine
	}
	if flags.Changed("save") {
		opts.SaveToFile = renderSave
	}
	if flags.Changed("dpi") {
		opts.DPI = renderDPI
	}
	if flags.Changed("out-dir") {
		opts.OutputDir = renderOutDir
	}

	return opts
}

// chartWidth returns the terminal width, or DefaultChartWidth when stdout
// is not a terminal.
func chartWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return output.DefaultChartWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return output.DefaultChartWidth
	}
	return w
}
