package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/blackwell-systems/pareto/internal/pareto"
	"github.com/blackwell-systems/pareto/internal/render"
)

// DefaultChartWidth is used when the terminal width is unknown.
const DefaultChartWidth = 80

const (
	barRune       = "█"
	minBarWidth   = 10
	maxLabelWidth = 24
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	axisStyle  = lipgloss.NewStyle().Faint(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4c72b0"))
	cumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6347"))
	refStyle   = lipgloss.NewStyle().Faint(true)
)

// style applies s only when color output is enabled.
func style(s lipgloss.Style, text string) string {
	if !IsColorEnabled() {
		return text
	}
	return s.Render(text)
}

// RenderParetoChart renders a terminal Pareto chart: one proportional bar
// per item in table order, followed by the cumulative percentage with a
// marker. With opts.Show80PercentLine a reference rule is drawn below the
// row where the cumulative share reaches 80%.
func RenderParetoChart(t pareto.Table, label string, opts render.Options, width int) string {
	if t.Len() == 0 {
		return "No items.\n"
	}
	if width <= 0 {
		width = DefaultChartWidth
	}

	axisName := opts.XAxisName(label)
	labelWidth := runewidth.StringWidth(axisName)
	freqWidth := 0
	var maxFreq float64
	for _, r := range t.Rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(r.Item))
		freqWidth = max(freqWidth, len(FormatFrequency(r.Frequency)))
		maxFreq = math.Max(maxFreq, r.Frequency)
	}
	labelWidth = min(labelWidth, maxLabelWidth)

	// label │ bar freq │ ● cum%
	cumWidth := runewidth.StringWidth(render.CumulativeAxisName)
	barWidth := max(width-labelWidth-freqWidth-cumWidth-7, minBarWidth)

	crossed := len(t.VitalFew(render.ReferenceShare)) - 1

	var sb strings.Builder

	sb.WriteString(style(titleStyle, render.DisplayTitle(opts.Title)))
	sb.WriteString("\n\n")

	sb.WriteString(style(axisStyle, fmt.Sprintf("%s │ %s │ %s",
		pad(truncate(axisName, labelWidth), labelWidth),
		pad(render.FrequencyAxisName, barWidth+1+freqWidth),
		render.CumulativeAxisName)))
	sb.WriteString("\n")

	for i, r := range t.Rows {
		n := 0
		if maxFreq > 0 {
			n = int(math.Round(r.Frequency / maxFreq * float64(barWidth)))
		}
		bar := strings.Repeat(barRune, n) + strings.Repeat(" ", barWidth-n)

		sb.WriteString(fmt.Sprintf("%s │ %s %*s │ %s %s\n",
			pad(truncate(r.Item, labelWidth), labelWidth),
			style(barStyle, bar),
			freqWidth, FormatFrequency(r.Frequency),
			style(cumStyle, "●"),
			FormatPercent(r.CumulativeShare)))

		if opts.Show80PercentLine && i == crossed {
			rule := fmt.Sprintf("%s ┼%s 80%%", strings.Repeat(" ", labelWidth),
				strings.Repeat("┄", barWidth+freqWidth+cumWidth+1))
			sb.WriteString(style(refStyle, rule))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(RenderSummary(t))
	sb.WriteString("\n")

	return sb.String()
}
