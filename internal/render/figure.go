package render

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/blackwell-systems/pareto/internal/pareto"
)

// Axis names.
const (
	FrequencyAxisName  = "Frequency"
	CumulativeAxisName = "Cumulative percentage"
)

// ReferenceShare is the cumulative share marked by the 80% line.
const ReferenceShare = 0.8

const (
	barHalfWidth = 0.4
	tickRotation = 45
	markerRadius = 4
)

var (
	barColor  = drawing.ColorFromHex("4c72b0")
	lineColor = drawing.ColorFromHex("ff6347")
	gridColor = drawing.ColorFromHex("d0d0d0")

	dashDot = []float64{6, 3, 1, 3}

	upper = cases.Upper(language.Und)
)

// DisplayTitle returns the title as shown on charts: upper-cased.
func DisplayTitle(title string) string {
	return upper.String(title)
}

// Figure composes the Pareto chart for a table. label is the raw item label
// used for the x axis when opts.XAxisLabel is empty.
//
// Each item is drawn as a filled bar on the primary axis; the cumulative
// share is a line with circular markers on the secondary axis.
func Figure(t pareto.Table, label string, opts Options) (chart.Chart, error) {
	if t.Len() == 0 {
		return chart.Chart{}, fmt.Errorf("%w: empty table", pareto.ErrRenderingFailure)
	}
	width, height, err := opts.canvas()
	if err != nil {
		return chart.Chart{}, err
	}

	n := t.Len()
	xRange := &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5}

	series := make([]chart.Series, 0, n+2)
	xTicks := make([]chart.Tick, n)
	xs := make([]float64, n)
	cum := make([]float64, n)
	var maxFreq float64

	for i, r := range t.Rows {
		x := float64(i)
		series = append(series, barSeries(r, x))
		xTicks[i] = chart.Tick{Value: x, Label: r.Item}
		xs[i] = x
		cum[i] = r.CumulativeShare
		maxFreq = math.Max(maxFreq, r.Frequency)
	}

	series = append(series, chart.ContinuousSeries{
		Name:    CumulativeAxisName,
		YAxis:   chart.YAxisSecondary,
		XValues: xs,
		YValues: cum,
		Style: chart.Style{
			StrokeColor: lineColor,
			StrokeWidth: 2,
			DotColor:    lineColor,
			DotWidth:    markerRadius,
		},
	})

	if opts.Show80PercentLine {
		series = append(series, chart.ContinuousSeries{
			Name:    "80%",
			YAxis:   chart.YAxisSecondary,
			XValues: []float64{xRange.Min, xRange.Max},
			YValues: []float64{ReferenceShare, ReferenceShare},
			Style: chart.Style{
				StrokeColor:     chart.ColorBlack,
				StrokeWidth:     1.5,
				StrokeDashArray: dashDot,
			},
		})
	}

	freqTicks, freqMax := frequencyTicks(maxFreq)
	grid := make([]chart.GridLine, len(freqTicks))
	for i, tk := range freqTicks {
		grid[i] = chart.GridLine{Value: tk.Value}
	}

	return chart.Chart{
		Title:  DisplayTitle(opts.Title),
		Width:  width,
		Height: height,
		DPI:    opts.DPI,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:      opts.XAxisName(label),
			Range:     xRange,
			Ticks:     xTicks,
			TickStyle: chart.Style{TextRotationDegrees: tickRotation},
		},
		YAxis: chart.YAxis{
			Name:  FrequencyAxisName,
			Range: &chart.ContinuousRange{Min: 0, Max: freqMax},
			Ticks: freqTicks,
			GridMajorStyle: chart.Style{
				StrokeColor:     gridColor,
				StrokeWidth:     0.5,
				StrokeDashArray: dashDot,
			},
			GridLines: grid,
		},
		YAxisSecondary: chart.YAxis{
			Name:  CumulativeAxisName,
			Range: &chart.ContinuousRange{Min: 0, Max: 1.05},
			Ticks: percentTicks(),
		},
		Series: series,
	}, nil
}

// barSeries draws one bar as a closed, filled outline centred on x.
func barSeries(r pareto.Row, x float64) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    r.Item,
		XValues: []float64{x - barHalfWidth, x - barHalfWidth, x + barHalfWidth, x + barHalfWidth},
		YValues: []float64{0, r.Frequency, r.Frequency, 0},
		Style: chart.Style{
			StrokeColor: barColor,
			StrokeWidth: 1,
			FillColor:   barColor.WithAlpha(220),
		},
	}
}

// frequencyTicks returns evenly spaced ticks covering [0, top] and the top
// of the axis.
func frequencyTicks(top float64) ([]chart.Tick, float64) {
	step := niceStep(top, 5)
	steps := int(math.Ceil(top/step - 1e-9))
	if steps < 1 {
		steps = 1
	}
	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}

	ticks := make([]chart.Tick, 0, steps+1)
	for i := 0; i <= steps; i++ {
		v := float64(i) * step
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.*f", decimals, v)})
	}
	return ticks, float64(steps) * step
}

// niceStep rounds top/target up to 1, 2 or 5 times a power of ten.
func niceStep(top float64, target int) float64 {
	raw := top / float64(target)
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func percentTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, 6)
	for i := 0; i <= 5; i++ {
		v := float64(i) / 5
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%d%%", i*20)})
	}
	return ticks
}
