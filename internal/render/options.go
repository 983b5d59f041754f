package render

import (
	"fmt"
	"math"

	"github.com/blackwell-systems/pareto/internal/pareto"
)

// Defaults for Options.
const (
	DefaultTitle  = "Pareto Diagram"
	DefaultDPI    = 500
	DefaultWidth  = 12
	DefaultHeight = 6
)

// FigureSize is the physical size of a chart in inches.
type FigureSize struct {
	Width  float64
	Height float64
}

// Options controls how a Pareto chart is drawn and saved.
type Options struct {
	Title string

	FigureSize FigureSize

	// XAxisLabel replaces the x axis name. When empty the raw (unsanitized)
	// label of the Pareto is used.
	XAxisLabel string

	// Show80PercentLine draws a reference line at 80% cumulative share.
	Show80PercentLine bool

	// SaveToFile writes the chart as a PNG named after the title.
	SaveToFile bool

	// DPI sets the pixel density of the saved image.
	DPI float64

	// OutputDir is where saved charts are written. Empty means the
	// current working directory.
	OutputDir string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Title:      DefaultTitle,
		FigureSize: FigureSize{Width: DefaultWidth, Height: DefaultHeight},
		DPI:        DefaultDPI,
	}
}

// XAxisName returns the x axis label for a Pareto with the given raw label.
func (o Options) XAxisName(label string) string {
	if o.XAxisLabel != "" {
		return o.XAxisLabel
	}
	return label
}

// Limits on the rendered canvas, in pixels.
const (
	maxCanvasSide = 1 << 15
	maxCanvasArea = 1 << 26
)

// canvas converts the figure size to a pixel canvas at the configured DPI.
// Non-finite or non-positive values, and canvases too large to allocate,
// are rejected.
func (o Options) canvas() (int, int, error) {
	for _, v := range []float64{o.FigureSize.Width, o.FigureSize.Height, o.DPI} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return 0, 0, fmt.Errorf("%w: invalid figure size %gx%g at %g dpi",
				pareto.ErrRenderingFailure, o.FigureSize.Width, o.FigureSize.Height, o.DPI)
		}
	}

	w := math.Round(o.FigureSize.Width * o.DPI)
	h := math.Round(o.FigureSize.Height * o.DPI)
	if w < 1 || h < 1 || w > maxCanvasSide || h > maxCanvasSide || w*h > maxCanvasArea {
		return 0, 0, fmt.Errorf("%w: canvas %gx%g pixels is out of range",
			pareto.ErrRenderingFailure, w, h)
	}
	return int(w), int(h), nil
}
