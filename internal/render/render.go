// Package render draws Pareto charts: frequency bars on the left axis and
// the cumulative share as a line on the right axis.
//
// A render builds the table, composes a fresh figure, optionally saves it
// as a PNG, and hands the table to a Displayer. No figure state is kept
// between calls.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/blackwell-systems/pareto/internal/pareto"
)

// Displayer shows a rendered Pareto table to the user.
type Displayer interface {
	Display(t pareto.Table, label string, opts Options) error
}

// DisplayFunc adapts a function to the Displayer interface.
type DisplayFunc func(t pareto.Table, label string, opts Options) error

// Display calls f.
func (f DisplayFunc) Display(t pareto.Table, label string, opts Options) error {
	return f(t, label, opts)
}

// Renderer draws Pareto charts. A nil Displayer skips the display step.
type Renderer struct {
	Displayer Displayer
}

// New creates a Renderer that shows charts with d.
func New(d Displayer) *Renderer {
	return &Renderer{Displayer: d}
}

// Render draws the chart for p. When opts.SaveToFile is set the PNG is
// written first and its path returned; the chart is then displayed.
func (r *Renderer) Render(p *pareto.Pareto, opts Options) (string, error) {
	t, err := p.Table()
	if err != nil {
		return "", err
	}

	fig, err := Figure(t, p.Label, opts)
	if err != nil {
		return "", err
	}

	var saved string
	if opts.SaveToFile {
		saved = filepath.Join(opts.OutputDir, pareto.TitleToFilename(opts.Title))
		if err := saveFigure(saved, fig); err != nil {
			return "", err
		}
	}

	if r.Displayer != nil {
		if err := r.Displayer.Display(t, p.Label, opts); err != nil {
			return saved, fmt.Errorf("%w: display: %w", pareto.ErrRenderingFailure, err)
		}
	}

	return saved, nil
}

// RenderPNG writes the chart for p to w as a PNG.
func RenderPNG(w io.Writer, p *pareto.Pareto, opts Options) error {
	t, err := p.Table()
	if err != nil {
		return err
	}
	fig, err := Figure(t, p.Label, opts)
	if err != nil {
		return err
	}
	return encode(w, fig)
}

// saveFigure writes fig to path. The image is encoded in memory and moved
// into place with a rename, so a failed render never leaves a partial file
// at path.
func saveFigure(path string, fig chart.Chart) error {
	var buf bytes.Buffer
	if err := encode(&buf, fig); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pareto-*.png")
	if err != nil {
		return fmt.Errorf("%w: create temp file in %s: %w", pareto.ErrRenderingFailure, dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", pareto.ErrRenderingFailure, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", pareto.ErrRenderingFailure, path, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", pareto.ErrRenderingFailure, path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: rename %s: %w", pareto.ErrRenderingFailure, path, err)
	}
	return nil
}

func encode(w io.Writer, fig chart.Chart) error {
	if err := fig.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("%w: %w", pareto.ErrRenderingFailure, err)
	}
	return nil
}
