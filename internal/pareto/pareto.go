// Package pareto builds Pareto tables: items sorted by descending frequency,
// each with its share of the total and the running cumulative share.
package pareto

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultLabel is the column name used when no label is given.
const DefaultLabel = "items"

// Error sentinels. Callers match them with errors.Is.
var (
	// ErrInvalidInput is returned when items and frequencies cannot be
	// paired up, or a frequency is negative or not a number.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateData is returned when there is nothing to distribute:
	// no items at all, or every frequency is zero.
	ErrDegenerateData = errors.New("degenerate data: total frequency is zero")

	// ErrRenderingFailure wraps errors raised while drawing or saving a chart.
	ErrRenderingFailure = errors.New("rendering failure")
)

// Pareto holds the raw inputs of an analysis. The table is rebuilt from these
// fields on every call, so changes made to them between calls are observed.
type Pareto struct {
	Items       []string
	Frequencies []float64
	Label       string
}

// New creates a Pareto for the given items and frequencies.
// An empty label falls back to DefaultLabel.
func New(items []string, frequencies []float64, label string) *Pareto {
	if label == "" {
		label = DefaultLabel
	}
	return &Pareto{
		Items:       items,
		Frequencies: frequencies,
		Label:       label,
	}
}

// String returns a debug representation with the raw inputs.
func (p *Pareto) String() string {
	freqs := make([]string, len(p.Frequencies))
	for i, f := range p.Frequencies {
		freqs[i] = formatNumber(f)
	}
	return fmt.Sprintf("Pareto(items=[%s], frequencies=[%s], label=%s)",
		strings.Join(p.Items, " "), strings.Join(freqs, " "), p.Label)
}

// Row is one line of a Pareto table.
type Row struct {
	Item            string  `json:"item"`
	Frequency       float64 `json:"frequency"`
	Share           float64 `json:"share"`
	CumulativeShare float64 `json:"cumulative_share"`
}

// Table is the derived Pareto table. Label is the sanitized item column name.
type Table struct {
	Label string `json:"label"`
	Rows  []Row  `json:"rows"`
}

// Table builds the derived table. Rows are sorted by descending frequency;
// rows with equal frequency keep their input order.
func (p *Pareto) Table() (Table, error) {
	return Build(p.Items, p.Frequencies, p.Label)
}

// Build is the stateless form of (*Pareto).Table.
func Build(items []string, frequencies []float64, label string) (Table, error) {
	if len(items) != len(frequencies) {
		return Table{}, fmt.Errorf("%w: %d items but %d frequencies",
			ErrInvalidInput, len(items), len(frequencies))
	}
	if len(items) == 0 {
		return Table{}, fmt.Errorf("%w: no items", ErrDegenerateData)
	}

	var total float64
	rows := make([]Row, len(items))
	for i, f := range frequencies {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return Table{}, fmt.Errorf("%w: frequency %v for %q must be a non-negative number",
				ErrInvalidInput, f, items[i])
		}
		rows[i] = Row{Item: items[i], Frequency: f}
		total += f
	}
	if total == 0 {
		return Table{}, ErrDegenerateData
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Frequency > rows[j].Frequency
	})

	// Finite frequencies can still sum past MaxFloat64. Scale by the
	// largest one so the shares stay well defined.
	scale := 1.0
	if math.IsInf(total, 0) {
		for _, r := range rows {
			scale = math.Max(scale, r.Frequency)
		}
		total = 0
		for _, r := range rows {
			total += r.Frequency / scale
		}
	}

	var cum float64
	for i := range rows {
		rows[i].Share = rows[i].Frequency / scale / total
		cum += rows[i].Share
		rows[i].CumulativeShare = cum
	}

	return Table{Label: Sanitize(label), Rows: rows}, nil
}

// Shares returns the share column in table order.
func (p *Pareto) Shares() ([]float64, error) {
	t, err := p.Table()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Share
	}
	return out, nil
}

// CumulativeShares returns the cumulative share column in table order.
func (p *Pareto) CumulativeShares() ([]float64, error) {
	t, err := p.Table()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.CumulativeShare
	}
	return out, nil
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Total returns the sum of all frequencies.
func (t Table) Total() float64 {
	var total float64
	for _, r := range t.Rows {
		total += r.Frequency
	}
	return total
}

// Items returns the item column in table order.
func (t Table) Items() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Item
	}
	return out
}

// Frequencies returns the frequency column in table order.
func (t Table) Frequencies() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Frequency
	}
	return out
}

// VitalFew returns the leading rows needed to reach threshold cumulative
// share. The row that crosses the threshold is included.
func (t Table) VitalFew(threshold float64) []Row {
	for i, r := range t.Rows {
		// Shares are summed in floating point; 0.3+0.5 may land just under 0.8.
		if r.CumulativeShare >= threshold-1e-9 {
			return t.Rows[:i+1]
		}
	}
	return t.Rows
}

// formatNumber prints whole frequencies without a decimal part.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%g", f)
}
