package pareto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestTable_SortsDescending(t *testing.T) {
	p := New([]string{"A", "B", "C"}, []float64{10, 30, 60}, "")

	table, err := p.Table()
	require.NoError(t, err)

	assert.Equal(t, []string{"C", "B", "A"}, table.Items())
	assert.Equal(t, []float64{60, 30, 10}, table.Frequencies())
	assert.Equal(t, "items", table.Label)
}

func TestShares_EndToEnd(t *testing.T) {
	p := New([]string{"A", "B", "C"}, []float64{10, 30, 60}, "items")

	shares, err := p.Shares()
	require.NoError(t, err)
	require.Len(t, shares, 3)
	assert.InDelta(t, 0.6, shares[0], tolerance)
	assert.InDelta(t, 0.3, shares[1], tolerance)
	assert.InDelta(t, 0.1, shares[2], tolerance)

	cum, err := p.CumulativeShares()
	require.NoError(t, err)
	require.Len(t, cum, 3)
	assert.InDelta(t, 0.6, cum[0], tolerance)
	assert.InDelta(t, 0.9, cum[1], tolerance)
	assert.InDelta(t, 1.0, cum[2], tolerance)
}

func TestTable_TiesKeepInputOrder(t *testing.T) {
	p := New([]string{"X", "Y"}, []float64{50, 50}, "")

	table, err := p.Table()
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, table.Items())

	shares, err := p.Shares()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, shares, tolerance)

	cum, err := p.CumulativeShares()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 1.0}, cum, tolerance)
}

func TestTable_StableAmongManyTies(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f"}
	freqs := []float64{1, 5, 1, 5, 1, 9}

	table, err := New(items, freqs, "").Table()
	require.NoError(t, err)
	assert.Equal(t, []string{"f", "b", "d", "a", "c", "e"}, table.Items())
}

func TestTable_DuplicateLabelsStayDistinct(t *testing.T) {
	table, err := New([]string{"A", "A", "B"}, []float64{1, 2, 3}, "").Table()
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"B", "A", "A"}, table.Items())
	assert.Equal(t, []float64{3, 2, 1}, table.Frequencies())
}

func TestTable_Invariants(t *testing.T) {
	tests := []struct {
		name  string
		freqs []float64
	}{
		{"single", []float64{7}},
		{"fractional", []float64{0.1, 0.2, 0.3, 0.4}},
		{"with zeros", []float64{0, 3, 0, 1}},
		{"skewed", []float64{1000, 1, 1, 1, 1, 1, 1, 1}},
		{"many", []float64{13, 7, 21, 3, 8, 34, 2, 1, 5, 55, 89, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]string, len(tt.freqs))
			for i := range items {
				items[i] = string(rune('a' + i))
			}

			table, err := New(items, tt.freqs, "").Table()
			require.NoError(t, err)

			var sum float64
			for i, r := range table.Rows {
				sum += r.Share
				assert.GreaterOrEqual(t, r.Share, 0.0)
				assert.LessOrEqual(t, r.Share, 1.0)
				if i > 0 {
					assert.LessOrEqual(t, r.Frequency, table.Rows[i-1].Frequency, "row %d not sorted", i)
					assert.GreaterOrEqual(t, r.CumulativeShare, table.Rows[i-1].CumulativeShare, "row %d cumulative decreased", i)
				}
			}
			assert.InDelta(t, 1.0, sum, tolerance)
			assert.InDelta(t, 1.0, table.Rows[table.Len()-1].CumulativeShare, tolerance)
			assert.InDelta(t, sumOf(tt.freqs), table.Total(), tolerance)
		})
	}
}

func TestTable_HugeFrequencies(t *testing.T) {
	table, err := New([]string{"A", "B", "C"}, []float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64 / 2}, "").Table()
	require.NoError(t, err)

	assert.InDelta(t, 0.4, table.Rows[0].Share, tolerance)
	assert.InDelta(t, 0.4, table.Rows[1].Share, tolerance)
	assert.InDelta(t, 0.2, table.Rows[2].Share, tolerance)
	assert.InDelta(t, 0.8, table.Rows[1].CumulativeShare, tolerance)
	assert.InDelta(t, 1.0, table.Rows[2].CumulativeShare, tolerance)
}

func TestTable_Idempotent(t *testing.T) {
	p := New([]string{"A", "B", "C", "D"}, []float64{4, 9, 9, 1}, "unit type")

	first, err := p.Table()
	require.NoError(t, err)
	second, err := p.Table()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTable_ReflectsMutations(t *testing.T) {
	p := New([]string{"A", "B"}, []float64{1, 2}, "")

	before, err := p.Table()
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, before.Items())

	p.Frequencies[0] = 10
	after, err := p.Table()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, after.Items())
}

func TestTable_DoesNotReorderInputs(t *testing.T) {
	items := []string{"A", "B", "C"}
	freqs := []float64{10, 30, 60}

	_, err := New(items, freqs, "").Table()
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, items)
	assert.Equal(t, []float64{10, 30, 60}, freqs)
}

func TestTable_SanitizesLabel(t *testing.T) {
	table, err := New([]string{"A"}, []float64{1}, "unit type").Table()
	require.NoError(t, err)
	assert.Equal(t, "unit_type", table.Label)
}

func TestTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		freqs   []float64
		wantErr error
	}{
		{"length mismatch", []string{"A", "B", "C"}, []float64{1, 2}, ErrInvalidInput},
		{"negative", []string{"A", "B"}, []float64{1, -2}, ErrInvalidInput},
		{"nan", []string{"A"}, []float64{math.NaN()}, ErrInvalidInput},
		{"inf", []string{"A"}, []float64{math.Inf(1)}, ErrInvalidInput},
		{"empty", nil, nil, ErrDegenerateData},
		{"all zero", []string{"A", "B"}, []float64{0, 0}, ErrDegenerateData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.items, tt.freqs, "")

			_, err := p.Table()
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = p.Shares()
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = p.CumulativeShares()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVitalFew(t *testing.T) {
	table, err := New([]string{"A", "B", "C", "D"}, []float64{10, 30, 50, 10}, "").Table()
	require.NoError(t, err)

	tests := []struct {
		threshold float64
		want      []string
	}{
		{0.5, []string{"C"}},
		{0.8, []string{"C", "B"}},
		{0.81, []string{"C", "B", "A"}},
		{1.0, []string{"C", "B", "A", "D"}},
	}
	for _, tt := range tests {
		rows := table.VitalFew(tt.threshold)
		got := make([]string, len(rows))
		for i, r := range rows {
			got[i] = r.Item
		}
		assert.Equal(t, tt.want, got, "threshold %v", tt.threshold)
	}
}

func TestString(t *testing.T) {
	p := New([]string{"A", "B", "C"}, []float64{10, 30, 60.5}, "")
	assert.Equal(t, "Pareto(items=[A B C], frequencies=[10 30 60.5], label=items)", p.String())
}

func sumOf(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}
