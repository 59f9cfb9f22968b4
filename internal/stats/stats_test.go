package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestStd(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{name: "sample std", in: []float64{2, 4, 4, 4, 5, 5, 7, 9}, want: math.Sqrt(32.0 / 7.0)},
		{name: "constant", in: []float64{3, 3, 3}, want: 0},
		{name: "single value", in: []float64{5}, want: 0},
		{name: "empty", in: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Std(tt.in), 1e-12)
		})
	}
}

func TestMinMax(t *testing.T) {
	min, max := MinMax([]float64{3, -1, 7, 2})
	assert.Equal(t, -1.0, min)
	assert.Equal(t, 7.0, max)

	min, max = MinMax(nil)
	assert.True(t, math.IsNaN(min))
	assert.True(t, math.IsNaN(max))
}

func TestPercentile(t *testing.T) {
	data := []float64{4, 1, 3, 2}

	tests := []struct {
		p    float64
		want float64
	}{
		{p: 0, want: 1},
		{p: 25, want: 1.75},
		{p: 50, want: 2.5},
		{p: 75, want: 3.25},
		{p: 100, want: 4},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(data, tt.p), 1e-12, "p=%v", tt.p)
	}
	assert.Equal(t, []float64{4, 1, 3, 2}, data, "input must not be reordered")
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, Median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, Median([]float64{1, 2, 3, 4}))
}

func TestQuartiles(t *testing.T) {
	q1, q3 := Quartiles([]float64{1, 2, 3, 4, 5})
	assert.Equal(t, 2.0, q1)
	assert.Equal(t, 4.0, q3)
}

func TestMode(t *testing.T) {
	mode, ok := Mode([]float64{5, 1, 5, 2, 1})
	require.True(t, ok)
	assert.Equal(t, 1.0, mode, "ties resolve to the smallest value")

	mode, ok = Mode([]float64{9, 3, 9})
	require.True(t, ok)
	assert.Equal(t, 9.0, mode)

	_, ok = Mode(nil)
	assert.False(t, ok)
}

func TestModeString(t *testing.T) {
	mode, ok := ModeString([]string{"b", "a", "b", "a", "c"})
	require.True(t, ok)
	assert.Equal(t, "a", mode)

	mode, ok = ModeString([]string{"x", "y", "y"})
	require.True(t, ok)
	assert.Equal(t, "y", mode)

	_, ok = ModeString(nil)
	assert.False(t, ok)
}

func TestIsWhole(t *testing.T) {
	assert.True(t, IsWhole(3))
	assert.True(t, IsWhole(-0))
	assert.False(t, IsWhole(3.5))
	assert.False(t, IsWhole(math.Inf(1)))
	assert.False(t, IsWhole(math.NaN()))
}
