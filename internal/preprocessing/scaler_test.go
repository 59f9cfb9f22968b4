package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprep/internal/dataset"
	apperrors "tabprep/internal/errors"
	"tabprep/internal/stats"
)

func scaleInput() *dataset.Table {
	return dataset.MustTable(
		col("a", dataset.TypeInt, 2, 4, 6, 10),
		col("b", dataset.TypeFloat, 1.5, nil, -0.5, 3),
		col("const", dataset.TypeFloat, 7, 7, nil, 7),
		col("name", dataset.TypeText, "w", "x", "y", "z"),
	)
}

func TestScale_Normalization(t *testing.T) {
	in := scaleInput()
	out, summary, err := Scale(in, "normalization")
	require.NoError(t, err)

	assert.Equal(t, ScalingSummary{
		Method:        "normalization",
		ScaledColumns: []string{"a", "b", "const"},
		OriginalShape: dataset.Shape{4, 4},
		ScaledShape:   dataset.Shape{4, 4},
	}, summary)

	assert.Equal(t, []interface{}{0.0, 0.25, 0.5, 1.0}, cells(column(out, "a")))
	assert.Equal(t, dataset.TypeFloat, column(out, "a").Type)

	b := cells(column(out, "b"))
	assert.InDelta(t, 0.5714285714, b[0], 1e-9)
	assert.Nil(t, b[1], "missing cells stay missing")
	assert.Equal(t, 0.0, b[2])
	assert.Equal(t, 1.0, b[3])

	// constant column collapses to zero, missing cell included
	assert.Equal(t, []interface{}{0.0, 0.0, 0.0, 0.0}, cells(column(out, "const")))

	assert.Equal(t, cells(column(in, "name")), cells(column(out, "name")))
	assert.Equal(t, dataset.TypeInt, column(in, "a").Type, "input untouched")
}

func TestScale_NormalizationBounds(t *testing.T) {
	in := dataset.MustTable(col("v", dataset.TypeFloat, 3.3, -12, 0.001, 1e6, 42))
	out, _, err := Scale(in, "normalization")
	require.NoError(t, err)

	for _, v := range column(out, "v").Numbers() {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Equal(t, 0.0, column(out, "v").Values[1].Num)
	assert.Equal(t, 1.0, column(out, "v").Values[3].Num)
}

func TestScale_Standardization(t *testing.T) {
	in := scaleInput()
	out, summary, err := Scale(in, "standardization")
	require.NoError(t, err)
	assert.Equal(t, "standardization", summary.Method)

	for _, name := range []string{"a", "b"} {
		values := column(out, name).Numbers()
		assert.InDelta(t, 0, stats.Mean(values), 1e-9, name)
		assert.InDelta(t, 1, stats.Std(values), 1e-9, name)
	}
	assert.Nil(t, cells(column(out, "b"))[1])
	assert.Equal(t, []interface{}{0.0, 0.0, 0.0, 0.0}, cells(column(out, "const")))
}

func TestScale_AllMissingColumn(t *testing.T) {
	in := dataset.MustTable(
		col("a", dataset.TypeFloat, nil, nil),
		col("b", dataset.TypeInt, 1, 2),
	)
	for _, method := range []string{"normalization", "standardization"} {
		out, _, err := Scale(in, method)
		require.NoError(t, err, method)
		assert.Equal(t, 2, column(out, "a").MissingCount(), method)
		for _, v := range column(out, "b").Numbers() {
			assert.False(t, math.IsNaN(v))
		}
	}
}

func TestScale_Errors(t *testing.T) {
	_, _, err := Scale(scaleInput(), "minmax")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParameter))
	assert.Equal(t, "Invalid scaling method", err.Error())

	textOnly := dataset.MustTable(col("name", dataset.TypeText, "a"))
	_, _, err = Scale(textOnly, "normalization")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNoNumericColumns))
	assert.Equal(t, "No numeric columns found for scaling", err.Error())
}
