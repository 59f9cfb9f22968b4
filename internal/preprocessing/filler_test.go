package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprep/internal/dataset"
	apperrors "tabprep/internal/errors"
)

func fillInput() *dataset.Table {
	return dataset.MustTable(
		col("a", dataset.TypeFloat, 1, nil, 3, 3, 10),
		col("name", dataset.TypeText, "x", "y", nil, "y", "x"),
		col("empty", dataset.TypeFloat, nil, nil, nil, nil, nil),
	)
}

func TestFill(t *testing.T) {
	tests := []struct {
		method       string
		wantA        interface{}
		wantName     interface{}
		missingAfter int
	}{
		{method: "mean", wantA: 4.25, wantName: nil, missingAfter: 6},
		{method: "median", wantA: 3.0, wantName: nil, missingAfter: 6},
		// ties resolve to the smallest value
		{method: "mode", wantA: 3.0, wantName: "x", missingAfter: 5},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			in := fillInput()
			out, summary, err := Fill(in, tt.method)
			require.NoError(t, err)

			assert.Equal(t, tt.wantA, cells(column(out, "a"))[1])
			assert.Equal(t, tt.wantName, cells(column(out, "name"))[2])
			assert.Equal(t, FillSummary{
				MissingBefore: 7,
				MissingAfter:  tt.missingAfter,
				MethodUsed:    tt.method,
			}, summary)
			assert.LessOrEqual(t, summary.MissingAfter, summary.MissingBefore)

			// fully missing columns stay missing
			assert.Equal(t, 5, column(out, "empty").MissingCount())
			// input untouched
			assert.Equal(t, 7, in.MissingCount())
		})
	}
}

func TestFill_NonMissingCellsUnchanged(t *testing.T) {
	in := fillInput()
	out, _, err := Fill(in, "mean")
	require.NoError(t, err)

	before := cells(column(in, "a"))
	after := cells(column(out, "a"))
	for i := range before {
		if before[i] != nil {
			assert.Equal(t, before[i], after[i])
		}
	}
}

func TestFill_InvalidMethod(t *testing.T) {
	_, _, err := Fill(fillInput(), "average")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParameter))
	assert.Equal(t, "Invalid fill method", err.Error())
}

func TestFill_NoMissing(t *testing.T) {
	in := dataset.MustTable(col("a", dataset.TypeInt, 1, 2))
	out, summary, err := Fill(in, "median")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.MissingBefore)
	assert.Equal(t, 0, summary.MissingAfter)
	assert.Equal(t, dataset.TypeInt, column(out, "a").Type)
}

func TestFill_IntegerColumnWithGapsBecomesFloat(t *testing.T) {
	in := dataset.MustTable(col("a", dataset.TypeInt, 1, nil, 4))

	out, summary, err := Fill(in, "mean")
	require.NoError(t, err)

	assert.Equal(t, 0, summary.MissingAfter)
	assert.Equal(t, dataset.TypeFloat, column(out, "a").Type)
	assert.Equal(t, []interface{}{1.0, 2.5, 4.0}, cells(column(out, "a")))
	assert.Equal(t, dataset.TypeInt, column(in, "a").Type, "input untouched")
}
