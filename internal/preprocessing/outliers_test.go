package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprep/internal/dataset"
	apperrors "tabprep/internal/errors"
	"tabprep/internal/stats"
)

func TestRemoveOutliers_IQR(t *testing.T) {
	in := dataset.MustTable(
		col("v", dataset.TypeInt, 10, 12, 11, 13, 12, 100),
		col("w", dataset.TypeFloat, 1, 2, nil, 2, 1, 1),
		col("tag", dataset.TypeText, "a", "b", "c", "d", "e", "f"),
	)

	out, summary, err := RemoveOutliers(in, "iqr")
	require.NoError(t, err)

	assert.Equal(t, OutliersSummary{
		OriginalShape: dataset.Shape{6, 3},
		CleanedShape:  dataset.Shape{5, 3},
		RowsRemoved:   1,
		Method:        "iqr",
	}, summary)
	assert.Equal(t, []interface{}{"a", "b", "c", "d", "e"}, cells(column(out, "tag")))
	assert.Nil(t, cells(column(out, "w"))[2], "missing cell does not mark an outlier")
}

func TestRemoveOutliers_IQRBoundsHold(t *testing.T) {
	original := []interface{}{-50, 1, 2, 2, 3, 3, 3, 4, 4, 5, 70}
	in := dataset.MustTable(col("v", dataset.TypeInt, original...))

	out, summary, err := RemoveOutliers(in, "iqr")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, summary.RowsRemoved, 0)

	q1, q3 := stats.Quartiles(column(in, "v").Numbers())
	iqr := q3 - q1
	for _, v := range column(out, "v").Numbers() {
		assert.GreaterOrEqual(t, v, q1-1.5*iqr)
		assert.LessOrEqual(t, v, q3+1.5*iqr)
	}
	assert.Equal(t, 2, summary.RowsRemoved)
}

func TestRemoveOutliers_ZScore(t *testing.T) {
	values := make([]interface{}, 0, 21)
	for i := 0; i < 20; i++ {
		values = append(values, 10)
	}
	values = append(values, 1000)
	values[0] = 11
	in := dataset.MustTable(col("v", dataset.TypeInt, values...))

	out, summary, err := RemoveOutliers(in, "zscore")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.RowsRemoved)
	assert.Equal(t, "zscore", summary.Method)
	assert.Equal(t, 20, out.Rows())
	assert.NotContains(t, column(out, "v").Numbers(), 1000.0)
}

func TestRemoveOutliers_ZScoreSmallSampleKeepsAll(t *testing.T) {
	// with n points the sample z-score cannot exceed (n-1)/sqrt(n)
	in := dataset.MustTable(col("v", dataset.TypeInt, 1, 2, 1000))

	out, summary, err := RemoveOutliers(in, "zscore")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.RowsRemoved)
	assert.Equal(t, 3, out.Rows())
}

func TestRemoveOutliers_ConstantColumn(t *testing.T) {
	in := dataset.MustTable(col("v", dataset.TypeFloat, 5, 5, 5))

	for _, method := range []string{"zscore", "iqr"} {
		out, summary, err := RemoveOutliers(in, method)
		require.NoError(t, err, method)
		assert.Equal(t, 0, summary.RowsRemoved, method)
		assert.Equal(t, 3, out.Rows(), method)
	}
}

func TestRemoveOutliers_Errors(t *testing.T) {
	in := dataset.MustTable(col("v", dataset.TypeInt, 1, 2))
	_, _, err := RemoveOutliers(in, "mad")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParameter))
	assert.Equal(t, "Invalid outlier detection method", err.Error())

	textOnly := dataset.MustTable(col("name", dataset.TypeText, "a"))
	_, _, err = RemoveOutliers(textOnly, "iqr")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNoNumericColumns))
	assert.Equal(t, "No numeric columns found for outlier removal", err.Error())
}
