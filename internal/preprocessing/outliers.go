package preprocessing

import (
	"math"

	"tabprep/internal/config"
	"tabprep/internal/dataset"
	"tabprep/internal/stats"
)

// RemoveOutliers keeps the rows whose every numeric cell is an inlier for
// its column. zscore keeps |z| < 3 using the sample standard deviation; iqr
// keeps values within [Q1 - 1.5 IQR, Q3 + 1.5 IQR]. Bounds are computed on
// the original columns. Missing cells never mark a row as an outlier.
func RemoveOutliers(t *dataset.Table, method string) (*dataset.Table, OutliersSummary, error) {
	var inlier func(*dataset.Column) func(float64) bool
	switch method {
	case config.OutlierZScore:
		inlier = zscoreInlier
	case config.OutlierIQR:
		inlier = iqrInlier
	default:
		return nil, OutliersSummary{}, errInvalidOutlierMethod()
	}

	numeric := t.NumericColumns()
	if len(numeric) == 0 {
		return nil, OutliersSummary{}, errNoNumericForOutliers()
	}

	keep := make([]bool, t.Rows())
	for i := range keep {
		keep[i] = true
	}
	for _, c := range numeric {
		ok := inlier(c)
		for i, v := range c.Values {
			if keep[i] && !v.Null && !ok(c.Float(i)) {
				keep[i] = false
			}
		}
	}
	out := t.SelectRows(keep)

	return out, OutliersSummary{
		OriginalShape: t.Shape(),
		CleanedShape:  out.Shape(),
		RowsRemoved:   t.Rows() - out.Rows(),
		Method:        method,
	}, nil
}

func zscoreInlier(c *dataset.Column) func(float64) bool {
	values := c.Numbers()
	mean := stats.Mean(values)
	std := stats.Std(values)
	return func(v float64) bool {
		if std == 0 {
			return true
		}
		return math.Abs((v-mean)/std) < config.ZScoreThreshold
	}
}

func iqrInlier(c *dataset.Column) func(float64) bool {
	q1, q3 := stats.Quartiles(c.Numbers())
	iqr := q3 - q1
	lower := q1 - config.IQRMultiplier*iqr
	upper := q3 + config.IQRMultiplier*iqr
	return func(v float64) bool {
		return v >= lower && v <= upper
	}
}
