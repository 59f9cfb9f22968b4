package preprocessing

import (
	"math"

	"tabprep/internal/config"
	"tabprep/internal/dataset"
	"tabprep/internal/stats"
)

// Fill replaces missing cells with a per-column statistic of the non-missing
// values. mean and median apply to numeric columns only; mode applies to
// every column. A column without any value keeps its missing cells. Filled
// integer columns become float.
func Fill(t *dataset.Table, method string) (*dataset.Table, FillSummary, error) {
	var statistic func(*dataset.Column) (dataset.Value, bool)
	switch method {
	case config.FillMean:
		statistic = numericStatistic(stats.Mean)
	case config.FillMedian:
		statistic = numericStatistic(stats.Median)
	case config.FillMode:
		statistic = columnMode
	default:
		return nil, FillSummary{}, errInvalidFillMethod()
	}

	out := t.Clone()
	for _, c := range out.Columns {
		if c.MissingCount() == 0 {
			continue
		}
		fill, ok := statistic(c)
		if !ok {
			continue
		}
		c.ToFloat()
		for i := range c.Values {
			if c.Values[i].Null {
				c.Values[i] = fill
			}
		}
	}

	return out, FillSummary{
		MissingBefore: t.MissingCount(),
		MissingAfter:  out.MissingCount(),
		MethodUsed:    method,
	}, nil
}

func numericStatistic(f func([]float64) float64) func(*dataset.Column) (dataset.Value, bool) {
	return func(c *dataset.Column) (dataset.Value, bool) {
		if !c.Type.IsNumeric() {
			return dataset.Value{}, false
		}
		v := f(c.Numbers())
		if math.IsNaN(v) {
			return dataset.Value{}, false
		}
		return dataset.Number(v), true
	}
}

func columnMode(c *dataset.Column) (dataset.Value, bool) {
	if c.Type.IsNumeric() {
		m, ok := stats.Mode(c.Numbers())
		return dataset.Number(m), ok
	}
	m, ok := stats.ModeString(c.Texts())
	return dataset.Text(m), ok
}
