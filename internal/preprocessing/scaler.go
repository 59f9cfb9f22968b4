package preprocessing

import (
	"tabprep/internal/config"
	"tabprep/internal/dataset"
	"tabprep/internal/stats"
)

// Scale rescales every numeric column. normalization maps [min, max] onto
// [0, 1]; standardization subtracts the mean and divides by the sample
// standard deviation. A column with no spread becomes all zeros, missing
// cells included. Scaled columns are float typed.
func Scale(t *dataset.Table, method string) (*dataset.Table, ScalingSummary, error) {
	var scale func(*dataset.Column)
	switch method {
	case config.ScaleNormalization:
		scale = normalize
	case config.ScaleStandardization:
		scale = standardize
	default:
		return nil, ScalingSummary{}, errInvalidScalingMethod()
	}

	numeric := t.NumericColumns()
	if len(numeric) == 0 {
		return nil, ScalingSummary{}, errNoNumericForScaling()
	}

	out := t.Clone()
	scaled := make([]string, 0, len(numeric))
	for _, c := range out.Columns {
		if !c.Type.IsNumeric() {
			continue
		}
		c.ToFloat()
		scale(c)
		scaled = append(scaled, c.Name)
	}

	return out, ScalingSummary{
		Method:        method,
		ScaledColumns: scaled,
		OriginalShape: t.Shape(),
		ScaledShape:   out.Shape(),
	}, nil
}

func normalize(c *dataset.Column) {
	values := c.Numbers()
	if len(values) == 0 {
		return
	}
	lo, hi := stats.MinMax(values)
	span := hi - lo
	if span == 0 {
		zero(c)
		return
	}
	for i, v := range c.Values {
		if !v.Null {
			c.Values[i].Num = (v.Num - lo) / span
		}
	}
}

func standardize(c *dataset.Column) {
	values := c.Numbers()
	if len(values) == 0 {
		return
	}
	mean := stats.Mean(values)
	std := stats.Std(values)
	if std == 0 {
		zero(c)
		return
	}
	for i, v := range c.Values {
		if !v.Null {
			c.Values[i].Num = (v.Num - mean) / std
		}
	}
}

func zero(c *dataset.Column) {
	for i := range c.Values {
		c.Values[i] = dataset.Number(0)
	}
}
