package preprocessing

import (
	"tabprep/internal/dataset"
	"tabprep/internal/stats"
)

// int64 holds every whole float in [minWhole, maxWhole) exactly.
const (
	minWhole = -1 << 63
	maxWhole = 1 << 63
)

// Clean drops every row holding a missing cell, then re-types each float
// column whose remaining values are all whole numbers as integer.
func Clean(t *dataset.Table) (*dataset.Table, CleaningSummary) {
	keep := make([]bool, t.Rows())
	for i := range keep {
		keep[i] = !t.RowHasMissing(i)
	}
	out := t.SelectRows(keep)

	for _, c := range out.Columns {
		if c.Type == dataset.TypeFloat && allWhole(c) {
			narrow(c)
		}
	}

	return out, CleaningSummary{
		OriginalRows: t.Rows(),
		CleanedRows:  out.Rows(),
		DroppedRows:  t.Rows() - out.Rows(),
		Columns:      out.Names(),
	}
}

func allWhole(c *dataset.Column) bool {
	for _, v := range c.Values {
		if v.Null || !stats.IsWhole(v.Num) || v.Num < minWhole || v.Num >= maxWhole {
			return false
		}
	}
	return true
}

// narrow re-types a float column of whole values as integer.
func narrow(c *dataset.Column) {
	for i, v := range c.Values {
		c.Values[i] = dataset.Integer(int64(v.Num))
	}
	c.Type = dataset.TypeInt
}
