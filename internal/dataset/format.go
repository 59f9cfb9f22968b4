package dataset

import (
	"math"
	"strconv"
	"strings"
)

// FormatValue renders a cell the way it is written to CSV: missing cells are
// empty, integers are plain base-10 and floats use the shortest round-trip
// representation with a trailing ".0" for whole values.
func FormatValue(typ ColumnType, v Value) string {
	if v.Null {
		return ""
	}
	switch typ {
	case TypeInt:
		return strconv.FormatInt(v.Int, 10)
	case TypeFloat:
		return formatFloat(v.Num)
	default:
		return v.Text
	}
}

// formatFloat switches to exponent notation outside [1e-4, 1e16).
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// RowKey encodes row i so that two rows share a key exactly when every
// column holds the same value. Missing cells in the same column position
// produce the same key, so duplicate detection treats them as equal.
func (t *Table) RowKey(i int) string {
	var b strings.Builder
	for _, c := range t.Columns {
		v := c.Values[i]
		switch {
		case v.Null:
			b.WriteString("\x00")
		case c.Type == TypeInt:
			b.WriteString("i")
			b.WriteString(strconv.FormatInt(v.Int, 10))
		case c.Type == TypeFloat:
			n := v.Num
			if n == 0 {
				n = 0 // folds -0 into 0
			}
			b.WriteString("n")
			b.WriteString(strconv.FormatFloat(n, 'g', -1, 64))
		default:
			b.WriteString("s")
			b.WriteString(strconv.Itoa(len(v.Text)))
			b.WriteString(":")
			b.WriteString(v.Text)
		}
		b.WriteString("\x1f")
	}
	return b.String()
}
