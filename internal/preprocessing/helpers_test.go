package preprocessing

import (
	"fmt"

	"tabprep/internal/dataset"
)

// col builds a column; nil cells are missing.
func col(name string, typ dataset.ColumnType, cells ...interface{}) *dataset.Column {
	values := make([]dataset.Value, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case nil:
			values[i] = dataset.Missing()
		case int:
			if typ == dataset.TypeInt {
				values[i] = dataset.Integer(int64(v))
			} else {
				values[i] = dataset.Number(float64(v))
			}
		case float64:
			values[i] = dataset.Number(v)
		case string:
			values[i] = dataset.Text(v)
		default:
			panic(fmt.Sprintf("unsupported cell %T", c))
		}
	}
	return dataset.NewColumn(name, typ, values...)
}

// cells renders a column back to comparable values; missing cells are nil
// and numbers are floats.
func cells(c *dataset.Column) []interface{} {
	out := make([]interface{}, len(c.Values))
	for i, v := range c.Values {
		switch {
		case v.Null:
			out[i] = nil
		case c.Type.IsNumeric():
			out[i] = c.Float(i)
		default:
			out[i] = v.Text
		}
	}
	return out
}

func column(t *dataset.Table, name string) *dataset.Column {
	c, ok := t.Column(name)
	if !ok {
		panic("no column " + name)
	}
	return c
}
