package dataset

import (
	"fmt"
)

// ColumnType is the dtype inferred for a column at load time.
type ColumnType int

const (
	TypeInt ColumnType = iota
	TypeFloat
	TypeText
)

// String returns the dtype name as reported in logs.
func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "int64"
	case TypeFloat:
		return "float64"
	default:
		return "object"
	}
}

// IsNumeric reports whether the column holds numbers.
func (t ColumnType) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Value is a single cell. Integer columns use Int, float columns use Num
// and text columns use Text. A missing cell has Null set and never compares
// equal to anything, including another missing cell; see Table.RowKey for
// the one exception.
type Value struct {
	Int  int64
	Num  float64
	Text string
	Null bool
}

// Missing returns the missing marker.
func Missing() Value { return Value{Null: true} }

// Integer returns an integer cell.
func Integer(n int64) Value { return Value{Int: n} }

// Number returns a float cell.
func Number(f float64) Value { return Value{Num: f} }

// Text returns a text cell.
func Text(s string) Value { return Value{Text: s} }

// Column is a named, typed sequence of cells.
type Column struct {
	Name   string
	Type   ColumnType
	Values []Value
}

// NewColumn creates a column from values.
func NewColumn(name string, typ ColumnType, values ...Value) *Column {
	return &Column{Name: name, Type: typ, Values: values}
}

// Len returns the number of cells.
func (c *Column) Len() int { return len(c.Values) }

// Numbers returns the non-missing numeric values in row order as floats,
// for computing statistics.
func (c *Column) Numbers() []float64 {
	out := make([]float64, 0, len(c.Values))
	for i, v := range c.Values {
		if !v.Null {
			out = append(out, c.Float(i))
		}
	}
	return out
}

// Float returns cell i as a float. Integer cells are converted, which
// rounds magnitudes above 2^53.
func (c *Column) Float(i int) float64 {
	if c.Type == TypeInt {
		return float64(c.Values[i].Int)
	}
	return c.Values[i].Num
}

// ToFloat re-types an integer column as float in place.
func (c *Column) ToFloat() {
	if c.Type != TypeInt {
		return
	}
	for i, v := range c.Values {
		if !v.Null {
			c.Values[i] = Number(float64(v.Int))
		}
	}
	c.Type = TypeFloat
}

// Texts returns the non-missing text values in row order.
func (c *Column) Texts() []string {
	out := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		if !v.Null {
			out = append(out, v.Text)
		}
	}
	return out
}

// MissingCount counts missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.Null {
			n++
		}
	}
	return n
}

func (c *Column) clone() *Column {
	values := make([]Value, len(c.Values))
	copy(values, c.Values)
	return &Column{Name: c.Name, Type: c.Type, Values: values}
}

// Shape is a (rows, columns) pair. It encodes to JSON as a two-element array.
type Shape [2]int

// Rows returns the row count.
func (s Shape) Rows() int { return s[0] }

// Cols returns the column count.
func (s Shape) Cols() int { return s[1] }

// Table is an ordered set of equal-length columns.
type Table struct {
	Columns []*Column
	rows    int
}

// NewTable creates a table, rejecting columns of unequal length.
func NewTable(columns ...*Column) (*Table, error) {
	t := &Table{Columns: columns}
	for i, c := range columns {
		if i == 0 {
			t.rows = c.Len()
			continue
		}
		if c.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name, c.Len(), t.rows)
		}
	}
	return t, nil
}

// MustTable is NewTable for statically known inputs; it panics on error.
func MustTable(columns ...*Column) *Table {
	t, err := NewTable(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Rows returns the row count.
func (t *Table) Rows() int { return t.rows }

// Cols returns the column count.
func (t *Table) Cols() int { return len(t.Columns) }

// Shape returns (rows, cols).
func (t *Table) Shape() Shape { return Shape{t.rows, len(t.Columns)} }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// NumericColumns returns the integer and float columns in order.
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for _, c := range t.Columns {
		if c.Type.IsNumeric() {
			out = append(out, c)
		}
	}
	return out
}

// MissingCount counts missing cells across the whole table.
func (t *Table) MissingCount() int {
	n := 0
	for _, c := range t.Columns {
		n += c.MissingCount()
	}
	return n
}

// RowHasMissing reports whether row i contains at least one missing cell.
func (t *Table) RowHasMissing(i int) bool {
	for _, c := range t.Columns {
		if c.Values[i].Null {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	columns := make([]*Column, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = c.clone()
	}
	return &Table{Columns: columns, rows: t.rows}
}

// SelectRows returns a new table holding the rows where keep is true,
// in their original order.
func (t *Table) SelectRows(keep []bool) *Table {
	kept := 0
	for _, k := range keep {
		if k {
			kept++
		}
	}
	columns := make([]*Column, len(t.Columns))
	for j, c := range t.Columns {
		values := make([]Value, 0, kept)
		for i, v := range c.Values {
			if keep[i] {
				values = append(values, v)
			}
		}
		columns[j] = &Column{Name: c.Name, Type: c.Type, Values: values}
	}
	return &Table{Columns: columns, rows: kept}
}
