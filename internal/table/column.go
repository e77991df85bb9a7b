package table

import (
	"math"
	"strconv"
)

// Column is a named sequence of values, one per table row.
type Column interface {
	// Name returns the column heading.
	Name() string

	// SetName renames the column.
	SetName(name string)

	// Len returns the number of values.
	Len() int

	// UnitName returns the unit of the values, or "" if none is declared.
	UnitName() string

	// Duplicate returns a deep copy of the column.
	Duplicate() Column

	// Format returns the value at row as text, as written to CSV.
	Format(row int) string

	// JSONValue returns the value at row in a form accepted by encoding/json.
	JSONValue(row int) interface{}

	// Kind returns "numeric", "integer" or "categorical".
	Kind() string
}

// NumericColumn holds real values with an optional unit.
type NumericColumn struct {
	name   string
	unit   string
	values []float64
}

// NewNumericColumn creates a numeric column. The values are copied.
func NewNumericColumn(name string, values []float64) *NumericColumn {
	v := make([]float64, len(values))
	copy(v, values)
	return &NumericColumn{name: name, values: v}
}

func (c *NumericColumn) Name() string          { return c.name }
func (c *NumericColumn) SetName(name string)   { c.name = name }
func (c *NumericColumn) Len() int              { return len(c.values) }
func (c *NumericColumn) UnitName() string      { return c.unit }
func (c *NumericColumn) SetUnitName(u string)  { c.unit = u }
func (c *NumericColumn) Kind() string          { return "numeric" }
func (c *NumericColumn) Value(row int) float64 { return c.values[row] }

// Values returns a copy of the column values.
func (c *NumericColumn) Values() []float64 {
	v := make([]float64, len(c.values))
	copy(v, c.values)
	return v
}

func (c *NumericColumn) Duplicate() Column {
	dup := NewNumericColumn(c.name, c.values)
	dup.unit = c.unit
	return dup
}

func (c *NumericColumn) Format(row int) string {
	return strconv.FormatFloat(c.values[row], 'g', -1, 64)
}

// JSONValue returns nil for NaN and infinite values, which JSON cannot carry.
func (c *NumericColumn) JSONValue(row int) interface{} {
	v := c.values[row]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// IntegerColumn holds integer values with an optional unit.
type IntegerColumn struct {
	name   string
	unit   string
	values []int
}

// NewIntegerColumn creates an integer column. The values are copied.
func NewIntegerColumn(name string, values []int) *IntegerColumn {
	v := make([]int, len(values))
	copy(v, values)
	return &IntegerColumn{name: name, values: v}
}

func (c *IntegerColumn) Name() string                  { return c.name }
func (c *IntegerColumn) SetName(name string)           { c.name = name }
func (c *IntegerColumn) Len() int                      { return len(c.values) }
func (c *IntegerColumn) UnitName() string              { return c.unit }
func (c *IntegerColumn) SetUnitName(u string)          { c.unit = u }
func (c *IntegerColumn) Kind() string                  { return "integer" }
func (c *IntegerColumn) Value(row int) int             { return c.values[row] }
func (c *IntegerColumn) Format(row int) string         { return strconv.Itoa(c.values[row]) }
func (c *IntegerColumn) JSONValue(row int) interface{} { return c.values[row] }

// Values returns a copy of the column values.
func (c *IntegerColumn) Values() []int {
	v := make([]int, len(c.values))
	copy(v, c.values)
	return v
}

func (c *IntegerColumn) Duplicate() Column {
	dup := NewIntegerColumn(c.name, c.values)
	dup.unit = c.unit
	return dup
}

// CategoricalColumn holds text values stored as indices into a list of
// levels. A negative index denotes a missing value.
type CategoricalColumn struct {
	name    string
	levels  []string
	indices []int
}

// NewCategoricalColumn creates a categorical column from raw strings; the
// levels are the distinct strings in order of first appearance.
func NewCategoricalColumn(name string, values []string) *CategoricalColumn {
	c := &CategoricalColumn{name: name, indices: make([]int, len(values))}
	pos := make(map[string]int)
	for i, v := range values {
		idx, ok := pos[v]
		if !ok {
			idx = len(c.levels)
			pos[v] = idx
			c.levels = append(c.levels, v)
		}
		c.indices[i] = idx
	}
	return c
}

// NewCategoricalColumnFromIndices creates a categorical column from level
// indices. Both slices are copied.
func NewCategoricalColumnFromIndices(name string, indices []int, levels []string) *CategoricalColumn {
	c := &CategoricalColumn{
		name:    name,
		levels:  make([]string, len(levels)),
		indices: make([]int, len(indices)),
	}
	copy(c.levels, levels)
	copy(c.indices, indices)
	return c
}

func (c *CategoricalColumn) Name() string        { return c.name }
func (c *CategoricalColumn) SetName(name string) { c.name = name }
func (c *CategoricalColumn) Len() int            { return len(c.indices) }
func (c *CategoricalColumn) UnitName() string    { return "" }
func (c *CategoricalColumn) Kind() string        { return "categorical" }

// Levels returns a copy of the level names.
func (c *CategoricalColumn) Levels() []string {
	l := make([]string, len(c.levels))
	copy(l, c.levels)
	return l
}

// Value returns the text at row, or "" for a missing value.
func (c *CategoricalColumn) Value(row int) string {
	idx := c.indices[row]
	if idx < 0 || idx >= len(c.levels) {
		return ""
	}
	return c.levels[idx]
}

func (c *CategoricalColumn) Duplicate() Column {
	return NewCategoricalColumnFromIndices(c.name, c.indices, c.levels)
}

func (c *CategoricalColumn) Format(row int) string         { return c.Value(row) }
func (c *CategoricalColumn) JSONValue(row int) interface{} { return c.Value(row) }
