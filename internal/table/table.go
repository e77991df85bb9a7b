// Package table implements the column-oriented data table produced by region
// feature analyses: a categorical row axis naming each row, followed by
// numeric, integer or categorical columns of equal length.
package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// CategoricalAxis names the rows of a table.
type CategoricalAxis struct {
	Name   string
	Labels []string
}

// Table is an ordered collection of equal-length columns.
type Table struct {
	name    string
	rows    int
	rowAxis CategoricalAxis
	columns []Column
}

// New creates a table with the given number of rows and no column.
func New(rows int) *Table {
	return &Table{rows: rows}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// SetName sets the table name.
func (t *Table) SetName(name string) { t.name = name }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return t.rows }

// ColumnCount returns the number of columns, excluding the row axis.
func (t *Table) ColumnCount() int { return len(t.columns) }

// RowAxis returns the row axis. Its Labels are nil if no axis was set.
func (t *Table) RowAxis() CategoricalAxis { return t.rowAxis }

// SetRowAxis sets the row names. The number of labels must match the row count.
func (t *Table) SetRowAxis(axis CategoricalAxis) error {
	if len(axis.Labels) != t.rows {
		return fmt.Errorf("row axis %q has %d labels, table has %d rows", axis.Name, len(axis.Labels), t.rows)
	}
	labels := make([]string, len(axis.Labels))
	copy(labels, axis.Labels)
	t.rowAxis = CategoricalAxis{Name: axis.Name, Labels: labels}
	return nil
}

// AddColumn appends a column. Its length must match the row count.
func (t *Table) AddColumn(c Column) error {
	if c.Len() != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", c.Name(), c.Len(), t.rows)
	}
	t.columns = append(t.columns, c)
	return nil
}

// Columns returns the columns in insertion order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the column headings in insertion order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

// Column returns the first column with the given name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.columns {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// rowLabel returns the label of row, or its index when no axis is set.
func (t *Table) rowLabel(row int) string {
	if row < len(t.rowAxis.Labels) {
		return t.rowAxis.Labels[row]
	}
	return fmt.Sprint(row)
}

// WriteCSV writes the table as CSV. The first column holds the row labels,
// headed by the row axis name.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(t.columns)+1)
	header = append(header, t.rowAxis.Name)
	header = append(header, t.ColumnNames()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(header))
	for r := 0; r < t.rows; r++ {
		record[0] = t.rowLabel(r)
		for i, c := range t.columns {
			record[i+1] = c.Format(r)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", r, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// jsonColumn is the JSON form of a column.
type jsonColumn struct {
	Name   string        `json:"name"`
	Kind   string        `json:"kind"`
	Unit   string        `json:"unit,omitempty"`
	Values []interface{} `json:"values"`
}

// jsonTable is the JSON form of a table.
type jsonTable struct {
	Name      string       `json:"name,omitempty"`
	RowName   string       `json:"row_name"`
	RowLabels []string     `json:"row_labels"`
	Columns   []jsonColumn `json:"columns"`
}

// MarshalJSON encodes the table column by column. NaN and infinite numeric
// values are encoded as null.
func (t *Table) MarshalJSON() ([]byte, error) {
	out := jsonTable{
		Name:      t.name,
		RowName:   t.rowAxis.Name,
		RowLabels: make([]string, t.rows),
		Columns:   make([]jsonColumn, len(t.columns)),
	}
	for r := 0; r < t.rows; r++ {
		out.RowLabels[r] = t.rowLabel(r)
	}
	for i, c := range t.columns {
		values := make([]interface{}, c.Len())
		for r := range values {
			values[r] = c.JSONValue(r)
		}
		out.Columns[i] = jsonColumn{
			Name:   c.Name(),
			Kind:   c.Kind(),
			Unit:   c.UnitName(),
			Values: values,
		}
	}
	return json.Marshal(out)
}
