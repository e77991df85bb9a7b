package regfeat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/region-features-mcp/internal/table"
)

// UnitDisplay selects how physical units appear in the feature table.
type UnitDisplay int

const (
	// UnitsNone appends columns unmodified.
	UnitsNone UnitDisplay = iota

	// UnitsColumnNames renames columns with a unit to "<name>_(<unit>)".
	UnitsColumnNames

	// UnitsNewColumns follows each column having a unit with a categorical
	// "<name>_unit" column repeating the unit on every row.
	UnitsNewColumns

	// UnitsNewTable keeps column names unchanged and lists the unit of every
	// column in a separate table.
	UnitsNewTable
)

var unitDisplayNames = map[UnitDisplay]string{
	UnitsNone:        "none",
	UnitsColumnNames: "column_names",
	UnitsNewColumns:  "new_columns",
	UnitsNewTable:    "new_table",
}

func (u UnitDisplay) String() string {
	if s, ok := unitDisplayNames[u]; ok {
		return s
	}
	return fmt.Sprintf("UnitDisplay(%d)", int(u))
}

func (u UnitDisplay) valid() bool {
	_, ok := unitDisplayNames[u]
	return ok
}

// ParseUnitDisplay parses a policy name such as "column_names". Matching is
// case-insensitive and accepts '-' in place of '_'.
func ParseUnitDisplay(s string) (UnitDisplay, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for u, name := range unitDisplayNames {
		if name == key {
			return u, nil
		}
	}
	return UnitsNone, &UnknownUnitPolicyError{Value: s}
}

// NewRegionTable returns an empty table with one row per analyzed region,
// labelled by the region label.
func (a *Analysis) NewRegionTable() *table.Table {
	labels := a.index.Labels()
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = strconv.Itoa(l)
	}
	t := table.New(len(labels))
	// names has one entry per row
	_ = t.SetRowAxis(table.CategoricalAxis{Name: "Label", Labels: names})
	return t
}

// CreateTables computes every registered feature and assembles the feature
// table, one row per region and one or more columns per feature.
//
// The second table pairs every column of the feature table with its unit
// under UnitsNewTable; it has no rows under the other policies.
func (a *Analysis) CreateTables() (*table.Table, *table.Table, error) {
	if !a.unitDisplay.valid() {
		return nil, nil, &UnknownUnitPolicyError{Value: a.unitDisplay.String()}
	}
	if err := a.ComputeAll(); err != nil {
		return nil, nil, err
	}

	features := a.NewRegionTable()
	features.SetName("Features")
	var unitColumns, units []string

	for _, id := range a.requested {
		if !a.IsComputed(id) {
			return nil, nil, &NotComputedError{ID: id}
		}
		f, err := a.Feature(id)
		if err != nil {
			return nil, nil, err
		}
		tf, ok := AsTabular(f)
		if !ok {
			continue
		}
		part, err := tf.Table(a)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build table of feature %q: %w", id, err)
		}
		declared := tf.UnitNames(a)

		for i, col := range part.Columns() {
			unit := col.UnitName()
			if i < len(declared) {
				unit = declared[i]
			}
			if err := a.appendColumn(features, col, unit); err != nil {
				return nil, nil, fmt.Errorf("failed to add columns of feature %q: %w", id, err)
			}
			if a.unitDisplay == UnitsNewTable {
				unitColumns = append(unitColumns, col.Name())
				units = append(units, unit)
			}
		}
	}

	unitTable := table.New(len(unitColumns))
	unitTable.SetName("Units")
	if err := unitTable.SetRowAxis(table.CategoricalAxis{Name: "Feature", Labels: unitColumns}); err != nil {
		return nil, nil, err
	}
	if len(unitColumns) > 0 {
		if err := unitTable.AddColumn(table.NewCategoricalColumn("Unit", units)); err != nil {
			return nil, nil, err
		}
	}
	return features, unitTable, nil
}

// CreateTable is like CreateTables but returns only the feature table.
func (a *Analysis) CreateTable() (*table.Table, error) {
	t, _, err := a.CreateTables()
	return t, err
}

// appendColumn adds a copy of col to t following the unit display policy.
func (a *Analysis) appendColumn(t *table.Table, col table.Column, unit string) error {
	c := col.Duplicate()
	switch a.unitDisplay {
	case UnitsColumnNames:
		if unit != "" {
			c.SetName(fmt.Sprintf("%s_(%s)", col.Name(), unit))
		}
		return t.AddColumn(c)
	case UnitsNewColumns:
		if err := t.AddColumn(c); err != nil {
			return err
		}
		if unit == "" {
			return nil
		}
		values := make([]string, c.Len())
		for i := range values {
			values[i] = unit
		}
		return t.AddColumn(table.NewCategoricalColumn(col.Name()+"_unit", values))
	default:
		return t.AddColumn(c)
	}
}
