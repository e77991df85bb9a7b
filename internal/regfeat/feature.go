package regfeat

import (
	"github.com/ironsheep/region-features-mcp/internal/table"
)

// ID identifies a kind of feature. It is the key of the registry, the
// feature cache and the result store.
type ID string

// Feature computes something from the regions of an Analysis.
type Feature interface {
	// ID returns the identifier the feature is registered under.
	ID() ID

	// RequiredFeatures lists the features that must be computed first.
	RequiredFeatures() []ID

	// Compute returns the feature value for every region of a. It may call
	// a.Require to make sure its prerequisites are available.
	Compute(a *Analysis) (Result, error)
}

// Tabular is a feature that contributes one or more columns to the output
// table, with one row per region.
type Tabular interface {
	Feature

	// Table returns the feature columns. The row axis is that of
	// Analysis.NewRegionTable.
	Table(a *Analysis) (*table.Table, error)

	// UnitNames returns the unit of each column, or nil if no unit is
	// declared. A non-nil slice has one entry per column; "" means no unit.
	UnitNames(a *Analysis) []string
}

// Scalar is a feature producing one real value per region (a Scalars
// result), shown as a single column.
type Scalar interface {
	Feature

	// ColumnName returns the heading of the single output column.
	ColumnName() string

	// UnitName returns the unit of the values, or "" if none.
	UnitName(a *Analysis) string
}

// AsTabular returns f as a Tabular feature. Scalar features are wrapped into
// a single-column Tabular feature. The second result is false when f
// contributes no column.
func AsTabular(f Feature) (Tabular, bool) {
	switch v := f.(type) {
	case Tabular:
		return v, true
	case Scalar:
		return scalarColumn{v}, true
	default:
		return nil, false
	}
}

// scalarColumn exposes a Scalar feature as a single-column Tabular feature.
type scalarColumn struct {
	Scalar
}

func (s scalarColumn) Table(a *Analysis) (*table.Table, error) {
	values, err := Get[Scalars](a, s.ID())
	if err != nil {
		return nil, err
	}
	col := table.NewNumericColumn(s.ColumnName(), values)
	col.SetUnitName(s.UnitName(a))

	t := a.NewRegionTable()
	if err := t.AddColumn(col); err != nil {
		return nil, err
	}
	return t, nil
}

func (s scalarColumn) UnitNames(a *Analysis) []string {
	unit := s.UnitName(a)
	if unit == "" {
		return nil
	}
	return []string{unit}
}
