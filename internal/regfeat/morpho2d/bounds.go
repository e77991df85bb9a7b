package morpho2d

import (
	"math"

	"github.com/ironsheep/region-features-mcp/internal/regfeat"
	"github.com/ironsheep/region-features-mcp/internal/table"
)

// BoundsID identifies the bounding box feature.
const BoundsID regfeat.ID = "Bounds"

var boundsColumns = []string{"Box_XMin", "Box_XMax", "Box_YMin", "Box_YMax"}

// Bounds computes the axis-aligned bounding box of each region in calibrated
// coordinates, from the outer edge of the first pixel to the outer edge of
// the last. Labels absent from the map get NaN bounds. Its result is a
// regfeat.Fragment.
type Bounds struct{}

func (Bounds) ID() regfeat.ID                 { return BoundsID }
func (Bounds) RequiredFeatures() []regfeat.ID { return nil }

func (Bounds) Compute(a *regfeat.Analysis) (regfeat.Result, error) {
	m := a.LabelMap()
	ix := a.Index()
	n := ix.Len()

	xmin := make([]int, n)
	xmax := make([]int, n)
	ymin := make([]int, n)
	ymax := make([]int, n)
	for i := 0; i < n; i++ {
		xmin[i], ymin[i] = math.MaxInt, math.MaxInt
		xmax[i], ymax[i] = -1, -1
	}

	for y := 0; y < m.Height(); y++ {
		for x, label := range m.Row(y) {
			if label == 0 {
				continue
			}
			i, ok := ix.Lookup(label)
			if !ok {
				continue
			}
			if x < xmin[i] {
				xmin[i] = x
			}
			if x > xmax[i] {
				xmax[i] = x
			}
			if y < ymin[i] {
				ymin[i] = y
			}
			ymax[i] = y
		}
	}

	cal := a.Calibration()
	sx, sy := cal.X.Spacing, cal.Y.Spacing
	cols := make([][]float64, 4)
	for c := range cols {
		cols[c] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		if xmax[i] < 0 {
			for c := range cols {
				cols[c][i] = math.NaN()
			}
			continue
		}
		cols[0][i] = float64(xmin[i]) * sx
		cols[1][i] = float64(xmax[i]+1) * sx
		cols[2][i] = float64(ymin[i]) * sy
		cols[3][i] = float64(ymax[i]+1) * sy
	}

	t := a.NewRegionTable()
	t.SetName("Bounds")
	unit := lengthUnit(a)
	for c, name := range boundsColumns {
		col := table.NewNumericColumn(name, cols[c])
		col.SetUnitName(unit)
		if err := t.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return regfeat.Fragment{Table: t}, nil
}

func (Bounds) Table(a *regfeat.Analysis) (*table.Table, error) {
	frag, err := regfeat.Get[regfeat.Fragment](a, BoundsID)
	if err != nil {
		return nil, err
	}
	return frag.Table, nil
}

func (Bounds) UnitNames(a *regfeat.Analysis) []string {
	unit := lengthUnit(a)
	if unit == "" {
		return nil
	}
	return []string{unit, unit, unit, unit}
}
