package morpho2d

import (
	"math"

	"github.com/ironsheep/region-features-mcp/internal/regfeat"
)

// Feature identifiers.
const (
	HistogramID          regfeat.ID = "BinaryConfigurationHistogram"
	AreaID               regfeat.ID = "Area"
	PerimeterCroftonD4ID regfeat.ID = "Perimeter_Crofton_D4"
	PerimeterCroftonD2ID regfeat.ID = "Perimeter_Crofton_D2"
	PerimeterID          regfeat.ID = "Perimeter"
	EulerNumberC4ID      regfeat.ID = "EulerNumber_C4"
	EulerNumberC8ID      regfeat.ID = "EulerNumber_C8"
	EulerNumberID        regfeat.ID = "EulerNumber"
	CircularityID        regfeat.ID = "Circularity"
)

// BinaryConfigurationHistogram computes the 2x2 configuration histogram of
// every region. Its result is regfeat.Histograms.
type BinaryConfigurationHistogram struct{}

func (BinaryConfigurationHistogram) ID() regfeat.ID { return HistogramID }

func (BinaryConfigurationHistogram) RequiredFeatures() []regfeat.ID { return nil }

func (BinaryConfigurationHistogram) Compute(a *regfeat.Analysis) (regfeat.Result, error) {
	progress := func(done, total int) {
		a.ReportProgress(string(HistogramID), done, total)
	}
	hist := ConfigurationHistograms(a.LabelMap(), a.Index(), a.Workers(), progress)
	return regfeat.Histograms(hist), nil
}

// histograms returns the configuration histograms of a, computing them first
// if needed.
func histograms(a *regfeat.Analysis, f regfeat.Feature) ([][16]int, error) {
	if err := a.Require(f); err != nil {
		return nil, err
	}
	h, err := regfeat.Get[regfeat.Histograms](a, HistogramID)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func lengthUnit(a *regfeat.Analysis) string {
	return a.Calibration().X.Unit
}

// Area is the pixel count times the pixel area.
type Area struct{}

func (Area) ID() regfeat.ID                 { return AreaID }
func (Area) RequiredFeatures() []regfeat.ID { return []regfeat.ID{regfeat.ElementCountID} }
func (Area) ColumnName() string             { return "Area" }

func (Area) UnitName(a *regfeat.Analysis) string {
	if u := lengthUnit(a); u != "" {
		return u + "^2"
	}
	return ""
}

func (f Area) Compute(a *regfeat.Analysis) (regfeat.Result, error) {
	if err := a.Require(f); err != nil {
		return nil, err
	}
	counts, err := regfeat.Get[regfeat.Counts](a, regfeat.ElementCountID)
	if err != nil {
		return nil, err
	}
	pixelArea := a.Calibration().PixelArea()
	areas := make(regfeat.Scalars, len(counts))
	for i, c := range counts {
		areas[i] = float64(c) * pixelArea
	}
	return areas, nil
}

// CroftonPerimeter estimates the perimeter with the Crofton formula, over
// 2 or 4 directions.
type CroftonPerimeter struct {
	Directions int
}

func (f CroftonPerimeter) ID() regfeat.ID {
	if f.Directions == 2 {
		return PerimeterCroftonD2ID
	}
	return PerimeterCroftonD4ID
}

func (CroftonPerimeter) RequiredFeatures() []regfeat.ID { return []regfeat.ID{HistogramID} }

func (f CroftonPerimeter) ColumnName() string { return string(f.ID()) }

func (CroftonPerimeter) UnitName(a *regfeat.Analysis) string { return lengthUnit(a) }

func (f CroftonPerimeter) Compute(a *regfeat.Analysis) (regfeat.Result, error) {
	hist, err := histograms(a, f)
	if err != nil {
		return nil, err
	}
	lut, err := PerimeterLUT(a.Calibration(), f.Directions)
	if err != nil {
		return nil, err
	}
	return regfeat.Scalars(ApplyLUT(hist, lut)), nil
}

// EulerNumber computes the Euler number (number of connected components
// minus number of holes) for 4 or 8 connectivity.
type EulerNumber struct {
	Connectivity int
}

func (f EulerNumber) ID() regfeat.ID {
	if f.Connectivity == 8 {
		return EulerNumberC8ID
	}
	return EulerNumberC4ID
}

func (EulerNumber) RequiredFeatures() []regfeat.ID { return []regfeat.ID{HistogramID} }

func (f EulerNumber) ColumnName() string {
	if f.Connectivity == 8 {
		return "Euler_Number_C8"
	}
	return "Euler_Number_C4"
}

func (EulerNumber) UnitName(*regfeat.Analysis) string { return "" }

func (f EulerNumber) Compute(a *regfeat.Analysis) (regfeat.Result, error) {
	hist, err := histograms(a, f)
	if err != nil {
		return nil, err
	}
	lut, err := EulerIntLUT(f.Connectivity)
	if err != nil {
		return nil, err
	}
	sums := ApplyIntLUT(hist, lut)
	out := make(regfeat.Scalars, len(sums))
	for i, s := range sums {
		out[i] = float64(s) / 4
	}
	return out, nil
}

// Alias republishes the result of another scalar feature under a new ID and
// column name.
type Alias struct {
	Name   regfeat.ID
	Target regfeat.ID
	Column string
	Unit   func(a *regfeat.Analysis) string
}

func (f Alias) ID() regfeat.ID                 { return f.Name }
func (f Alias) RequiredFeatures() []regfeat.ID { return []regfeat.ID{f.Target} }
func (f Alias) ColumnName() string             { return f.Column }

func (f Alias) UnitName(a *regfeat.Analysis) string {
	if f.Unit == nil {
		return ""
	}
	return f.Unit(a)
}

func (f Alias) Compute(a *regfeat.Analysis) (regfeat.Result, error) {
	if err := a.Require(f); err != nil {
		return nil, err
	}
	v, err := regfeat.Get[regfeat.Scalars](a, f.Target)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Circularity is 4*pi*Area / Perimeter^2: 1 for a disc, lower for elongated
// or irregular regions. Regions with zero perimeter yield NaN.
type Circularity struct{}

func (Circularity) ID() regfeat.ID { return CircularityID }

func (Circularity) RequiredFeatures() []regfeat.ID {
	return []regfeat.ID{AreaID, PerimeterID}
}

func (Circularity) ColumnName() string                { return "Circularity" }
func (Circularity) UnitName(*regfeat.Analysis) string { return "" }

func (f Circularity) Compute(a *regfeat.Analysis) (regfeat.Result, error) {
	if err := a.Require(f); err != nil {
		return nil, err
	}
	areas, err := regfeat.Get[regfeat.Scalars](a, AreaID)
	if err != nil {
		return nil, err
	}
	perims, err := regfeat.Get[regfeat.Scalars](a, PerimeterID)
	if err != nil {
		return nil, err
	}
	out := make(regfeat.Scalars, len(areas))
	for i := range areas {
		if perims[i] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = 4 * math.Pi * areas[i] / (perims[i] * perims[i])
	}
	return out, nil
}
