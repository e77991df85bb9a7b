package morpho2d

import (
	"github.com/ironsheep/region-features-mcp/internal/labelmap"
	"github.com/ironsheep/region-features-mcp/internal/regfeat"
	"github.com/ironsheep/region-features-mcp/internal/table"
)

// Entries returns the registry entries of the 2D morphology features, in the
// order they are listed to users.
func Entries() []regfeat.Entry {
	return []regfeat.Entry{
		{
			ID:          AreaID,
			Description: "Pixel count times pixel area",
			New:         func() (regfeat.Feature, error) { return Area{}, nil },
		},
		{
			ID:          PerimeterID,
			Description: "Perimeter estimate (Crofton formula, 4 directions)",
			New: func() (regfeat.Feature, error) {
				return Alias{Name: PerimeterID, Target: PerimeterCroftonD4ID, Column: "Perimeter", Unit: lengthUnit}, nil
			},
		},
		{
			ID:          CircularityID,
			Description: "4*pi*Area / Perimeter^2",
			New:         func() (regfeat.Feature, error) { return Circularity{}, nil },
		},
		{
			ID:          EulerNumberID,
			Description: "Euler number for 4-connectivity",
			New: func() (regfeat.Feature, error) {
				return Alias{Name: EulerNumberID, Target: EulerNumberC4ID, Column: "Euler_Number"}, nil
			},
		},
		{
			ID:          BoundsID,
			Description: "Bounding box in calibrated coordinates",
			New:         func() (regfeat.Feature, error) { return Bounds{}, nil },
		},
		{
			ID:          PerimeterCroftonD4ID,
			Description: "Crofton perimeter over 4 directions",
			New:         func() (regfeat.Feature, error) { return CroftonPerimeter{Directions: 4}, nil },
		},
		{
			ID:          PerimeterCroftonD2ID,
			Description: "Crofton perimeter over the 2 axis directions",
			New:         func() (regfeat.Feature, error) { return CroftonPerimeter{Directions: 2}, nil },
		},
		{
			ID:          EulerNumberC4ID,
			Description: "Euler number for 4-connectivity",
			New:         func() (regfeat.Feature, error) { return EulerNumber{Connectivity: 4}, nil },
		},
		{
			ID:          EulerNumberC8ID,
			Description: "Euler number for 8-connectivity",
			New:         func() (regfeat.Feature, error) { return EulerNumber{Connectivity: 8}, nil },
		},
		{
			ID:          HistogramID,
			Description: "Histogram of 2x2 binary configurations (intermediate result)",
			New:         func() (regfeat.Feature, error) { return BinaryConfigurationHistogram{}, nil },
		},
	}
}

// Register adds the 2D morphology features to r.
func Register(r *regfeat.Registry) error {
	for _, e := range Entries() {
		if err := r.Register(e); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding ElementCount and every 2D morphology
// feature.
func NewRegistry() *regfeat.Registry {
	r := regfeat.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}

// DefaultFeatures lists the features computed when the caller selects none.
var DefaultFeatures = []regfeat.ID{AreaID, PerimeterID, CircularityID, EulerNumberID}

// Measure computes the features ids for the given labels of m and returns the
// feature and unit tables. A nil registry means NewRegistry(). A nil labels
// slice selects every label present in m; an empty ids slice selects
// DefaultFeatures.
func Measure(reg *regfeat.Registry, m *labelmap.LabelMap, labels []int, ids []regfeat.ID, opts ...regfeat.Option) (*table.Table, *table.Table, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	var (
		a   *regfeat.Analysis
		err error
	)
	if labels == nil {
		a, err = regfeat.NewForAllLabels(reg, m, opts...)
	} else {
		a, err = regfeat.New(reg, m, labels, opts...)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(ids) == 0 {
		ids = DefaultFeatures
	}
	for _, id := range ids {
		if !reg.Has(id) {
			return nil, nil, &regfeat.UnknownFeatureError{ID: id}
		}
	}
	a.Register(ids...)
	return a.CreateTables()
}
