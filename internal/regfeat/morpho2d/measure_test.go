package morpho2d

import (
	"errors"
	"strings"
	"testing"

	"github.com/ironsheep/region-features-mcp/internal/regfeat"
)

func TestMeasure_Defaults(t *testing.T) {
	m := mustMap(t, [][]int{
		{2, 2, 0, 0},
		{2, 2, 0, 5},
		{0, 0, 0, 5},
	})

	features, units, err := Measure(nil, m, nil, nil)
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if got := strings.Join(features.ColumnNames(), ","); got != "Area,Perimeter,Circularity,Euler_Number" {
		t.Errorf("columns: got %s", got)
	}
	if got := features.RowAxis().Labels; len(got) != 2 || got[0] != "2" || got[1] != "5" {
		t.Errorf("rows: got %v", got)
	}
	if units.RowCount() != 0 {
		t.Errorf("unit table rows: got %d, want 0", units.RowCount())
	}
}

func TestMeasure_LabelsAndOptions(t *testing.T) {
	m := mustMap(t, [][]int{
		{2, 2, 0, 0},
		{2, 2, 0, 5},
		{0, 0, 0, 5},
	})

	features, units, err := Measure(NewRegistry(), m, []int{5, 2}, []regfeat.ID{regfeat.ElementCountID, EulerNumberC8ID},
		regfeat.WithUnitDisplay(regfeat.UnitsNewTable), regfeat.WithWorkers(3))
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if got := features.RowAxis().Labels; len(got) != 2 || got[0] != "5" || got[1] != "2" {
		t.Errorf("rows should follow the requested order, got %v", got)
	}
	if got := strings.Join(features.ColumnNames(), ","); got != "Count,Euler_Number_C8" {
		t.Errorf("columns: got %s", got)
	}
	if units.RowCount() != 2 {
		t.Errorf("unit table rows: got %d, want 2", units.RowCount())
	}
}

func TestMeasure_Errors(t *testing.T) {
	m := mustMap(t, [][]int{{1, 0}, {0, 1}})

	_, _, err := Measure(nil, m, nil, []regfeat.ID{AreaID, "Volume"})
	var unknown *regfeat.UnknownFeatureError
	if !errors.As(err, &unknown) || unknown.ID != "Volume" {
		t.Errorf("unknown feature: got %v", err)
	}

	_, _, err = Measure(nil, m, []int{1, 1}, nil)
	var invalid *regfeat.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Errorf("duplicate labels: got %v", err)
	}

	_, _, err = Measure(nil, m, nil, nil, regfeat.WithUnitDisplay(regfeat.UnitDisplay(9)))
	var policy *regfeat.UnknownUnitPolicyError
	if !errors.As(err, &policy) {
		t.Errorf("unknown policy: got %v", err)
	}
}
