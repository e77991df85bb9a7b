package morpho2d

import (
	"math"
	"testing"

	"github.com/ironsheep/region-features-mcp/internal/labelmap"
	"github.com/ironsheep/region-features-mcp/internal/regfeat"
	"github.com/ironsheep/region-features-mcp/internal/table"
)

func newAnalysis(t *testing.T, m *labelmap.LabelMap, opts ...regfeat.Option) *regfeat.Analysis {
	t.Helper()
	a, err := regfeat.NewForAllLabels(NewRegistry(), m, opts...)
	if err != nil {
		t.Fatalf("NewForAllLabels failed: %v", err)
	}
	return a
}

func scalars(t *testing.T, a *regfeat.Analysis, id regfeat.ID) regfeat.Scalars {
	t.Helper()
	if err := a.Process(id); err != nil {
		t.Fatalf("Process(%s) failed: %v", id, err)
	}
	v, err := regfeat.Get[regfeat.Scalars](a, id)
	if err != nil {
		t.Fatalf("Get(%s) failed: %v", id, err)
	}
	return v
}

// filled returns a w x h rectangle of label 1 surrounded by a one pixel
// background frame, with the given interior pixels cleared.
func filled(w, h int, holes ...[2]int) [][]int {
	rows := make([][]int, h+2)
	for y := range rows {
		rows[y] = make([]int, w+2)
		if y == 0 || y == h+1 {
			continue
		}
		for x := 1; x <= w; x++ {
			rows[y][x] = 1
		}
	}
	for _, p := range holes {
		rows[p[1]+1][p[0]+1] = 0
	}
	return rows
}

func TestEulerNumber_Shapes(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
		want float64
	}{
		{"filled rectangle", filled(5, 4), 1},
		{"one hole", filled(3, 3, [2]int{1, 1}), 0},
		{"two holes", filled(7, 3, [2]int{1, 1}, [2]int{5, 1}), -1},
		{"large hole", filled(6, 6, [2]int{2, 2}, [2]int{3, 2}, [2]int{2, 3}, [2]int{3, 3}), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAnalysis(t, mustMap(t, tt.rows))
			for _, id := range []regfeat.ID{EulerNumberC4ID, EulerNumberC8ID, EulerNumberID} {
				if got := scalars(t, a, id)[0]; got != tt.want {
					t.Errorf("%s: got %v, want %v", id, got, tt.want)
				}
			}
		})
	}
}

func TestEulerNumber_DiagonalPixels(t *testing.T) {
	m := mustMap(t, [][]int{
		{1, 0},
		{0, 1},
	})
	a := newAnalysis(t, m)
	if got := scalars(t, a, EulerNumberC4ID)[0]; got != 2 {
		t.Errorf("C4: got %v, want 2", got)
	}
	if got := scalars(t, a, EulerNumberC8ID)[0]; got != 1 {
		t.Errorf("C8: got %v, want 1", got)
	}
}

func TestArea_Exactness(t *testing.T) {
	const w, h = 7, 5
	values := make([]int, w*h)
	for i := range values {
		values[i] = 3
	}
	m, _ := labelmap.New(w, h, values)

	tests := []struct {
		name   string
		sx, sy float64
		unit   string
	}{
		{"unit spacing", 1, 1, ""},
		{"anisotropic", 0.5, 2, "mm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm, err := m.WithCalibration(labelmap.NewCalibration(tt.sx, tt.sy, tt.unit))
			if err != nil {
				t.Fatalf("WithCalibration failed: %v", err)
			}
			a := newAnalysis(t, cm)
			area := scalars(t, a, AreaID)
			counts, _ := regfeat.Get[regfeat.Counts](a, regfeat.ElementCountID)
			if counts[0] != w*h {
				t.Errorf("count: got %d, want %d", counts[0], w*h)
			}
			if want := float64(w*h) * tt.sx * tt.sy; area[0] != want {
				t.Errorf("area: got %v, want %v", area[0], want)
			}
		})
	}
}

func TestPerimeter_Square(t *testing.T) {
	const n = 4
	a := newAnalysis(t, mustMap(t, filled(n, n)))

	d4 := scalars(t, a, PerimeterCroftonD4ID)[0]
	want := math.Pi * (float64(n)/2 + float64(2*n-1)/(2*math.Sqrt2))
	if math.Abs(d4-want) > tolerance {
		t.Errorf("D4: got %v, want %v", d4, want)
	}

	d2 := scalars(t, a, PerimeterCroftonD2ID)[0]
	if math.Abs(d2-math.Pi*n) > tolerance {
		t.Errorf("D2: got %v, want %v", d2, math.Pi*n)
	}
}

func TestPerimeter_AliasIdentical(t *testing.T) {
	m := randomMap(t, 31, 17, 4, 7)
	cm, _ := m.WithCalibration(labelmap.NewCalibration(0.3, 0.7, "um"))
	a := newAnalysis(t, cm)

	alias := scalars(t, a, PerimeterID)
	crofton, err := regfeat.Get[regfeat.Scalars](a, PerimeterCroftonD4ID)
	if err != nil {
		t.Fatalf("prerequisite not computed: %v", err)
	}
	if len(alias) != len(crofton) {
		t.Fatalf("length mismatch: %d vs %d", len(alias), len(crofton))
	}
	for i := range alias {
		if math.Float64bits(alias[i]) != math.Float64bits(crofton[i]) {
			t.Errorf("label %d: alias %v, crofton %v", i, alias[i], crofton[i])
		}
	}
}

func TestDependencies_Resolved(t *testing.T) {
	a := newAnalysis(t, mustMap(t, filled(3, 3)))
	if err := a.Process(CircularityID); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	for _, id := range []regfeat.ID{regfeat.ElementCountID, AreaID, HistogramID, PerimeterCroftonD4ID, PerimeterID} {
		if !a.IsComputed(id) {
			t.Errorf("%s should have been computed", id)
		}
	}
	order := a.ComputedFeatures()
	if order[len(order)-1] != CircularityID {
		t.Errorf("Circularity should be computed last, got order %v", order)
	}
}

func TestCircularity(t *testing.T) {
	m := mustMap(t, filled(9, 9))
	a, err := regfeat.New(NewRegistry(), m, []int{1, 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	circ := scalars(t, a, CircularityID)
	if !(circ[0] > 0.7 && circ[0] < 1.1) {
		t.Errorf("square circularity out of range: %v", circ[0])
	}
	if !math.IsNaN(circ[1]) {
		t.Errorf("absent label circularity: got %v, want NaN", circ[1])
	}
}

func TestBounds(t *testing.T) {
	m := mustMap(t, [][]int{
		{0, 0, 0, 0},
		{0, 2, 2, 0},
		{0, 0, 2, 0},
	})
	cm, _ := m.WithCalibration(labelmap.NewCalibration(0.5, 2, "mm"))
	a, err := regfeat.New(NewRegistry(), cm, []int{2, 8})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	a.Register(BoundsID)
	features, err := a.CreateTable()
	if err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}

	want := map[string]float64{"Box_XMin": 0.5, "Box_XMax": 1.5, "Box_YMin": 2, "Box_YMax": 6}
	for name, v := range want {
		col, ok := features.Column(name)
		if !ok {
			t.Fatalf("missing column %s", name)
		}
		nc := col.(*table.NumericColumn)
		if nc.Value(0) != v {
			t.Errorf("%s: got %v, want %v", name, nc.Value(0), v)
		}
		if !math.IsNaN(nc.Value(1)) {
			t.Errorf("%s for absent label: got %v, want NaN", name, nc.Value(1))
		}
		if nc.UnitName() != "mm" {
			t.Errorf("%s unit: got %q, want mm", name, nc.UnitName())
		}
	}
}

func TestCreateTables_Units(t *testing.T) {
	m := mustMap(t, filled(3, 2))
	cm, _ := m.WithCalibration(labelmap.NewCalibration(1, 1, "um"))
	a := newAnalysis(t, cm, regfeat.WithUnitDisplay(regfeat.UnitsColumnNames))
	a.Register(regfeat.ElementCountID)
	a.Register(DefaultFeatures...)

	features, units, err := a.CreateTables()
	if err != nil {
		t.Fatalf("CreateTables failed: %v", err)
	}
	want := []string{"Count", "Area_(um^2)", "Perimeter_(um)", "Circularity", "Euler_Number"}
	got := features.ColumnNames()
	if len(got) != len(want) {
		t.Fatalf("columns: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d: got %q, want %q", i, got[i], want[i])
		}
	}
	if units.RowCount() != 0 {
		t.Errorf("unit table should be empty, got %d rows", units.RowCount())
	}
}

func TestWorkers_SameResults(t *testing.T) {
	m := randomMap(t, 40, 30, 6, 99)
	serial := newAnalysis(t, m)
	parallel := newAnalysis(t, m, regfeat.WithWorkers(4))

	for _, id := range []regfeat.ID{PerimeterID, EulerNumberC8ID} {
		s := scalars(t, serial, id)
		p := scalars(t, parallel, id)
		for i := range s {
			if s[i] != p[i] {
				t.Errorf("%s label %d: serial %v, parallel %v", id, i, s[i], p[i])
			}
		}
	}
}

func TestRegistry_AllEntriesBuild(t *testing.T) {
	reg := NewRegistry()
	for _, e := range reg.Entries() {
		f, err := reg.New(e.ID)
		if err != nil {
			t.Errorf("%s: %v", e.ID, err)
			continue
		}
		if f.ID() != e.ID {
			t.Errorf("%s: feature reports ID %s", e.ID, f.ID())
		}
	}
	if err := Register(reg); err == nil {
		t.Error("registering twice should fail")
	}
}
