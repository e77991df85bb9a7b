package morpho2d

import (
	"math/rand"
	"testing"

	"github.com/ironsheep/region-features-mcp/internal/labelmap"
)

func mustMap(t *testing.T, rows [][]int) *labelmap.LabelMap {
	t.Helper()
	m, err := labelmap.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	return m
}

func mustIndex(t *testing.T, labels ...int) *labelmap.Index {
	t.Helper()
	ix, err := labelmap.NewIndex(labels)
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}
	return ix
}

func histTotal(h [16]int) int {
	sum := 0
	for _, c := range h {
		sum += c
	}
	return sum
}

func TestConfigurationHistograms_SinglePixel(t *testing.T) {
	m := mustMap(t, [][]int{{1}})
	hist := ConfigurationHistograms(m, mustIndex(t, 1), 1, nil)

	var want [16]int
	want[BitUpperLeft] = 1
	want[BitUpperRight] = 1
	want[BitLowerLeft] = 1
	want[BitLowerRight] = 1
	if hist[0] != want {
		t.Errorf("histogram: got %v, want %v", hist[0], want)
	}
}

func TestConfigurationHistograms_Rectangle(t *testing.T) {
	// 3x2 rectangle inside a background frame
	m := mustMap(t, [][]int{
		{0, 0, 0, 0, 0},
		{0, 5, 5, 5, 0},
		{0, 5, 5, 5, 0},
		{0, 0, 0, 0, 0},
	})
	hist := ConfigurationHistograms(m, mustIndex(t, 5), 1, nil)
	h := hist[0]

	if got, want := histTotal(h), 4*3; got != want {
		t.Errorf("windows touching the region: got %d, want %d", got, want)
	}
	if h[15] != 2 {
		t.Errorf("full windows: got %d, want 2", h[15])
	}
	if h[0] != 0 {
		t.Errorf("empty configuration should never be counted, got %d", h[0])
	}
	corners := h[BitUpperLeft] + h[BitUpperRight] + h[BitLowerLeft] + h[BitLowerRight]
	if corners != 4 {
		t.Errorf("single pixel corners: got %d, want 4", corners)
	}
}

func TestConfigurationHistograms_AdjacentLabels(t *testing.T) {
	m := mustMap(t, [][]int{{1, 2}})
	hist := ConfigurationHistograms(m, mustIndex(t, 1, 2), 1, nil)

	for i, h := range hist {
		if got := histTotal(h); got != 4 {
			t.Errorf("label %d: got %d windows, want 4", i+1, got)
		}
	}
	// the window holding both pixels in its lower row counts once per label
	if hist[0][BitLowerLeft] != 1 || hist[1][BitLowerRight] != 1 {
		t.Errorf("shared window not counted for both labels: %v %v", hist[0], hist[1])
	}
}

func TestConfigurationHistograms_UntrackedIsBackground(t *testing.T) {
	tracked := ConfigurationHistograms(mustMap(t, [][]int{{1, 9}}), mustIndex(t, 1), 1, nil)
	alone := ConfigurationHistograms(mustMap(t, [][]int{{1, 0}}), mustIndex(t, 1), 1, nil)
	if tracked[0] != alone[0] {
		t.Errorf("untracked label changed histogram: %v vs %v", tracked[0], alone[0])
	}
}

func TestConfigurationHistograms_NoLabels(t *testing.T) {
	hist := ConfigurationHistograms(mustMap(t, [][]int{{1}}), mustIndex(t), 4, nil)
	if len(hist) != 0 {
		t.Errorf("expected no histogram, got %d", len(hist))
	}
}

func randomMap(t *testing.T, w, h, labels int, seed int64) *labelmap.LabelMap {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	values := make([]int, w*h)
	for i := range values {
		values[i] = rng.Intn(labels + 1)
	}
	m, err := labelmap.New(w, h, values)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return m
}

func TestConfigurationHistograms_ParallelMatchesSerial(t *testing.T) {
	m := randomMap(t, 37, 23, 5, 42)
	ix := mustIndex(t, 1, 2, 3, 5)
	serial := ConfigurationHistograms(m, ix, 1, nil)

	for _, workers := range []int{2, 3, 8, 100} {
		calls, last := 0, 0
		progress := func(done, total int) {
			calls++
			if done < last {
				t.Errorf("workers=%d: progress went backwards (%d after %d)", workers, done, last)
			}
			last = done
			if total != m.Height()+1 {
				t.Errorf("workers=%d: total %d, want %d", workers, total, m.Height()+1)
			}
		}
		got := ConfigurationHistograms(m, ix, workers, progress)
		for i := range serial {
			if got[i] != serial[i] {
				t.Errorf("workers=%d label %d: got %v, want %v", workers, i, got[i], serial[i])
			}
		}
		if calls != m.Height()+1 {
			t.Errorf("workers=%d: %d progress calls, want %d", workers, calls, m.Height()+1)
		}
	}
}
