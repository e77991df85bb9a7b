package morpho2d

import (
	"sync"

	"github.com/ironsheep/region-features-mcp/internal/labelmap"
)

// Histogram bit of each pixel of a 2x2 configuration.
const (
	BitUpperLeft  = 1 << 0
	BitUpperRight = 1 << 1
	BitLowerLeft  = 1 << 2
	BitLowerRight = 1 << 3
)

// ProgressFunc is called after each completed window row.
type ProgressFunc func(done, total int)

// ConfigurationHistograms counts, for every label of ix, the 2x2 binary
// configurations of the label map m.
//
// The windows sweep from one row and column before the image to one after,
// so that every window containing at least one image pixel is visited once;
// pixels outside the image are background. Entry [i][k] is the number of
// windows whose pattern for label ix.Labels()[i] is k, see BitUpperLeft and
// friends. A window holding several tracked labels counts once per label.
//
// With workers > 1 the window rows are split into contiguous ranges, each
// accumulated into a private partition. progress, if not nil, is always
// called from the calling goroutine.
func ConfigurationHistograms(m *labelmap.LabelMap, ix *labelmap.Index, workers int, progress ProgressFunc) [][16]int {
	n := ix.Len()
	hist := make([][16]int, n)
	if n == 0 {
		return hist
	}

	rows := m.Height() + 1
	if workers < 1 {
		workers = 1
	}
	if workers > rows {
		workers = rows
	}

	if workers == 1 {
		s := newSweeper(m, ix)
		for y := 0; y < rows; y++ {
			s.sweepRow(y, hist)
			if progress != nil {
				progress(y+1, rows)
			}
		}
		return hist
	}

	parts := make([][][16]int, workers)
	done := make(chan struct{}, rows)
	var wg sync.WaitGroup
	chunk := (rows + workers - 1) / workers
	for w := 0; w < workers; w++ {
		y0 := w * chunk
		y1 := y0 + chunk
		if y1 > rows {
			y1 = rows
		}
		parts[w] = make([][16]int, n)
		if y0 >= y1 {
			continue
		}
		wg.Add(1)
		go func(part [][16]int, y0, y1 int) {
			defer wg.Done()
			s := newSweeper(m, ix)
			for y := y0; y < y1; y++ {
				s.sweepRow(y, part)
				done <- struct{}{}
			}
		}(parts[w], y0, y1)
	}

	for i := 0; i < rows; i++ {
		<-done
		if progress != nil {
			progress(i+1, rows)
		}
	}
	wg.Wait()

	for _, part := range parts {
		for i := range part {
			for k := 0; k < 16; k++ {
				hist[i][k] += part[i][k]
			}
		}
	}
	return hist
}

// sweeper holds the label positions of the two image rows a window row
// overlaps. Position -1 marks background, untracked labels and the outside of
// the image.
type sweeper struct {
	m     *labelmap.LabelMap
	ix    *labelmap.Index
	upper []int
	lower []int
}

func newSweeper(m *labelmap.LabelMap, ix *labelmap.Index) *sweeper {
	return &sweeper{
		m:     m,
		ix:    ix,
		upper: make([]int, m.Width()),
		lower: make([]int, m.Width()),
	}
}

func (s *sweeper) loadRow(dst []int, y int) {
	if y < 0 || y >= s.m.Height() {
		for x := range dst {
			dst[x] = -1
		}
		return
	}
	for x, label := range s.m.Row(y) {
		pos := -1
		if label != 0 {
			if p, ok := s.ix.Lookup(label); ok {
				pos = p
			}
		}
		dst[x] = pos
	}
}

// sweepRow accumulates the windows whose lower-right pixel lies on row y,
// for x from 0 to the image width included.
func (s *sweeper) sweepRow(y int, hist [][16]int) {
	s.loadRow(s.upper, y-1)
	s.loadRow(s.lower, y)

	w := s.m.Width()
	ul, ll := -1, -1
	for x := 0; x <= w; x++ {
		ur, lr := -1, -1
		if x < w {
			ur, lr = s.upper[x], s.lower[x]
		}

		if ul >= 0 {
			hist[ul][configIndex(ul, ul, ur, ll, lr)]++
		}
		if ur >= 0 && ur != ul {
			hist[ur][configIndex(ur, ul, ur, ll, lr)]++
		}
		if ll >= 0 && ll != ul && ll != ur {
			hist[ll][configIndex(ll, ul, ur, ll, lr)]++
		}
		if lr >= 0 && lr != ul && lr != ur && lr != ll {
			hist[lr][configIndex(lr, ul, ur, ll, lr)]++
		}

		ul, ll = ur, lr
	}
}

func configIndex(pos, ul, ur, ll, lr int) int {
	k := 0
	if ul == pos {
		k |= BitUpperLeft
	}
	if ur == pos {
		k |= BitUpperRight
	}
	if ll == pos {
		k |= BitLowerLeft
	}
	if lr == pos {
		k |= BitLowerRight
	}
	return k
}
