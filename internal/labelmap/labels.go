package labelmap

import "sort"

// maxDenseSpan bounds the label range for which Index uses a lookup slice
// instead of a map.
const maxDenseSpan = 1 << 20

// FindAllLabels returns the distinct non-zero labels present in m, in
// ascending order.
func FindAllLabels(m *LabelMap) []int {
	seen := make(map[int]struct{})
	for _, label := range m.data {
		if label != 0 {
			seen[label] = struct{}{}
		}
	}
	labels := make([]int, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Ints(labels)
	return labels
}

// Index maps label values to their position within an ordered label set.
//
// Lookups are O(1). When the labels span a compact range the index is backed
// by a slice, otherwise by a map.
type Index struct {
	labels []int
	min    int
	dense  []int32
	sparse map[int]int
}

// NewIndex builds the index of an ordered label set. Labels must be non-zero
// and distinct.
func NewIndex(labels []int) (*Index, error) {
	ix := &Index{labels: make([]int, len(labels))}
	copy(ix.labels, labels)

	positions := make(map[int]int, len(labels))
	for i, label := range labels {
		if label == 0 {
			return nil, invalidInput("label set contains the background label 0")
		}
		if prev, dup := positions[label]; dup {
			return nil, invalidInput("label %d appears twice in label set (positions %d and %d)", label, prev, i)
		}
		positions[label] = i
	}
	if len(labels) == 0 {
		ix.sparse = positions
		return ix, nil
	}

	lo, hi := labels[0], labels[0]
	for _, label := range labels[1:] {
		if label < lo {
			lo = label
		}
		if label > hi {
			hi = label
		}
	}
	span := hi - lo + 1
	if span <= 0 || span > maxDenseSpan {
		ix.sparse = positions
		return ix, nil
	}

	ix.min = lo
	ix.dense = make([]int32, span)
	for i := range ix.dense {
		ix.dense[i] = -1
	}
	for label, pos := range positions {
		ix.dense[label-lo] = int32(pos)
	}
	return ix, nil
}

// Lookup returns the position of label in the label set.
func (ix *Index) Lookup(label int) (int, bool) {
	if ix.dense != nil {
		off := label - ix.min
		if off < 0 || off >= len(ix.dense) {
			return -1, false
		}
		pos := ix.dense[off]
		return int(pos), pos >= 0
	}
	pos, ok := ix.sparse[label]
	if !ok {
		return -1, false
	}
	return pos, true
}

// Len returns the number of labels in the set.
func (ix *Index) Len() int {
	return len(ix.labels)
}

// Labels returns a copy of the ordered label set.
func (ix *Index) Labels() []int {
	out := make([]int, len(ix.labels))
	copy(out, ix.labels)
	return out
}
