package regfeat

import (
	"fmt"

	"github.com/ironsheep/region-features-mcp/internal/table"
)

// HistogramBins is the number of 2x2 binary configurations.
const HistogramBins = 16

// Result is the value computed by a feature. The set of variants is closed:
// Counts, Histograms, Scalars and Fragment.
type Result interface {
	isResult()
}

// Counts holds one integer per region.
type Counts []int

// Histograms holds one binary configuration histogram per region.
type Histograms [][HistogramBins]int

// Scalars holds one real value per region.
type Scalars []float64

// Fragment holds a feature-specific table with one row per region.
type Fragment struct {
	Table *table.Table
}

func (Counts) isResult()     {}
func (Histograms) isResult() {}
func (Scalars) isResult()    {}
func (Fragment) isResult()   {}

// Get returns the result stored for id as a T.
//
// It returns a NotComputedError if id has no result, and a TypeMismatchError
// if the stored result is not a T.
func Get[T Result](a *Analysis, id ID) (T, error) {
	var zero T
	r, ok := a.results[id]
	if !ok {
		return zero, &NotComputedError{ID: id}
	}
	v, ok := r.(T)
	if !ok {
		return zero, &TypeMismatchError{
			ID:   id,
			Want: fmt.Sprintf("%T", zero),
			Got:  fmt.Sprintf("%T", r),
		}
	}
	return v, nil
}
