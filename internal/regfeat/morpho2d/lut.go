package morpho2d

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/region-features-mcp/internal/labelmap"
)

// LUT holds one coefficient per 2x2 configuration.
type LUT [16]float64

// IntLUT holds one integer coefficient per 2x2 configuration.
type IntLUT [16]int

// ApplyLUT returns, for each histogram, the sum of its counts weighted by
// lut.
func ApplyLUT(hist [][16]int, lut LUT) []float64 {
	n := len(hist)
	if n == 0 {
		return []float64{}
	}

	data := make([]float64, n*16)
	for i, h := range hist {
		for k, c := range h {
			data[i*16+k] = float64(c)
		}
	}
	counts := mat.NewDense(n, 16, data)
	coefs := mat.NewVecDense(16, append([]float64(nil), lut[:]...))

	var sums mat.VecDense
	sums.MulVec(counts, coefs)

	out := make([]float64, n)
	for i := range out {
		out[i] = sums.AtVec(i)
	}
	return out
}

// ApplyIntLUT is the exact integer version of ApplyLUT.
func ApplyIntLUT(hist [][16]int, lut IntLUT) []int {
	out := make([]int, len(hist))
	for i, h := range hist {
		sum := 0
		for k, c := range h {
			sum += c * lut[k]
		}
		out[i] = sum
	}
	return out
}

// Euler number coefficients, times four, for 4- and 8-connectivity. The two
// tables differ only for the diagonal configurations 6 and 9.
var (
	eulerC4 = IntLUT{0, 1, 1, 0, 1, 0, 2, -1, 1, 2, 0, -1, 0, -1, -1, 0}
	eulerC8 = IntLUT{0, 1, 1, 0, 1, 0, -2, -1, 1, -2, 0, -1, 0, -1, -1, 0}
)

// EulerIntLUT returns the Euler number coefficients multiplied by 4 for the
// given connectivity (4 or 8).
func EulerIntLUT(connectivity int) (IntLUT, error) {
	switch connectivity {
	case 4:
		return eulerC4, nil
	case 8:
		return eulerC8, nil
	default:
		return IntLUT{}, fmt.Errorf("euler number connectivity must be 4 or 8, got %d", connectivity)
	}
}

// EulerLUT returns the Euler number coefficients for the given connectivity
// (4 or 8).
func EulerLUT(connectivity int) (LUT, error) {
	ilut, err := EulerIntLUT(connectivity)
	if err != nil {
		return LUT{}, err
	}
	var lut LUT
	for k, v := range ilut {
		lut[k] = float64(v) / 4
	}
	return lut, nil
}

// PerimeterLUT returns the Crofton perimeter coefficients for the spacing of
// cal, using 2 (axis) or 4 (axis and diagonal) directions.
//
// Each foreground pixel of a configuration contributes, per direction, half
// the pixel area divided by the direction step when its neighbour in that
// direction is background. Contributions are weighted by the angular extent
// of each direction and scaled by pi.
func PerimeterLUT(cal labelmap.Calibration, directions int) (LUT, error) {
	if directions != 2 && directions != 4 {
		return LUT{}, fmt.Errorf("crofton perimeter requires 2 or 4 directions, got %d", directions)
	}
	if err := cal.Validate(); err != nil {
		return LUT{}, err
	}

	d1 := cal.X.Spacing
	d2 := cal.Y.Spacing
	d12 := math.Hypot(d1, d2)
	area := d1 * d2

	// angular weights of the horizontal, vertical and diagonal directions
	theta := math.Atan2(d2, d1)
	w1 := theta / math.Pi
	w2 := (math.Pi/2 - theta) / math.Pi
	const wDiag = 0.25

	var lut LUT
	for k := 0; k < 16; k++ {
		ul := k&BitUpperLeft != 0
		ur := k&BitUpperRight != 0
		ll := k&BitLowerLeft != 0
		lr := k&BitLowerRight != 0

		// foreground pixel, horizontal, vertical and diagonal neighbours
		pixels := [4][4]bool{
			{ul, ur, ll, lr},
			{ur, ul, lr, ll},
			{ll, lr, ul, ur},
			{lr, ll, ur, ul},
		}
		var sum float64
		for _, p := range pixels {
			if !p[0] {
				continue
			}
			var ke1, ke2, keDiag float64
			if !p[1] {
				ke1 = area / d1 / 2
			}
			if !p[2] {
				ke2 = area / d2 / 2
			}
			if !p[3] {
				keDiag = area / d12 / 2
			}
			if directions == 2 {
				sum += (ke1 + ke2) / 4
			} else {
				sum += w1*ke1/2 + w2*ke2/2 + wDiag*keDiag
			}
		}
		lut[k] = sum * math.Pi
	}
	return lut, nil
}
