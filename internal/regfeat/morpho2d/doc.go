// Package morpho2d provides the morphological features of 2D regions.
//
// Most features derive from a single pass over the label map that counts,
// for each region, the 16 possible 2x2 binary configurations of its pixels.
// Intrinsic volumes are then obtained by weighting the histogram with a
// lookup table (LUT):
//
//	Perimeter_Crofton_D4   Crofton formula, horizontal, vertical and diagonal directions
//	Perimeter_Crofton_D2   Crofton formula, horizontal and vertical directions
//	EulerNumber_C4         Euler number for the 4-connectivity
//	EulerNumber_C8         Euler number for the 8-connectivity
//
// Configuration bit k is set when the corresponding pixel belongs to the
// region: bit 0 upper-left, bit 1 upper-right, bit 2 lower-left, bit 3
// lower-right.
//
// # Usage
//
//	reg := morpho2d.NewRegistry()
//	a, err := regfeat.NewForAllLabels(reg, labels)
//	if err != nil {
//	    return err
//	}
//	a.Register(morpho2d.AreaID, morpho2d.PerimeterID)
//	features, _, err := a.CreateTables()
package morpho2d
