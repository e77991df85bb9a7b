// Package labelmap provides the read-only label map consumed by the region
// feature engine, together with its physical calibration and the helpers that
// discover and index region labels.
//
// A label map is a 2D grid of integers. The value 0 is background; every other
// value identifies the region a pixel belongs to. Label maps are immutable once
// built and may be shared between goroutines.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left pixel:
//   - X: column index, increasing rightward
//   - Y: row index, increasing downward
//
// Values are stored row-major, so the pixel (x, y) lives at index y*Width+x.
//
// # Image Sources
//
// Label maps are decoded from integer-valued images only:
//   - *image.Gray: the 8-bit intensity is the label
//   - *image.Gray16: the 16-bit intensity is the label
//   - *image.Paletted: the palette index is the label
//
// Colour images are rejected with an InvalidInputError. To analyze a colour or
// grayscale photograph as a single region, binarize it first with FromMask.
//
// # Calibration
//
// Every label map carries a Calibration giving the physical spacing and unit
// name of each axis. The default calibration is one unit per pixel with no
// unit name.
package labelmap
