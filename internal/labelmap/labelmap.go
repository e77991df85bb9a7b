package labelmap

import (
	"fmt"
	"image"
)

// InvalidInputError reports input that cannot be used as a label map or label
// set, such as a colour image or a label list with duplicates.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

func invalidInput(format string, args ...interface{}) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// Axis describes the physical sampling of one image axis.
type Axis struct {
	// Spacing is the physical distance between two adjacent pixels.
	Spacing float64 `json:"spacing" yaml:"spacing"`

	// Unit is the name of the length unit, e.g. "mm". Empty means unspecified.
	Unit string `json:"unit" yaml:"unit"`
}

// Calibration holds the physical sampling of a 2D label map.
type Calibration struct {
	X Axis `json:"x" yaml:"x"`
	Y Axis `json:"y" yaml:"y"`
}

// DefaultCalibration returns a calibration of one unit per pixel on both
// axes, without unit name.
func DefaultCalibration() Calibration {
	return Calibration{
		X: Axis{Spacing: 1},
		Y: Axis{Spacing: 1},
	}
}

// NewCalibration creates a calibration with the given spacings and a unit
// name shared by both axes.
func NewCalibration(spacingX, spacingY float64, unit string) Calibration {
	return Calibration{
		X: Axis{Spacing: spacingX, Unit: unit},
		Y: Axis{Spacing: spacingY, Unit: unit},
	}
}

// PixelArea returns the physical area covered by a single pixel.
func (c Calibration) PixelArea() float64 {
	return c.X.Spacing * c.Y.Spacing
}

// Validate checks that both spacings are strictly positive.
func (c Calibration) Validate() error {
	if !(c.X.Spacing > 0) || !(c.Y.Spacing > 0) {
		return invalidInput("calibration spacings must be positive, got (%g, %g)", c.X.Spacing, c.Y.Spacing)
	}
	return nil
}

// LabelMap is an immutable 2D grid of region labels.
type LabelMap struct {
	width       int
	height      int
	data        []int
	calibration Calibration
}

// New creates a label map from row-major values. The slice is copied.
func New(width, height int, values []int) (*LabelMap, error) {
	if width < 0 || height < 0 {
		return nil, invalidInput("negative label map size %dx%d", width, height)
	}
	if len(values) != width*height {
		return nil, invalidInput("expected %d values for a %dx%d label map, got %d",
			width*height, width, height, len(values))
	}
	data := make([]int, len(values))
	copy(data, values)
	return &LabelMap{
		width:       width,
		height:      height,
		data:        data,
		calibration: DefaultCalibration(),
	}, nil
}

// FromRows creates a label map from a slice of rows, top row first. All rows
// must have the same length.
func FromRows(rows [][]int) (*LabelMap, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	data := make([]int, 0, width*height)
	for y, row := range rows {
		if len(row) != width {
			return nil, invalidInput("row %d has %d values, expected %d", y, len(row), width)
		}
		data = append(data, row...)
	}
	return &LabelMap{
		width:       width,
		height:      height,
		data:        data,
		calibration: DefaultCalibration(),
	}, nil
}

// Width returns the number of columns.
func (m *LabelMap) Width() int { return m.width }

// Height returns the number of rows.
func (m *LabelMap) Height() int { return m.height }

// Len returns the number of pixels.
func (m *LabelMap) Len() int { return len(m.data) }

// At returns the label at (x, y). Coordinates outside the map are background.
func (m *LabelMap) At(x, y int) int {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Row returns the labels of row y. The returned slice aliases the map's
// storage and must not be modified.
func (m *LabelMap) Row(y int) []int {
	return m.data[y*m.width : (y+1)*m.width]
}

// Each calls fn for every pixel in row-major order.
func (m *LabelMap) Each(fn func(x, y, label int)) {
	for y := 0; y < m.height; y++ {
		row := m.Row(y)
		for x, label := range row {
			fn(x, y, label)
		}
	}
}

// Calibration returns the physical calibration of the map.
func (m *LabelMap) Calibration() Calibration {
	return m.calibration
}

// WithCalibration returns a label map sharing the same labels with a
// different calibration.
func (m *LabelMap) WithCalibration(c Calibration) (*LabelMap, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	clone := *m
	clone.calibration = c
	return &clone, nil
}

// Crop returns the labels inside r as a new label map with the same
// calibration. r must lie within the map bounds and be non-empty.
func (m *LabelMap) Crop(r image.Rectangle) (*LabelMap, error) {
	bounds := image.Rect(0, 0, m.width, m.height)
	if r.Empty() {
		return nil, invalidInput("empty crop region %v", r)
	}
	if !r.In(bounds) {
		return nil, invalidInput("crop region %v outside label map bounds %v", r, bounds)
	}
	data := make([]int, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		data = append(data, m.data[y*m.width+r.Min.X:y*m.width+r.Max.X]...)
	}
	return &LabelMap{
		width:       r.Dx(),
		height:      r.Dy(),
		data:        data,
		calibration: m.calibration,
	}, nil
}
