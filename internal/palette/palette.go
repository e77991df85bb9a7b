// Package palette assigns display colours to region labels and renders label
// maps as colour overlays.
//
// Colours are spread around the HCL hue circle by the golden angle, so that
// labels with close values get clearly distinct colours and the same label
// list always yields the same colours.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const goldenAngle = 137.50776405003785

// Chroma and luminance of generated colours, in HCL space.
const (
	defaultChroma    = 0.6
	defaultLuminance = 0.65
)

// LabelColors returns n distinct colours.
func LabelColors(n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]colorful.Color, n)
	for i := range colors {
		hue := math.Mod(float64(i)*goldenAngle, 360)
		colors[i] = colorful.Hcl(hue, defaultChroma, defaultLuminance).Clamped()
	}
	return colors
}

// Assign maps each label to a colour, following the order of labels.
func Assign(labels []int) map[int]colorful.Color {
	colors := LabelColors(len(labels))
	out := make(map[int]colorful.Color, len(labels))
	for i, label := range labels {
		out[label] = colors[i]
	}
	return out
}

// ParseHex parses a colour such as "#FF0000" or "#FF000080" (with alpha).
func ParseHex(hex string) (color.RGBA, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	alpha := uint8(255)
	if len(hex) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(hex[7:], "%02x", &a); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in color %q: %w", hex, err)
		}
		alpha = a
		hex = hex[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
}
