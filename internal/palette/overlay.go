package palette

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/region-features-mcp/internal/labelmap"
)

// LegendEntry pairs a label with its overlay colour.
type LegendEntry struct {
	Label int    `json:"label"`
	Color string `json:"color"`
}

// OverlayResult contains the rendered overlay.
type OverlayResult struct {
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	ImageBase64 string        `json:"image_base64"`
	MimeType    string        `json:"mime_type"`
	Legend      []LegendEntry `json:"legend"`
}

// OverlayOptions controls Render.
type OverlayOptions struct {
	// Scale is the integer magnification of each pixel. Values below 1 mean 1.
	Scale int

	// Background is the hex colour of background and unlisted labels.
	// Defaults to opaque black.
	Background string

	// ShowLabels draws each label value at the centroid of its region.
	ShowLabels bool
}

// Render draws the listed labels of m in their palette colours and returns
// the result as a base64 PNG.
func Render(m *labelmap.LabelMap, labels []int, opts OverlayOptions) (*OverlayResult, error) {
	if m.Width() == 0 || m.Height() == 0 {
		return nil, fmt.Errorf("cannot render an empty %dx%d label map", m.Width(), m.Height())
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}

	bg := color.RGBA{A: 255}
	if opts.Background != "" {
		c, err := ParseHex(opts.Background)
		if err != nil {
			return nil, err
		}
		bg = c
	}

	colors := Assign(labels)
	rgba := make(map[int]color.RGBA, len(colors))
	legend := make([]LegendEntry, 0, len(labels))
	for _, label := range labels {
		c := colors[label]
		r, g, b := c.RGB255()
		rgba[label] = color.RGBA{R: r, G: g, B: b, A: 255}
		legend = append(legend, LegendEntry{Label: label, Color: c.Hex()})
	}

	type moments struct{ n, sx, sy int }
	centroids := make(map[int]*moments, len(labels))

	img := image.NewRGBA(image.Rect(0, 0, m.Width(), m.Height()))
	m.Each(func(x, y, label int) {
		c, ok := rgba[label]
		if !ok || label == 0 {
			img.SetRGBA(x, y, bg)
			return
		}
		img.SetRGBA(x, y, c)
		mo := centroids[label]
		if mo == nil {
			mo = &moments{}
			centroids[label] = mo
		}
		mo.n++
		mo.sx += x
		mo.sy += y
	})

	out := image.Image(img)
	if opts.Scale > 1 {
		out = imaging.Resize(img, m.Width()*opts.Scale, m.Height()*opts.Scale, imaging.NearestNeighbor)
	}

	if opts.ShowLabels {
		canvas := imaging.Clone(out)
		fg := color.RGBA{255, 255, 255, 255}
		shade := color.RGBA{0, 0, 0, 180}
		for _, label := range labels {
			mo := centroids[label]
			if mo == nil {
				continue
			}
			cx := (mo.sx*opts.Scale)/mo.n + opts.Scale/2
			cy := (mo.sy*opts.Scale)/mo.n + opts.Scale/2
			drawText(canvas, cx, cy, strconv.Itoa(label), fg, shade)
		}
		out = canvas
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	b := out.Bounds()
	return &OverlayResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Legend:      legend,
	}, nil
}

// drawText draws text centred on (cx, cy) over a shaded box, clipped to the
// image.
func drawText(img *image.NRGBA, cx, cy int, text string, fg, bg color.RGBA) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil() + 2
	h := face.Ascent + face.Descent + 2
	box := image.Rect(cx-w/2, cy-h/2, cx-w/2+w, cy-h/2+h).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(cx-w/2+1, cy-h/2+1+face.Ascent),
	}
	d.DrawString(text)
}
