package labelmap

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"sync"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// Cache provides thread-safe caching of decoded label images, so that several
// analyses of the same file do not decode it again.
//
// Decoded images are kept until Evict or Clear is called.
//
// # Example Usage
//
//	cache := labelmap.NewCache()
//	m, err := cache.LabelMap("/path/to/labels.png")
//	if err != nil {
//	    return err
//	}
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewCache creates an empty cache, ready for concurrent use.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]image.Image),
	}
}

// Load returns the decoded image stored at path, reading it from disk on the
// first request. The image keeps its native type, so 8-bit and 16-bit
// grayscale and paletted PNGs remain integer-valued.
func (c *Cache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LabelMap loads path and interprets it as a label map. See FromImage.
func (c *Cache) LabelMap(path string) (*LabelMap, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

// Mask loads path and binarizes it with FromMask.
func (c *Cache) Mask(path string, level uint8) (*LabelMap, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return FromMask(img, level), nil
}

// Evict removes the image loaded from path, if any.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear removes all cached images.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// FromImage converts an integer-valued image into a label map. Gray and
// Gray16 images use their intensity as label; paletted images use the palette
// index. Any other image type yields an InvalidInputError.
func FromImage(img image.Image) (*LabelMap, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]int, 0, w*h)

	switch src := img.(type) {
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			for _, v := range src.Pix[off : off+w] {
				data = append(data, int(v))
			}
		}
	case *image.Gray16:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				data = append(data, int(src.Gray16At(x, y).Y))
			}
		}
	case *image.Paletted:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				data = append(data, int(src.ColorIndexAt(x, y)))
			}
		}
	default:
		return nil, invalidInput("label map requires an integer-valued image (gray, gray16 or paletted), got %T", img)
	}

	return &LabelMap{
		width:       w,
		height:      h,
		data:        data,
		calibration: DefaultCalibration(),
	}, nil
}

// FromMask binarizes any image into a label map containing a single region
// with label 1: pixels whose luminance is at least level belong to the
// region, all others are background.
func FromMask(img image.Image, level uint8) *LabelMap {
	bin := segment.Threshold(img, level)
	b := bin.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]int, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := bin.PixOffset(b.Min.X, y)
		for _, v := range bin.Pix[off : off+w] {
			if v != 0 {
				data = append(data, 1)
			} else {
				data = append(data, 0)
			}
		}
	}
	return &LabelMap{
		width:       w,
		height:      h,
		data:        data,
		calibration: DefaultCalibration(),
	}
}
