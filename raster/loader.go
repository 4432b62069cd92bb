package raster

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	maxDim int
}

// WithMaxDim downscales the decoded image so that neither dimension exceeds
// n, preserving aspect ratio. Zero disables downscaling.
func WithMaxDim(n int) LoadOption {
	return func(c *loadConfig) { c.maxDim = n }
}

// Load decodes an image file (PNG, JPEG, GIF, TIFF or BMP), converts it to
// grayscale and returns it as a raster. The original element type is recorded
// as float32, matching the acquisition contract of the evaluation pipeline.
func Load(path string, opts ...LoadOption) (*Raster, error) {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load raster: %w", err)
	}

	if cfg.maxDim > 0 {
		b := img.Bounds()
		if b.Dx() > cfg.maxDim || b.Dy() > cfg.maxDim {
			img = resize.Thumbnail(uint(cfg.maxDim), uint(cfg.maxDim), img, resize.Lanczos3)
		}
	}

	return FromImage(img), nil
}

// FromImage converts any image to a grayscale raster.
func FromImage(img image.Image) *Raster {
	g := gift.New(gift.Grayscale())
	gray := image.NewGray(g.Bounds(img.Bounds()))
	g.Draw(gray, img)

	b := gray.Bounds()
	r := New(b.Dy(), b.Dx(), Float32)
	for y := 0; y < r.Height; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+r.Width]
		for x, p := range row {
			r.Pix[y*r.Width+x] = float64(p)
		}
	}
	return r
}

// ToGray renders the raster as an 8-bit grayscale image, clipping samples to
// the 0..255 range.
func (r *Raster) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			v := r.At(y, x)
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			img.Pix[y*img.Stride+x] = uint8(v)
		}
	}
	return img
}

// Save writes the raster as an image file; the format is inferred from the
// path extension.
func Save(path string, r *Raster) error {
	if err := imaging.Save(r.ToGray(), path); err != nil {
		return fmt.Errorf("save raster: %w", err)
	}
	return nil
}
