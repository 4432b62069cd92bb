// Package raster provides the single-channel real-valued image type shared by
// every compression strategy, together with loading and saving helpers.
package raster

import (
	"fmt"
	"math"
)

// Raster is a single-channel, real-valued 2D image in row-major order.
// Pix always holds float64 samples; Type records the element type the image
// originally had, used only to clip and cast on reconstruction.
type Raster struct {
	Height int
	Width  int
	Type   ElemType
	Pix    []float64
}

// New creates a zero-filled raster.
func New(height, width int, typ ElemType) *Raster {
	return &Raster{
		Height: height,
		Width:  width,
		Type:   typ,
		Pix:    make([]float64, height*width),
	}
}

// FromRows builds a raster from a rectangular slice of rows.
func FromRows(rows [][]float64, typ ElemType) (*Raster, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("raster: empty input")
	}
	w := len(rows[0])
	r := New(len(rows), w, typ)
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("raster: ragged input: row %d has %d columns, want %d", y, len(row), w)
		}
		copy(r.Pix[y*w:(y+1)*w], row)
	}
	return r, nil
}

// At returns the sample at (y, x).
func (r *Raster) At(y, x int) float64 {
	return r.Pix[y*r.Width+x]
}

// Set stores a sample at (y, x).
func (r *Raster) Set(y, x int, v float64) {
	r.Pix[y*r.Width+x] = v
}

// Row returns the y-th row as a subslice of Pix.
func (r *Raster) Row(y int) []float64 {
	return r.Pix[y*r.Width : (y+1)*r.Width]
}

// Shape returns (height, width).
func (r *Raster) Shape() (int, int) {
	return r.Height, r.Width
}

// Empty reports whether the raster has no samples.
func (r *Raster) Empty() bool {
	return r == nil || r.Height <= 0 || r.Width <= 0 || len(r.Pix) != r.Height*r.Width
}

// Bytes returns the uncompressed size of the raster in its original element
// type, height*width*elemsize.
func (r *Raster) Bytes() int {
	return r.Height * r.Width * r.Type.Size()
}

// Clone returns a deep copy.
func (r *Raster) Clone() *Raster {
	out := &Raster{Height: r.Height, Width: r.Width, Type: r.Type, Pix: make([]float64, len(r.Pix))}
	copy(out.Pix, r.Pix)
	return out
}

// ConvertTo returns a copy cast to the given element type. Bounded integer
// types are clipped to their representable range and have their fractional
// part truncated; floating-point types pass through the cast unclipped.
func (r *Raster) ConvertTo(typ ElemType) *Raster {
	out := r.Clone()
	out.Type = typ
	min, max, bounded := typ.Bounds()
	for i, v := range out.Pix {
		if bounded {
			if v < min {
				v = min
			} else if v > max {
				v = max
			}
			v = math.Trunc(v)
		} else if typ == Float32 {
			v = float64(float32(v))
		}
		out.Pix[i] = v
	}
	return out
}
