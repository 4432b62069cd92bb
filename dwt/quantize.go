package dwt

import (
	"math"

	"github.com/cocosip/go-wavelet-codec/wavelet"
)

// QuantType is the fixed-width signed integer type quantized coefficients are
// stored in. It is an explicit encode option rather than a compiled-in
// constant so the codec can be exercised at alternative widths.
type QuantType string

const (
	Int8  QuantType = "int8"
	Int16 QuantType = "int16"
	Int32 QuantType = "int32"
)

// Valid reports whether t is a recognized quantized element type.
func (t QuantType) Valid() bool {
	switch t {
	case Int8, Int16, Int32:
		return true
	}
	return false
}

// Size returns the width of one quantized element in bytes.
func (t QuantType) Size() int {
	switch t {
	case Int8:
		return 1
	case Int16:
		return 2
	case Int32:
		return 4
	}
	return 0
}

// Range returns the representable range of t.
func (t QuantType) Range() (min, max float64) {
	switch t {
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Int32:
		return math.MinInt32, math.MaxInt32
	}
	return 0, 0
}

// quantBand is one subband of quantized coefficients. Values are stored as
// int32 but are always clipped to the range of the pyramid's QuantType.
type quantBand struct {
	Rows int
	Cols int
	Data []int32
}

// quantize maps a real subband to the integer domain: round(value/step),
// then clip to the representable range of typ. Rounding and saturation are
// both deliberate loss; large coefficients near transform boundaries can
// exceed the integer range at small steps.
func quantize(sb *wavelet.Subband, step float64, typ QuantType) *quantBand {
	min, max := typ.Range()
	out := &quantBand{Rows: sb.Rows, Cols: sb.Cols, Data: make([]int32, len(sb.Data))}
	for i, v := range sb.Data {
		q := math.Round(v / step)
		if q < min {
			q = min
		} else if q > max {
			q = max
		}
		out.Data[i] = int32(q)
	}
	return out
}

// dequantize maps an integer subband back to the real domain: value*step in
// double precision. Not a perfect inverse of quantize.
func dequantize(qb *quantBand, step float64) *wavelet.Subband {
	out := wavelet.NewSubband(qb.Rows, qb.Cols)
	for i, v := range qb.Data {
		out.Data[i] = float64(v) * step
	}
	return out
}
