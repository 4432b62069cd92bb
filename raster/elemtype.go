package raster

// ElemType identifies the sample type a raster originally carried.
// The codec records it at encode time and uses it only to clip and cast the
// reconstructed samples.
type ElemType string

const (
	Uint8   ElemType = "uint8"
	Int16   ElemType = "int16"
	Uint16  ElemType = "uint16"
	Float32 ElemType = "float32"
	Float64 ElemType = "float64"
)

// Valid reports whether t is a recognized element type.
func (t ElemType) Valid() bool {
	switch t {
	case Uint8, Int16, Uint16, Float32, Float64:
		return true
	}
	return false
}

// Size returns the width of one sample in bytes.
func (t ElemType) Size() int {
	switch t {
	case Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

// Bounds returns the representable range of t. bounded is false for
// floating-point types, which are never clipped on reconstruction.
func (t ElemType) Bounds() (min, max float64, bounded bool) {
	switch t {
	case Uint8:
		return 0, 255, true
	case Int16:
		return -32768, 32767, true
	case Uint16:
		return 0, 65535, true
	}
	return 0, 0, false
}
