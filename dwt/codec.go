// Package dwt implements the lossy wavelet codec: multi-level 2D wavelet
// decomposition, uniform scalar quantization, order-preserving serialization
// and Deflate entropy coding, with an exact inverse driven entirely by the
// metadata record produced at encode time.
//
// The codec is stateless and pure per call: it allocates its own working
// buffers, reads only its inputs and touches no process-wide state, so any
// number of encode/decode calls may run concurrently without coordination.
package dwt

import (
	"fmt"

	"github.com/cocosip/go-wavelet-codec/codec"
	"github.com/cocosip/go-wavelet-codec/raster"
	"github.com/cocosip/go-wavelet-codec/wavelet"
)

// Options carries the encode settings that are not part of the parameter
// sweep itself.
type Options struct {
	// QuantizedType selects the fixed-width integer type coefficients are
	// quantized to. Defaults to Int16.
	QuantizedType QuantType
}

// DefaultOptions returns the standard encode options.
func DefaultOptions() Options {
	return Options{QuantizedType: Int16}
}

// Encode compresses a raster with the default options. It returns the
// entropy-coded stream, the immutable metadata record decode requires, and
// the compressed size in bytes.
func Encode(r *raster.Raster, waveletName string, level int, step float64) ([]byte, *Metadata, int, error) {
	return EncodeWithOptions(r, waveletName, level, step, DefaultOptions())
}

// EncodeWithOptions compresses a raster. All parameter validation happens
// before any transform work; a validation failure never produces partial
// metadata.
func EncodeWithOptions(r *raster.Raster, waveletName string, level int, step float64, opts Options) ([]byte, *Metadata, int, error) {
	if r.Empty() {
		return nil, nil, 0, fmt.Errorf("%w: input raster must be a non-empty 2D array", codec.ErrInvalidParameter)
	}
	if level < 1 {
		return nil, nil, 0, fmt.Errorf("%w: decomposition level must be a positive integer, got %d", codec.ErrInvalidParameter, level)
	}
	if step <= 0 {
		return nil, nil, 0, fmt.Errorf("%w: quantization step must be positive, got %v", codec.ErrInvalidParameter, step)
	}
	w, err := wavelet.Get(waveletName)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %v", codec.ErrInvalidParameter, err)
	}
	minDim := r.Height
	if r.Width < minDim {
		minDim = r.Width
	}
	if max := wavelet.MaxLevel(minDim, w.FilterLen()); level > max {
		return nil, nil, 0, fmt.Errorf("%w: level %d exceeds maximum %d for wavelet %s on a %dx%d raster",
			codec.ErrInvalidParameter, level, max, w.Name, r.Height, r.Width)
	}
	if opts.QuantizedType == "" {
		opts.QuantizedType = Int16
	}
	if !opts.QuantizedType.Valid() {
		return nil, nil, 0, fmt.Errorf("%w: quantized element type %q", codec.ErrInvalidParameter, opts.QuantizedType)
	}

	pyr, err := wavelet.Forward(r, w, level)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %v", codec.ErrInvalidParameter, err)
	}

	qp := &quantPyramid{
		Type:    opts.QuantizedType,
		Approx:  quantize(pyr.Approx, step, opts.QuantizedType),
		Details: make([][3]*quantBand, len(pyr.Details)),
	}
	for i, t := range pyr.Details {
		bands := t.Bands()
		for s, sb := range bands {
			qp.Details[i][s] = quantize(sb, step, opts.QuantizedType)
		}
	}

	serialized, shapes := serialize(qp)
	stream, err := entropyCompress(serialized)
	if err != nil {
		return nil, nil, 0, err
	}

	meta := &Metadata{
		Wavelet:          w.Name,
		Level:            level,
		QuantizationStep: step,
		OriginalShape:    [2]int{r.Height, r.Width},
		OriginalType:     r.Type,
		SubbandShapes:    shapes,
		QuantizedType:    opts.QuantizedType,
	}
	return stream, meta, len(stream), nil
}

// Decode reconstructs an approximate raster from nothing but the compressed
// stream and the metadata record. The metadata is only read, never mutated,
// and decoding the same pair twice yields bit-identical rasters.
func Decode(stream []byte, meta *Metadata) (*raster.Raster, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	w, err := wavelet.Get(meta.Wavelet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", codec.ErrInvalidParameter, err)
	}

	serialized, err := entropyDecompress(stream)
	if err != nil {
		return nil, err
	}

	// Byte accounting before the walk: either mismatch direction means the
	// encoder and decoder disagree about traversal order or element width.
	if expected := meta.SerializedBytes(); len(serialized) < expected {
		return nil, fmt.Errorf("%w: decompressed stream is %d bytes, shape list demands %d",
			codec.ErrInsufficientData, len(serialized), expected)
	} else if len(serialized) > expected {
		return nil, fmt.Errorf("%w: decompressed stream is %d bytes, shape list accounts for %d",
			codec.ErrTrailingData, len(serialized), expected)
	}

	qp, err := deserialize(serialized, meta.SubbandShapes, meta.QuantizedType)
	if err != nil {
		return nil, err
	}

	pyr := &wavelet.Pyramid{
		Approx:  dequantize(qp.Approx, meta.QuantizationStep),
		Details: make([]wavelet.Triple, len(qp.Details)),
	}
	for i, t := range qp.Details {
		pyr.Details[i] = wavelet.Triple{
			H: dequantize(t[0], meta.QuantizationStep),
			V: dequantize(t[1], meta.QuantizationStep),
			D: dequantize(t[2], meta.QuantizationStep),
		}
	}

	rec, err := wavelet.Inverse(pyr, w)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", codec.ErrInvalidParameter, err)
	}

	// Multi-level reconstruction can overshoot an odd dimension; crop to the
	// recorded original shape before the final cast.
	h, wd := meta.OriginalShape[0], meta.OriginalShape[1]
	if rec.Rows < h || rec.Cols < wd {
		return nil, fmt.Errorf("%w: reconstruction is %dx%d, original shape is %dx%d",
			codec.ErrInsufficientData, rec.Rows, rec.Cols, h, wd)
	}
	out := raster.New(h, wd, raster.Float64)
	for y := 0; y < h; y++ {
		copy(out.Row(y), rec.Data[y*rec.Cols:y*rec.Cols+wd])
	}
	return out.ConvertTo(meta.OriginalType), nil
}
