// Package deflate implements the lossless baseline the wavelet codec is
// compared against: the raster is rendered as an 8-bit PNG in memory and the
// PNG bytes are zlib-compressed at a caller-chosen level.
package deflate

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/zlib"

	"github.com/cocosip/go-wavelet-codec/codec"
	"github.com/cocosip/go-wavelet-codec/raster"
)

// CompressRaster clips the raster to 0..255, encodes it as PNG and compresses
// the PNG bytes with Deflate at the given zlib level (1-9).
func CompressRaster(r *raster.Raster, level int) (int, []byte, error) {
	if r.Empty() {
		return 0, nil, fmt.Errorf("%w: input raster must be a non-empty 2D array", codec.ErrInvalidParameter)
	}
	if level < zlib.BestSpeed || level > zlib.BestCompression {
		return 0, nil, fmt.Errorf("%w: deflate level must be 1-9, got %d", codec.ErrInvalidParameter, level)
	}

	var png bytes.Buffer
	if err := imaging.Encode(&png, r.ToGray(), imaging.PNG); err != nil {
		return 0, nil, fmt.Errorf("deflate baseline: %w", err)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return 0, nil, fmt.Errorf("deflate baseline: %w", err)
	}
	if _, err := zw.Write(png.Bytes()); err != nil {
		zw.Close()
		return 0, nil, fmt.Errorf("deflate baseline: %w", err)
	}
	if err := zw.Close(); err != nil {
		return 0, nil, fmt.Errorf("deflate baseline: %w", err)
	}
	return buf.Len(), buf.Bytes(), nil
}

// DecompressRaster reverses CompressRaster. The round trip is lossless with
// respect to the clipped 8-bit rendering.
func DecompressRaster(stream []byte) (*raster.Raster, error) {
	zr, err := zlib.NewReader(bytes.NewReader(stream))
	if err != nil {
		return nil, fmt.Errorf("deflate baseline: %w", err)
	}
	defer zr.Close()
	png, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("deflate baseline: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("deflate baseline: %w", err)
	}
	return raster.FromImage(img), nil
}

var _ codec.Strategy = (*Strategy)(nil)

// Strategy adapts the baseline to the codec.Strategy interface.
type Strategy struct {
	level int
}

// NewStrategy creates a baseline strategy for one zlib level.
func NewStrategy(level int) *Strategy {
	return &Strategy{level: level}
}

// Name returns the strategy name including the zlib level
func (s *Strategy) Name() string {
	return fmt.Sprintf("Deflate (PNG, level=%d)", s.level)
}

// Compress runs the lossless baseline; no metadata record is needed since
// the PNG stream is self-describing
func (s *Strategy) Compress(r *raster.Raster) (*codec.Result, error) {
	size, stream, err := CompressRaster(r, s.level)
	if err != nil {
		return nil, err
	}
	return &codec.Result{Stream: stream, Size: size}, nil
}

// Reconstruct decodes a previous Compress result
func (s *Strategy) Reconstruct(res *codec.Result) (*raster.Raster, error) {
	return DecompressRaster(res.Stream)
}

func init() {
	codec.Register("deflate", func(params codec.Params) (codec.Strategy, error) {
		level := params.GetInt("level")
		if level < 1 || level > 9 {
			return nil, fmt.Errorf("%w: deflate strategy requires level 1-9", codec.ErrInvalidParameter)
		}
		return NewStrategy(level), nil
	})
}
