package dwt

import (
	"fmt"

	"github.com/cocosip/go-wavelet-codec/codec"
	"github.com/cocosip/go-wavelet-codec/raster"
)

var _ codec.Strategy = (*Strategy)(nil)

// Strategy adapts the wavelet codec to the codec.Strategy interface for the
// sweep harness. The metadata record travels as JSON inside the result, so
// reconstruction can happen in a different process.
type Strategy struct {
	wavelet string
	level   int
	step    float64
	opts    Options
}

// NewStrategy creates a DWT strategy for one (wavelet, level, step)
// combination. Parameters are validated on first use by Encode.
func NewStrategy(wavelet string, level int, step float64) *Strategy {
	return &Strategy{wavelet: wavelet, level: level, step: step, opts: DefaultOptions()}
}

// Name returns the strategy name including parameter values
func (s *Strategy) Name() string {
	return fmt.Sprintf("DWT (wavelet=%s, level=%d, step=%g)", s.wavelet, s.level, s.step)
}

// Wavelet returns the wavelet identifier of this combination.
func (s *Strategy) Wavelet() string {
	return s.wavelet
}

// Compress encodes the raster and attaches the JSON metadata record
func (s *Strategy) Compress(r *raster.Raster) (*codec.Result, error) {
	stream, meta, size, err := EncodeWithOptions(r, s.wavelet, s.level, s.step, s.opts)
	if err != nil {
		return nil, err
	}
	metaJSON, err := meta.JSON()
	if err != nil {
		return nil, err
	}
	return &codec.Result{Stream: stream, Size: size, Metadata: metaJSON}, nil
}

// Reconstruct decodes a previous Compress result
func (s *Strategy) Reconstruct(res *codec.Result) (*raster.Raster, error) {
	if res == nil || len(res.Metadata) == 0 {
		return nil, fmt.Errorf("%w: metadata record", codec.ErrMissingField)
	}
	meta, err := ParseMetadata(res.Metadata)
	if err != nil {
		return nil, err
	}
	return Decode(res.Stream, meta)
}

func init() {
	codec.Register("dwt", func(params codec.Params) (codec.Strategy, error) {
		wavelet := params.GetString("wavelet")
		level := params.GetInt("level")
		step := params.GetFloat("step")
		if wavelet == "" || level < 1 || step <= 0 {
			return nil, fmt.Errorf("%w: dwt strategy requires wavelet, level >= 1 and step > 0", codec.ErrInvalidParameter)
		}
		return NewStrategy(wavelet, level, step), nil
	})
}
