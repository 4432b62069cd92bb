package codec

import "github.com/cocosip/go-wavelet-codec/raster"

// TestStrategy is a trivial Strategy implementation for registry and harness
// tests. It stores the raster samples verbatim.
type TestStrategy struct {
	name string
}

// NewTestStrategy creates a TestStrategy with the given name
func NewTestStrategy(name string) *TestStrategy {
	return &TestStrategy{name: name}
}

// Name returns the strategy name
func (s *TestStrategy) Name() string {
	return s.name
}

// Compress stores the raster without compressing it
func (s *TestStrategy) Compress(r *raster.Raster) (*Result, error) {
	stream := make([]byte, 0, len(r.Pix))
	for _, v := range r.Pix {
		stream = append(stream, byte(int(v)&0xff))
	}
	return &Result{Stream: stream, Size: len(stream)}, nil
}

// Reconstruct is not meaningful for the test double; it returns nil
func (s *TestStrategy) Reconstruct(res *Result) (*raster.Raster, error) {
	return nil, nil
}
