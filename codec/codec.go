package codec

import "github.com/cocosip/go-wavelet-codec/raster"

// Strategy is the universal interface for all compression strategies
// evaluated by the sweep harness.
type Strategy interface {
	// Compress compresses a grayscale raster
	Compress(r *raster.Raster) (*Result, error)

	// Reconstruct rebuilds a raster from a previous Compress result
	Reconstruct(res *Result) (*raster.Raster, error)

	// Name returns a human-readable name including parameter values
	Name() string
}

// Result contains the output of a Compress call.
//
// Metadata is an opaque JSON document owned by the strategy that produced it.
// It travels next to the stream so that Reconstruct can run in a different
// process from Compress; strategies with self-describing streams leave it nil.
type Result struct {
	Stream   []byte // Compressed byte stream
	Size     int    // len(Stream), recorded for reporting
	Metadata []byte // JSON side record required to reconstruct
}

// Factory builds a Strategy from algorithm-specific parameters.
type Factory func(params Params) (Strategy, error)
