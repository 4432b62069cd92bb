// Package metrics provides the fidelity measures used to score reconstructed
// rasters against their originals.
package metrics

import (
	"fmt"
	"math"

	"github.com/cocosip/go-wavelet-codec/raster"
)

// MaxPixel8Bit is the peak sample value for 8-bit imagery.
const MaxPixel8Bit = 255.0

// MSE returns the mean squared error between two rasters of equal shape.
func MSE(a, b *raster.Raster) (float64, error) {
	if a.Height != b.Height || a.Width != b.Width {
		return 0, fmt.Errorf("metrics: shape mismatch %dx%d vs %dx%d", a.Height, a.Width, b.Height, b.Width)
	}
	var sum float64
	for i := range a.Pix {
		d := a.Pix[i] - b.Pix[i]
		sum += d * d
	}
	return sum / float64(len(a.Pix)), nil
}

// PSNR returns the peak signal-to-noise ratio in dB for the given peak sample
// value. Identical inputs yield +Inf.
func PSNR(a, b *raster.Raster, peak float64) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 20 * math.Log10(peak/math.Sqrt(mse)), nil
}
