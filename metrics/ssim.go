package metrics

import (
	"fmt"

	"github.com/cocosip/go-wavelet-codec/raster"
)

// ssimWindow is the side of the square sliding window.
const ssimWindow = 7

// SSIM returns the mean structural similarity index between two rasters of
// equal shape, computed over a 7x7 uniform sliding window with the standard
// stabilizers C1=(0.01*L)^2 and C2=(0.03*L)^2, where L is dataRange.
// Identical inputs yield 1.
func SSIM(a, b *raster.Raster, dataRange float64) (float64, error) {
	if a.Height != b.Height || a.Width != b.Width {
		return 0, fmt.Errorf("metrics: shape mismatch %dx%d vs %dx%d", a.Height, a.Width, b.Height, b.Width)
	}
	if a.Height < ssimWindow || a.Width < ssimWindow {
		return 0, fmt.Errorf("metrics: raster %dx%d smaller than the %dx%d SSIM window",
			a.Height, a.Width, ssimWindow, ssimWindow)
	}
	if dataRange <= 0 {
		return 0, fmt.Errorf("metrics: data range must be positive, got %v", dataRange)
	}

	c1 := (0.01 * dataRange) * (0.01 * dataRange)
	c2 := (0.03 * dataRange) * (0.03 * dataRange)

	n := float64(ssimWindow * ssimWindow)
	// Sample (not population) moments, matching the usual reference
	// implementation.
	norm := n / (n - 1)

	var total float64
	var windows int
	for y := 0; y+ssimWindow <= a.Height; y++ {
		for x := 0; x+ssimWindow <= a.Width; x++ {
			var sx, sy, sxx, syy, sxy float64
			for wy := 0; wy < ssimWindow; wy++ {
				arow := a.Pix[(y+wy)*a.Width+x : (y+wy)*a.Width+x+ssimWindow]
				brow := b.Pix[(y+wy)*b.Width+x : (y+wy)*b.Width+x+ssimWindow]
				for i := 0; i < ssimWindow; i++ {
					u, v := arow[i], brow[i]
					sx += u
					sy += v
					sxx += u * u
					syy += v * v
					sxy += u * v
				}
			}
			mx := sx / n
			my := sy / n
			vx := (sxx/n - mx*mx) * norm
			vy := (syy/n - my*my) * norm
			cov := (sxy/n - mx*my) * norm

			num := (2*mx*my + c1) * (2*cov + c2)
			den := (mx*mx + my*my + c1) * (vx + vy + c2)
			total += num / den
			windows++
		}
	}
	return total / float64(windows), nil
}
