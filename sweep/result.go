package sweep

import "sort"

// Result is one row of the sweep report.
type Result struct {
	RunID           string
	Algorithm       string
	Params          string
	WaveletName     string
	OriginalBytes   int
	Dimensions      string // "HxW"
	CompressedBytes int
	Ratio           float64 // original/compressed
	BPP             float64
	PSNR            float64
	SSIM            float64
	Seconds         float64
	Err             string // non-empty when the combination failed
}

// Sort orders rows by compression ratio descending, then compressed size
// ascending; failed rows sink to the bottom.
func Sort(rows []Result) {
	sort.SliceStable(rows, func(i, j int) bool {
		if (rows[i].Err == "") != (rows[j].Err == "") {
			return rows[i].Err == ""
		}
		if rows[i].Ratio != rows[j].Ratio {
			return rows[i].Ratio > rows[j].Ratio
		}
		return rows[i].CompressedBytes < rows[j].CompressedBytes
	})
}
