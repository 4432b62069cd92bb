package sweep

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// csvHeader is the column layout of the persisted report.
var csvHeader = []string{
	"run_id",
	"algorithm",
	"parameters",
	"wavelet_name",
	"original_size_bytes",
	"dimensions_hxw",
	"compressed_size_bytes",
	"compression_ratio",
	"bits_per_pixel",
	"psnr_db",
	"ssim",
	"compression_time_s",
	"error",
}

// WriteCSV persists result rows in their current order.
func WriteCSV(path string, rows []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.RunID,
			r.Algorithm,
			r.Params,
			r.WaveletName,
			strconv.Itoa(r.OriginalBytes),
			r.Dimensions,
			strconv.Itoa(r.CompressedBytes),
			formatFloat(r.Ratio),
			formatFloat(r.BPP),
			formatFloat(r.PSNR),
			formatFloat(r.SSIM),
			formatFloat(r.Seconds),
			r.Err,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("sweep: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
