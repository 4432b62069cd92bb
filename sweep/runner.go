package sweep

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cocosip/go-wavelet-codec/codec"
	"github.com/cocosip/go-wavelet-codec/metrics"
	"github.com/cocosip/go-wavelet-codec/raster"
)

// Runner executes one sweep with bounded concurrency. The codec calls are
// pure and share nothing, so tasks only need a concurrency limit, not locks.
type Runner struct {
	// Workers bounds concurrent tasks. Defaults to GOMAXPROCS.
	Workers int

	// RunID tags every result row. NewRunner assigns a random id.
	RunID string

	// SaveDir, when non-empty, receives per-task artifacts: the compressed
	// stream, its metadata record and the reconstructed image.
	SaveDir string

	// Verbose enables per-task progress logging.
	Verbose bool
}

// NewRunner creates a runner with a fresh run id.
func NewRunner(workers int) *Runner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{Workers: workers, RunID: uuid.NewString()}
}

// Run executes every task of the grid against the raster and returns the
// sorted result rows. Individual combination failures are recorded in their
// rows; only context cancellation aborts the run.
func (rn *Runner) Run(ctx context.Context, r *raster.Raster, g Grid) ([]Result, error) {
	if r.Empty() {
		return nil, fmt.Errorf("sweep: input raster is empty")
	}
	if rn.SaveDir != "" {
		if err := os.MkdirAll(rn.SaveDir, 0o755); err != nil {
			return nil, fmt.Errorf("sweep: %w", err)
		}
	}

	tasks := g.Tasks(r)
	rows := make([]Result, len(tasks))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(rn.Workers)
	for i, task := range tasks {
		i, task := i, task
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = rn.runTask(r, task)
			if rn.Verbose {
				if rows[i].Err != "" {
					log.Printf("sweep %s: %s failed: %s", rn.RunID, task.Strategy.Name(), rows[i].Err)
				} else {
					log.Printf("sweep %s: %s -> %d bytes (%.2fx) in %.3fs",
						rn.RunID, task.Strategy.Name(), rows[i].CompressedBytes, rows[i].Ratio, rows[i].Seconds)
				}
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	Sort(rows)
	return rows, nil
}

func (rn *Runner) runTask(r *raster.Raster, task Task) Result {
	row := Result{
		RunID:         rn.RunID,
		Algorithm:     task.Algorithm,
		Params:        task.Params,
		WaveletName:   task.WaveletName,
		OriginalBytes: r.Bytes(),
		Dimensions:    fmt.Sprintf("%dx%d", r.Height, r.Width),
	}

	start := time.Now()
	res, err := task.Strategy.Compress(r)
	row.Seconds = time.Since(start).Seconds()
	if err != nil {
		row.Err = err.Error()
		return row
	}

	row.CompressedBytes = res.Size
	if res.Size > 0 {
		row.Ratio = float64(row.OriginalBytes) / float64(res.Size)
		row.BPP = float64(res.Size*8) / float64(r.Height*r.Width)
	}

	recon, err := task.Strategy.Reconstruct(res)
	if err != nil {
		row.Err = err.Error()
		return row
	}

	if row.PSNR, err = metrics.PSNR(r, recon, metrics.MaxPixel8Bit); err != nil {
		row.Err = err.Error()
		return row
	}
	if row.SSIM, err = metrics.SSIM(r, recon, metrics.MaxPixel8Bit); err != nil {
		row.Err = err.Error()
		return row
	}

	if rn.SaveDir != "" {
		if err := rn.saveArtifacts(task, res, recon); err != nil {
			row.Err = err.Error()
		}
	}
	return row
}

func (rn *Runner) saveArtifacts(task Task, res *codec.Result, recon *raster.Raster) error {
	base := filepath.Join(rn.SaveDir, sanitize(task.Algorithm+"_"+task.Params))
	if err := os.WriteFile(base+".bin", res.Stream, 0o644); err != nil {
		return err
	}
	if len(res.Metadata) > 0 {
		if err := os.WriteFile(base+".json", res.Metadata, 0o644); err != nil {
			return err
		}
	}
	return raster.Save(base+".png", recon)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}
