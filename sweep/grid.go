// Package sweep fans the compression strategies out over a parameter grid,
// scores every combination and persists the results as CSV. Each task owns an
// immutable view of the source raster and produces an independent result, so
// the runner needs no coordination beyond a concurrency limit.
package sweep

import (
	"fmt"

	"github.com/cocosip/go-wavelet-codec/codec"
	"github.com/cocosip/go-wavelet-codec/deflate"
	"github.com/cocosip/go-wavelet-codec/dwt"
	"github.com/cocosip/go-wavelet-codec/raster"
	"github.com/cocosip/go-wavelet-codec/wavelet"
)

// Grid is the cartesian parameter space of one sweep run.
type Grid struct {
	Wavelets      []string
	Levels        []int
	QuantSteps    []float64
	DeflateLevels []int
}

// DefaultGrid returns the historical evaluation grid.
func DefaultGrid() Grid {
	g := Grid{
		Wavelets:      []string{"haar", "db1", "db4", "sym2", "coif1", "bior2.2"},
		DeflateLevels: []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
	for l := 2; l <= 30; l += 2 {
		g.Levels = append(g.Levels, l)
	}
	for s := 5; s <= 100; s += 5 {
		g.QuantSteps = append(g.QuantSteps, float64(s))
	}
	return g
}

// Task is one parameter combination ready to run.
type Task struct {
	Strategy    codec.Strategy
	Algorithm   string
	Params      string
	WaveletName string
}

// Tasks expands the grid for a given raster. DWT levels above the
// wavelet/shape-derived maximum cannot run and are dropped here, before any
// work is scheduled; unknown wavelet names are kept so the run records their
// failure.
func (g Grid) Tasks(r *raster.Raster) []Task {
	minDim := r.Height
	if r.Width < minDim {
		minDim = r.Width
	}

	var tasks []Task
	for _, level := range g.DeflateLevels {
		tasks = append(tasks, Task{
			Strategy:  deflate.NewStrategy(level),
			Algorithm: "Deflate",
			Params:    fmt.Sprintf("level=%d", level),
		})
	}
	for _, name := range g.Wavelets {
		max := -1
		if w, err := wavelet.Get(name); err == nil {
			max = wavelet.MaxLevel(minDim, w.FilterLen())
		}
		for _, level := range g.Levels {
			if max >= 0 && level > max {
				continue
			}
			for _, step := range g.QuantSteps {
				tasks = append(tasks, Task{
					Strategy:    dwt.NewStrategy(name, level, step),
					Algorithm:   "DWT",
					Params:      fmt.Sprintf("wavelet=%s, level=%d, step=%g", name, level, step),
					WaveletName: name,
				})
			}
		}
	}
	return tasks
}
