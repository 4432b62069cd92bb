package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cocosip/go-wavelet-codec/raster"
	"github.com/cocosip/go-wavelet-codec/sweep"
)

func sweepCmd() *cobra.Command {
	var (
		input         string
		output        string
		wavelets      []string
		levels        []int
		steps         []float64
		deflateLevels []int
		workers       int
		saveDir       string
		maxDim        int
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run every parameter combination and write a CSV report",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := raster.Load(input, raster.WithMaxDim(maxDim))
			if err != nil {
				return err
			}

			grid := sweep.DefaultGrid()
			if len(wavelets) > 0 {
				grid.Wavelets = wavelets
			}
			if len(levels) > 0 {
				grid.Levels = levels
			}
			if len(steps) > 0 {
				grid.QuantSteps = steps
			}
			if len(deflateLevels) > 0 {
				grid.DeflateLevels = deflateLevels
			}

			runner := sweep.NewRunner(workers)
			runner.SaveDir = saveDir
			runner.Verbose = verbose

			rows, err := runner.Run(cmd.Context(), r, grid)
			if err != nil {
				return err
			}
			if err := sweep.WriteCSV(output, rows); err != nil {
				return err
			}

			failed := 0
			for _, row := range rows {
				if row.Err != "" {
					failed++
				}
			}
			fmt.Printf("run %s: %d combinations (%d failed) -> %s\n", runner.RunID, len(rows), failed, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input image")
	cmd.Flags().StringVarP(&output, "output", "o", "results.csv", "output CSV file")
	cmd.Flags().StringSliceVar(&wavelets, "wavelets", nil, "wavelet identifiers (default grid when empty)")
	cmd.Flags().IntSliceVar(&levels, "levels", nil, "decomposition levels")
	cmd.Flags().Float64SliceVar(&steps, "steps", nil, "quantization steps")
	cmd.Flags().IntSliceVar(&deflateLevels, "deflate-levels", nil, "zlib levels for the lossless baseline")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent tasks (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&saveDir, "save-dir", "", "directory for per-task streams, metadata and reconstructions")
	cmd.Flags().IntVar(&maxDim, "max-dim", 0, "downscale so no dimension exceeds this (0 = off)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-task progress")
	cmd.MarkFlagRequired("input")
	return cmd
}
