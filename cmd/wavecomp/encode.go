package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cocosip/go-wavelet-codec/dwt"
	"github.com/cocosip/go-wavelet-codec/raster"
)

func encodeCmd() *cobra.Command {
	var (
		input    string
		output   string
		metaPath string
		wavelet  string
		level    int
		step     float64
		maxDim   int
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Compress an image with the wavelet codec",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := raster.Load(input, raster.WithMaxDim(maxDim))
			if err != nil {
				return err
			}

			stream, meta, size, err := dwt.Encode(r, wavelet, level, step)
			if err != nil {
				return err
			}
			metaJSON, err := meta.JSON()
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, stream, 0o644); err != nil {
				return err
			}
			if err := os.WriteFile(metaPath, metaJSON, 0o644); err != nil {
				return err
			}

			fmt.Printf("%s: %d bytes -> %d bytes (%.2fx)\n", input, r.Bytes(), size,
				float64(r.Bytes())/float64(size))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input image (png/jpeg/gif/tiff/bmp)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output stream file")
	cmd.Flags().StringVarP(&metaPath, "metadata", "m", "", "output metadata JSON file")
	cmd.Flags().StringVar(&wavelet, "wavelet", "haar", "wavelet identifier")
	cmd.Flags().IntVar(&level, "level", 2, "decomposition level")
	cmd.Flags().Float64Var(&step, "step", 10, "quantization step")
	cmd.Flags().IntVar(&maxDim, "max-dim", 0, "downscale so no dimension exceeds this (0 = off)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	cmd.MarkFlagRequired("metadata")
	return cmd
}
