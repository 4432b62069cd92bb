package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cocosip/go-wavelet-codec/dwt"
	"github.com/cocosip/go-wavelet-codec/raster"
)

func decodeCmd() *cobra.Command {
	var (
		input    string
		metaPath string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Reconstruct an image from a stream and its metadata record",
		RunE: func(cmd *cobra.Command, args []string) error {
			stream, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			metaJSON, err := os.ReadFile(metaPath)
			if err != nil {
				return err
			}
			meta, err := dwt.ParseMetadata(metaJSON)
			if err != nil {
				return err
			}

			r, err := dwt.Decode(stream, meta)
			if err != nil {
				return err
			}
			if err := raster.Save(output, r); err != nil {
				return err
			}

			fmt.Printf("%s + %s -> %s (%dx%d)\n", input, metaPath, output, r.Height, r.Width)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input stream file")
	cmd.Flags().StringVarP(&metaPath, "metadata", "m", "", "metadata JSON file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image file")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("metadata")
	cmd.MarkFlagRequired("output")
	return cmd
}
