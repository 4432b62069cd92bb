// Command wavecomp evaluates wavelet-based lossy compression against a
// Deflate baseline. Its encode and decode subcommands run in separate
// processes on purpose: the only things they share are the compressed stream
// and the metadata record.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)

	root := &cobra.Command{
		Use:           "wavecomp",
		Short:         "Wavelet image compression evaluation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(encodeCmd(), decodeCmd(), sweepCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wavecomp:", err)
		os.Exit(1)
	}
}
