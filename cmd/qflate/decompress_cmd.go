// cmd/qflate/decompress_cmd.go

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/qflate/qflate/pkg/decompress"
	"github.com/qflate/qflate/pkg/qflate"
)

func decompressCmd() *cobra.Command {
	var inputPath, outputPath string
	var window int
	var overwrite bool
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "decompress",
		Short: "Decompress a qflate stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				qflate.Log.SetOutput(os.Stderr)
			}

			opts := &decompress.Options{
				InputPath:  inputPath,
				OutputPath: outputPath,
				Window:     window,
				Overwrite:  overwrite,
				Verbose:    verbose,
				Quiet:      quiet,
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			log := func(format string, args ...interface{}) {
				if !quiet {
					fmt.Printf(format+"\n", args...)
				}
			}

			log("Decompressing %s -> %s", opts.InputPath, opts.OutputPath)

			var progressCb decompress.ProgressCallback
			var progress *mpb.Progress
			if !quiet && !verbose {
				progressCb, progress = decompress.ProgressBarCallback()
			}

			result, err := decompress.Decompress(opts, progressCb)

			if progress != nil {
				progress.Wait()
			}
			if err != nil {
				return err
			}

			if !quiet {
				fmt.Println()
				fmt.Print(decompress.FormatSummary(result))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input stream (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: input minus .qz)")
	cmd.Flags().IntVar(&window, "window", decompress.DefaultWindow, "Deferred decompression window in blocks")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing output file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
