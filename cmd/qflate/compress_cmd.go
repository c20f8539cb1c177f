// cmd/qflate/compress_cmd.go

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/qflate/qflate/pkg/compress"
	"github.com/qflate/qflate/pkg/qflate"
)

func compressCmd() *cobra.Command {
	var inputPath, outputPath, method string
	var blockSize, threads int
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Compress a file into a qflate stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				// Surface which path served each block.
				qflate.Log.SetOutput(os.Stderr)
			}

			opts := &compress.Options{
				InputPath:  inputPath,
				OutputPath: outputPath,
				Method:     method,
				BlockSize:  blockSize,
				MaxThreads: threads,
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

			log("Compressing %s -> %s (method: %s)", opts.InputPath, opts.OutputPath, opts.Method)

			var progressCb compress.ProgressCallback
			var progress *mpb.Progress
			if !quiet && !verbose {
				progressCb, progress = compress.ProgressBarCallback()
			}

			result, err := compress.Compress(opts, progressCb)

			if progress != nil {
				progress.Wait()
			}
			if err != nil {
				return err
			}

			if !quiet {
				fmt.Println()
				fmt.Print(compress.FormatSummary(result))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input file (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output stream (default: input + .qz)")
	cmd.Flags().StringVarP(&method, "method", "m", "qflate", "Compression method")
	cmd.Flags().IntVar(&blockSize, "block-size", compress.DefaultBlockSize, "Uncompressed block size in bytes")
	cmd.Flags().IntVar(&threads, "threads", 0, "Worker count (default: CPU count)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
