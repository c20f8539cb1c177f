package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "qflate",
	Short:   "qflate - deflate compression with transparent hardware offload",
	Long:    "qflate compresses and decompresses files in a block stream format, offloading deflate work to a hardware accelerator when one is available.",
	Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		versionCmd(),
		compressCmd(),
		decompressCmd(),
		methodsCmd(),
	)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qflate %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
		},
	}
}
