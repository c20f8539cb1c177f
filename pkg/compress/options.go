// pkg/compress/options.go
package compress

import "runtime"

const (
	// DefaultBlockSize is the block size used when none is configured.
	DefaultBlockSize = 1024 * 1024

	minBlockSize = 4 * 1024
	maxBlockSize = 64 * 1024 * 1024
)

// Options configures the compression behavior
type Options struct {
	// Input file path
	InputPath string

	// Output stream path
	// Default: InputPath + ".qz"
	OutputPath string

	// Method selects the registered codec by name
	// Default: "qflate"
	Method string

	// BlockSize is the uncompressed size of each block (bytes)
	// Blocks are compressed independently and in parallel
	// Default: 1MiB, bounds: 4KiB-64MiB
	BlockSize int

	// Maximum number of concurrent compression workers
	// Each worker gets its own codec instance; all share the job pool
	// Default: runtime.NumCPU()
	MaxThreads int

	// Verbose enables detailed logging
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		Method:     "qflate",
		BlockSize:  DefaultBlockSize,
		MaxThreads: runtime.NumCPU(),
	}
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.InputPath == "" {
		return ErrInputRequired
	}
	if o.OutputPath == "" {
		o.OutputPath = o.InputPath + ".qz"
	}
	if o.Method == "" {
		o.Method = "qflate"
	}
	if o.BlockSize == 0 {
		o.BlockSize = DefaultBlockSize
	}
	if o.BlockSize < minBlockSize {
		return ErrBlockSizeTooSmall
	}
	if o.BlockSize > maxBlockSize {
		return ErrBlockSizeTooLarge
	}
	if o.MaxThreads <= 0 {
		o.MaxThreads = runtime.NumCPU()
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
