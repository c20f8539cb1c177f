// pkg/decompress/options.go
package decompress

import "strings"

const (
	// DefaultWindow is how many blocks are submitted for deferred
	// decompression before one flush resolves them all.
	DefaultWindow = 8

	maxWindow = 64
)

// Options configures the decompression behavior
type Options struct {
	// Input stream path
	InputPath string

	// Output file path
	// Default: InputPath minus its ".qz" suffix, or InputPath + ".out"
	OutputPath string

	// Window is the number of blocks submitted asynchronously between
	// flushes, for codecs that support deferred decompression
	// Default: 8, bounds: 1-64
	Window int

	// Overwrite allows replacing an existing output file
	Overwrite bool

	// Verbose enables detailed logging
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{Window: DefaultWindow}
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.InputPath == "" {
		return ErrInputRequired
	}
	if o.OutputPath == "" {
		if strings.HasSuffix(o.InputPath, ".qz") {
			o.OutputPath = strings.TrimSuffix(o.InputPath, ".qz")
		} else {
			o.OutputPath = o.InputPath + ".out"
		}
	}
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	if o.Window > maxWindow {
		return ErrWindowTooLarge
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
