// pkg/compress/result.go
package compress

import "time"

// Result contains statistics about the compression operation
type Result struct {
	// Original input size in bytes
	OriginalSize uint64

	// Total output stream size in bytes (framing included)
	CompressedSize uint64

	// Number of blocks written
	Blocks int

	// Codec method used
	Method string

	// Wall-clock duration of the operation
	Duration time.Duration
}

// Ratio returns the compression ratio (original / compressed)
func (r *Result) Ratio() float64 {
	if r.CompressedSize == 0 {
		return 0
	}
	return float64(r.OriginalSize) / float64(r.CompressedSize)
}
