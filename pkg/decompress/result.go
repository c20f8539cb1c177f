// pkg/decompress/result.go
package decompress

import "time"

// Result contains statistics about the decompression operation
type Result struct {
	// Total compressed input size in bytes (framing included)
	CompressedSize uint64

	// Total decompressed output size in bytes
	DecompressedSize uint64

	// Number of blocks read
	Blocks int

	// Wall-clock duration of the operation
	Duration time.Duration
}
