// pkg/compress/errors.go
package compress

import "errors"

var (
	// ErrInputRequired is returned when input path is not specified
	ErrInputRequired = errors.New("input path is required")

	// ErrBlockSizeTooSmall is returned when the block size is below 4KiB
	ErrBlockSizeTooSmall = errors.New("block size must be at least 4KiB")

	// ErrBlockSizeTooLarge is returned when the block size exceeds 64MiB
	ErrBlockSizeTooLarge = errors.New("block size must be at most 64MiB")
)
