// pkg/decompress/errors.go
package decompress

import "errors"

var (
	// ErrInputRequired is returned when input path is not specified
	ErrInputRequired = errors.New("input path is required")

	// ErrOutputExists is returned when the output file exists and Overwrite
	// is not set
	ErrOutputExists = errors.New("output file already exists")

	// ErrWindowTooLarge is returned when the deferred window exceeds 64 blocks
	ErrWindowTooLarge = errors.New("window must be at most 64 blocks")
)
