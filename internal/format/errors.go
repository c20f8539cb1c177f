// internal/format/errors.go
package format

import "errors"

var (
	// ErrBadMagic is returned when the input is not a qflate stream.
	ErrBadMagic = errors.New("not a qflate stream")

	// ErrChecksum is returned when a block payload fails checksum
	// verification.
	ErrChecksum = errors.New("block checksum mismatch")

	// ErrTruncated is returned when the stream ends before its end-of-stream
	// marker.
	ErrTruncated = errors.New("truncated stream")
)
