// pkg/codec/errors.go
package codec

import "errors"

var (
	// ErrUnknownMethod is returned when no codec is registered for a method
	// byte or name.
	ErrUnknownMethod = errors.New("unknown compression method")

	// ErrShortBuffer is returned when a destination buffer cannot hold the
	// encoded output. Size destinations with MaxCompressedSize.
	ErrShortBuffer = errors.New("destination buffer too small")

	// ErrSizeMismatch is returned when decoded output does not match the
	// destination length the caller derived from the frame.
	ErrSizeMismatch = errors.New("decompressed size mismatch")
)
