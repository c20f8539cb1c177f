// pkg/codec/lz4.go
package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// MethodLZ4 identifies the lz4 codec.
const MethodLZ4 byte = 0x82

func init() {
	Register(MethodLZ4, "lz4", func() Codec { return lz4Codec{} })
}

// lz4Codec stores blocks in the LZ4 frame format, which round-trips
// incompressible input (raw block compression would reject it).
type lz4Codec struct{}

func (lz4Codec) Name() string     { return "lz4" }
func (lz4Codec) MethodByte() byte { return MethodLZ4 }

func (lz4Codec) MaxCompressedSize(n int) int {
	// Block bound plus frame header, block headers and trailing checksum.
	return lz4.CompressBlockBound(n) + 64
}

func (lz4Codec) Compress(dst, src []byte) (int, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return 0, fmt.Errorf("lz4 encode: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("lz4 close: %w", err)
	}
	if buf.Len() > len(dst) {
		return 0, ErrShortBuffer
	}
	return copy(dst, buf.Bytes()), nil
}

func (lz4Codec) Decompress(dst, src []byte) error {
	r := lz4.NewReader(bytes.NewReader(src))
	switch _, err := io.ReadFull(r, dst); {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return ErrSizeMismatch
	case err != nil:
		return fmt.Errorf("lz4 decode: %w", err)
	}
	return nil
}
