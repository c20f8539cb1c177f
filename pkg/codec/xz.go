// pkg/codec/xz.go
package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// MethodXZ identifies the xz codec.
const MethodXZ byte = 0x93

func init() {
	Register(MethodXZ, "xz", func() Codec { return xzCodec{} })
}

type xzCodec struct{}

func (xzCodec) Name() string     { return "xz" }
func (xzCodec) MethodByte() byte { return MethodXZ }

func (xzCodec) MaxCompressedSize(n int) int {
	// Stream header/footer/index plus uncompressed-chunk overhead.
	return n + n>>4 + 128
}

func (xzCodec) Compress(dst, src []byte) (int, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return 0, fmt.Errorf("xz writer: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return 0, fmt.Errorf("xz encode: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("xz close: %w", err)
	}
	if buf.Len() > len(dst) {
		return 0, ErrShortBuffer
	}
	return copy(dst, buf.Bytes()), nil
}

func (xzCodec) Decompress(dst, src []byte) error {
	r, err := xz.NewReader(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("xz reader: %w", err)
	}
	switch _, err := io.ReadFull(r, dst); {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return ErrSizeMismatch
	case err != nil:
		return fmt.Errorf("xz decode: %w", err)
	}
	return nil
}
