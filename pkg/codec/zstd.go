// pkg/codec/zstd.go
package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// MethodZstd identifies the zstd codec.
const MethodZstd byte = 0x90

// Shared encoder/decoder; EncodeAll/DecodeAll are safe for concurrent use.
var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

func init() {
	Register(MethodZstd, "zstd", func() Codec { return zstdCodec{} })
}

type zstdCodec struct{}

func (zstdCodec) Name() string     { return "zstd" }
func (zstdCodec) MethodByte() byte { return MethodZstd }

func (zstdCodec) MaxCompressedSize(n int) int {
	// Frame header/footer plus per-block overhead for incompressible input.
	return n + n>>8 + 64
}

func (zstdCodec) Compress(dst, src []byte) (int, error) {
	out := zstdEncoder.EncodeAll(src, nil)
	if len(out) > len(dst) {
		return 0, ErrShortBuffer
	}
	return copy(dst, out), nil
}

func (zstdCodec) Decompress(dst, src []byte) error {
	out, err := zstdDecoder.DecodeAll(src, dst[:0])
	if err != nil {
		return fmt.Errorf("zstd decode: %w", err)
	}
	if len(out) != len(dst) {
		return ErrSizeMismatch
	}
	return nil
}
