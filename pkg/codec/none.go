// pkg/codec/none.go
package codec

// MethodNone identifies the pass-through codec.
const MethodNone byte = 0x02

func init() {
	Register(MethodNone, "none", func() Codec { return noneCodec{} })
}

// noneCodec stores blocks unmodified. Useful for incompressible data and as
// a baseline in benchmarks.
type noneCodec struct{}

func (noneCodec) Name() string              { return "none" }
func (noneCodec) MethodByte() byte          { return MethodNone }
func (noneCodec) MaxCompressedSize(n int) int { return n }

func (noneCodec) Compress(dst, src []byte) (int, error) {
	if len(dst) < len(src) {
		return 0, ErrShortBuffer
	}
	return copy(dst, src), nil
}

func (noneCodec) Decompress(dst, src []byte) error {
	if len(dst) != len(src) {
		return ErrSizeMismatch
	}
	copy(dst, src)
	return nil
}
