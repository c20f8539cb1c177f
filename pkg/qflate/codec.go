// pkg/qflate/codec.go

// Package qflate implements a deflate block codec that transparently offloads
// work to a hardware accelerator when one is present and falls back to an
// equivalent software path otherwise. Callers never observe which path ran:
// both produce and accept the same single-block deflate stream.
//
// A Codec is not safe for concurrent use; create one per goroutine or stream.
// All codecs in the process may share one JobPool, whose slots are the only
// cross-goroutine shared state.
package qflate

const (
	// MethodByte is the stable one-byte identifier the codec registers under.
	MethodByte byte = 0x96

	// MethodName is the codec's textual name.
	MethodName = "qflate"
)

// Codec is the public compression codec. It owns one software engine, one
// hardware engine and a decompression-mode flag, and implements the
// hardware/software fallback decision tree for compress, decompress and
// flush.
type Codec struct {
	mode Mode
	pool *JobPool
	sw   *softwareEngine
	hw   *hardwareEngine
	leak LeakPolicy
}

// New builds a codec. Without options it shares the process-wide DefaultPool
// and reclaims leaked asynchronous jobs at Close with a warning.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	if c.pool == nil {
		c.pool = DefaultPool()
	}
	c.sw = newSoftwareEngine()
	c.hw = newHardwareEngine(c.pool, c.sw)
	return c
}

// Name returns the codec's registry name.
func (c *Codec) Name() string { return MethodName }

// MethodByte returns the codec's one-byte method identifier.
func (c *Codec) MethodByte() byte { return MethodByte }

// MaxCompressedSize returns the worst-case compressed size for n input
// bytes. Both execution paths stay within this bound for any input; size
// destination buffers for Compress with it.
func (c *Codec) MaxCompressedSize(n int) int {
	// Aligned with zlib's deflateBound.
	return n + n>>12 + n>>14 + n>>25 + 13
}

// Compress deflates src into dst and returns the compressed size. dst should
// hold at least MaxCompressedSize(len(src)) bytes. Hardware failures of any
// kind are recovered by retrying the identical call on software; only a
// software failure surfaces.
func (c *Codec) Compress(dst, src []byte) (int, error) {
	if c.pool.Ready() {
		if n, err := c.hw.Compress(dst, src); err == nil {
			return n, nil
		}
	}
	return c.sw.Compress(dst, src)
}

// Decompress inflates src into dst. len(dst) must equal the original size.
// In ModeAsynchronous the destination must not be read until Flush returns.
func (c *Codec) Decompress(dst, src []byte) error {
	switch c.mode {
	case ModeAsynchronous:
		if c.pool.Ready() {
			if _, err := c.hw.DecompressAsync(dst, src); err == nil {
				return nil
			}
		}
		// Submission failed or no hardware: this one call degrades to a
		// blocking software decompress; previously submitted calls stay
		// deferred until Flush.
		return c.sw.Decompress(dst, src)
	case ModeSoftwareFallback:
		return c.sw.Decompress(dst, src)
	default: // ModeSynchronous
		if c.pool.Ready() {
			if _, err := c.hw.DecompressSync(dst, src); err == nil {
				return nil
			}
		}
		return c.sw.Decompress(dst, src)
	}
}

// SetDecompressMode switches how subsequent Decompress calls execute.
func (c *Codec) SetDecompressMode(m Mode) { c.mode = m }

// DecompressMode returns the current decompression mode.
func (c *Codec) DecompressMode() Mode { return c.mode }

// Flush resolves every outstanding asynchronous decompress job and resets
// the mode to ModeSynchronous. It is the single synchronization barrier: no
// destination buffer written by an asynchronous decompress may be read
// before the matching Flush returns. Flushing with nothing pending is a
// no-op.
func (c *Codec) Flush() error {
	var err error
	if c.pool.Ready() {
		err = c.hw.Flush()
	}
	c.mode = ModeSynchronous
	return err
}

// DecompressDeferred switches to asynchronous mode and submits one
// decompress. It lets frame readers treat deferred decompression
// generically; the mode stays asynchronous until the next Flush.
func (c *Codec) DecompressDeferred(dst, src []byte) error {
	c.mode = ModeAsynchronous
	return c.Decompress(dst, src)
}

// Close releases the codec's resources. Pending asynchronous jobs are
// handled per the configured LeakPolicy; well-behaved callers Flush first.
func (c *Codec) Close() error {
	c.hw.Close(c.leak)
	c.sw.Close()
	return nil
}
