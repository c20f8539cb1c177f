// pkg/decompress/decompress.go
package decompress

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/qflate/qflate/internal/format"
	"github.com/qflate/qflate/pkg/codec"
)

// pendingBlock is one block awaiting its window flush. deferred is nil when
// the block was decompressed eagerly and its destination is already valid.
type pendingBlock struct {
	dst      []byte
	deferred codec.Deferred
}

// Decompress reads a qflate stream and writes the original bytes. Blocks are
// resolved through the codec registry; codecs that support deferred
// decompression get a window of blocks submitted asynchronously and resolved
// by a single flush, which is when their destination buffers become valid.
func Decompress(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	in, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if !opts.Overwrite {
		if _, err := os.Stat(opts.OutputPath); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrOutputExists, opts.OutputPath)
		}
	}
	if dir := filepath.Dir(opts.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	out, err := os.Create(opts.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if progressCb != nil {
		progressCb(ProgressEvent{Type: EventStart, Total: info.Size()})
	}

	start := time.Now()
	result := &Result{CompressedSize: uint64(info.Size())}

	cr := &countingReader{r: bufio.NewReader(in)}
	if _, err := format.ReadHeader(cr); err != nil {
		return nil, err
	}

	// One codec instance per method byte, reused across the stream. Closing
	// them at the end reclaims any resources a failed run left pending.
	codecs := make(map[byte]codec.Codec)
	defer func() {
		for _, c := range codecs {
			if closer, ok := c.(io.Closer); ok {
				closer.Close()
			}
		}
	}()

	window := make([]pendingBlock, 0, opts.Window)

	flushWindow := func() error {
		flushed := make(map[codec.Deferred]bool)
		for _, p := range window {
			if p.deferred != nil && !flushed[p.deferred] {
				if err := p.deferred.Flush(); err != nil {
					return err
				}
				flushed[p.deferred] = true
			}
		}
		for _, p := range window {
			if _, err := out.Write(p.dst); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			result.DecompressedSize += uint64(len(p.dst))
		}
		window = window[:0]
		return nil
	}

	for {
		blk, err := format.ReadBlock(cr)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		c, ok := codecs[blk.Method]
		if !ok {
			c, err = codec.ByMethod(blk.Method)
			if err != nil {
				return nil, err
			}
			codecs[blk.Method] = c
		}

		dst := make([]byte, blk.OrigSize)
		if d, ok := c.(codec.Deferred); ok {
			if err := d.DecompressDeferred(dst, blk.Payload); err != nil {
				return nil, fmt.Errorf("decompress block %d: %w", result.Blocks, err)
			}
			window = append(window, pendingBlock{dst: dst, deferred: d})
		} else {
			if err := c.Decompress(dst, blk.Payload); err != nil {
				return nil, fmt.Errorf("decompress block %d: %w", result.Blocks, err)
			}
			window = append(window, pendingBlock{dst: dst})
		}
		result.Blocks++

		if progressCb != nil {
			progressCb(ProgressEvent{Type: EventAdvance, Current: cr.n, Total: info.Size()})
		}
		if len(window) >= opts.Window {
			if err := flushWindow(); err != nil {
				return nil, err
			}
		}
	}
	if err := flushWindow(); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	if progressCb != nil {
		progressCb(ProgressEvent{Type: EventComplete, Current: info.Size(), Total: info.Size()})
	}
	return result, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
