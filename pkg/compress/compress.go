// pkg/compress/compress.go
package compress

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/qflate/qflate/internal/format"
	"github.com/qflate/qflate/pkg/codec"
)

type task struct {
	index int
	data  []byte
}

type compressed struct {
	index    int
	origSize int
	payload  []byte
}

// Compress splits the input file into fixed-size blocks, compresses them in
// parallel with the configured codec and writes an ordered qflate stream.
// Each worker owns a private codec instance; qflate instances contend on the
// shared hardware job pool and fall back to software individually.
func Compress(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// Resolve the method byte up front so an unknown method fails before any
	// output is created.
	probe, err := codec.ByName(opts.Method)
	if err != nil {
		return nil, err
	}
	methodByte := probe.MethodByte()
	closeCodec(probe)

	in, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
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
	result := &Result{Method: opts.Method, OriginalSize: uint64(info.Size())}

	if err := format.WriteHeader(out, uint32(opts.BlockSize)); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(context.Background())
	tasks := make(chan task, opts.MaxThreads)
	results := make(chan compressed, opts.MaxThreads)

	// Reader: split the input into blocks.
	g.Go(func() error {
		defer close(tasks)
		for index := 0; ; index++ {
			buf := getBlockBuffer(opts.BlockSize)
			n, err := io.ReadFull(in, buf)
			if n > 0 {
				select {
				case tasks <- task{index: index, data: buf[:n]}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
		}
	})

	// Workers: compress blocks, one codec instance each.
	var workers sync.WaitGroup
	for i := 0; i < opts.MaxThreads; i++ {
		workers.Add(1)
		g.Go(func() error {
			defer workers.Done()
			c, err := codec.ByName(opts.Method)
			if err != nil {
				return err
			}
			defer closeCodec(c)
			for t := range tasks {
				dst := make([]byte, c.MaxCompressedSize(len(t.data)))
				n, err := c.Compress(dst, t.data)
				if err != nil {
					return fmt.Errorf("compress block %d: %w", t.index, err)
				}
				block := compressed{index: t.index, origSize: len(t.data), payload: dst[:n]}
				putBlockBuffer(t.data)
				select {
				case results <- block:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		workers.Wait()
		close(results)
		return nil
	})

	// Writer: restore input order and frame the blocks.
	g.Go(func() error {
		next := 0
		held := make(map[int]compressed)
		var done int64
		for block := range results {
			held[block.index] = block
			for {
				b, ok := held[next]
				if !ok {
					break
				}
				delete(held, next)
				if err := format.WriteBlock(out, methodByte, uint32(b.origSize), b.payload); err != nil {
					return err
				}
				result.Blocks++
				done += int64(b.origSize)
				if progressCb != nil {
					progressCb(ProgressEvent{Type: EventAdvance, Current: done, Total: info.Size()})
				}
				next++
			}
		}
		if len(held) > 0 {
			return fmt.Errorf("block %d never arrived", next)
		}
		return format.WriteTrailer(out)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if fi, err := out.Stat(); err == nil {
		result.CompressedSize = uint64(fi.Size())
	}
	result.Duration = time.Since(start)

	if progressCb != nil {
		progressCb(ProgressEvent{Type: EventComplete, Current: info.Size(), Total: info.Size()})
	}
	return result, nil
}

// closeCodec releases codec resources for codecs that hold any.
func closeCodec(c codec.Codec) {
	if closer, ok := c.(io.Closer); ok {
		closer.Close()
	}
}
