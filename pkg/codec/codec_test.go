// pkg/codec/codec_test.go
package codec_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/qflate/qflate/pkg/codec"
)

// testData generates pseudo-random but deterministic data.
func testData(size int) []byte {
	data := make([]byte, size)
	seed := uint32(123456789)
	for i := range data {
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		data[i] = byte(seed)
	}
	return data
}

func TestRegistered(t *testing.T) {
	want := map[string]byte{
		"none":   0x02,
		"lz4":    0x82,
		"zstd":   0x90,
		"xz":     0x93,
		"qflate": 0x96,
	}

	infos := codec.Registered()
	if len(infos) != len(want) {
		t.Fatalf("registered %d codecs, want %d: %v", len(infos), len(want), infos)
	}

	for _, info := range infos {
		method, ok := want[info.Name]
		if !ok {
			t.Errorf("unexpected codec %q", info.Name)
			continue
		}
		if info.Method != method {
			t.Errorf("codec %q has method %#x, want %#x", info.Name, info.Method, method)
		}
	}

	// Sorted by method byte.
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Method >= infos[i].Method {
			t.Errorf("infos not sorted: %#x before %#x", infos[i-1].Method, infos[i].Method)
		}
	}
}

func TestNames(t *testing.T) {
	names := codec.Names()
	if len(names) == 0 {
		t.Fatal("no codec names")
	}
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("name %q listed twice", n)
		}
		seen[n] = true
	}
	if !seen["qflate"] {
		t.Error("qflate not listed")
	}
}

func TestLookup(t *testing.T) {
	c, err := codec.ByName("zstd")
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}
	if c.MethodByte() != 0x90 {
		t.Errorf("method %#x, want 0x90", c.MethodByte())
	}

	c2, err := codec.ByMethod(0x90)
	if err != nil {
		t.Fatalf("ByMethod: %v", err)
	}
	if c2.Name() != "zstd" {
		t.Errorf("name %q, want zstd", c2.Name())
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := codec.ByMethod(0x7f); !errors.Is(err, codec.ErrUnknownMethod) {
		t.Errorf("ByMethod: got %v, want %v", err, codec.ErrUnknownMethod)
	}
	if _, err := codec.ByName("brotli"); !errors.Is(err, codec.ErrUnknownMethod) {
		t.Errorf("ByName: got %v, want %v", err, codec.ErrUnknownMethod)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	codec.Register(0x96, "qflate-dup", func() codec.Codec { return nil })
}

func TestRegisterNilFactoryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("nil factory registration should panic")
		}
	}()
	codec.Register(0x7e, "nil-factory", nil)
}

// TestRoundTripAllCodecs runs every registered codec over the same inputs and
// checks the compressed size bound along the way.
func TestRoundTripAllCodecs(t *testing.T) {
	inputs := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"text", bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog\n"), 64)},
		{"random", testData(64 * 1024)},
		{"zeros", make([]byte, 128*1024)},
	}

	for _, info := range codec.Registered() {
		t.Run(info.Name, func(t *testing.T) {
			c, err := codec.ByMethod(info.Method)
			if err != nil {
				t.Fatalf("ByMethod: %v", err)
			}
			defer closeCodec(c)

			for _, in := range inputs {
				bound := c.MaxCompressedSize(len(in.data))
				dst := make([]byte, bound)
				n, err := c.Compress(dst, in.data)
				if err != nil {
					t.Fatalf("%s: Compress: %v", in.name, err)
				}
				if n > bound {
					t.Fatalf("%s: compressed to %d, bound %d", in.name, n, bound)
				}

				out := make([]byte, len(in.data))
				if err := c.Decompress(out, dst[:n]); err != nil {
					t.Fatalf("%s: Decompress: %v", in.name, err)
				}
				if !bytes.Equal(out, in.data) {
					t.Errorf("%s: round trip corrupted data", in.name)
				}
			}
		})
	}
}

// TestDeferredCodecs verifies the deferred decompression contract for codecs
// that support it.
func TestDeferredCodecs(t *testing.T) {
	c, err := codec.ByName("qflate")
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}
	defer closeCodec(c)

	d, ok := c.(codec.Deferred)
	if !ok {
		t.Fatal("qflate should implement Deferred")
	}

	blocks := [][]byte{
		testData(4 * 1024),
		bytes.Repeat([]byte("block "), 2048),
	}

	payloads := make([][]byte, len(blocks))
	for i, data := range blocks {
		dst := make([]byte, c.MaxCompressedSize(len(data)))
		n, err := c.Compress(dst, data)
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}
		payloads[i] = dst[:n]
	}

	dsts := make([][]byte, len(blocks))
	for i, payload := range payloads {
		dsts[i] = make([]byte, len(blocks[i]))
		if err := d.DecompressDeferred(dsts[i], payload); err != nil {
			t.Fatalf("DecompressDeferred: %v", err)
		}
	}
	if err := d.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	for i, dst := range dsts {
		if !bytes.Equal(dst, blocks[i]) {
			t.Errorf("block %d corrupted", i)
		}
	}
}

func TestNoneCodecIsIdentity(t *testing.T) {
	c, err := codec.ByName("none")
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}
	data := []byte("uncompressed passthrough")
	dst := make([]byte, c.MaxCompressedSize(len(data)))
	n, err := c.Compress(dst, data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if n != len(data) || !bytes.Equal(dst[:n], data) {
		t.Error("none codec must store bytes verbatim")
	}
}

func closeCodec(c codec.Codec) {
	if closer, ok := c.(io.Closer); ok {
		closer.Close()
	}
}
