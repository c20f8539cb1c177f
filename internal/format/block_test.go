// internal/format/block_test.go
package format

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestStreamRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteHeader(&buf, 1<<20); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}

	blocks := []struct {
		method   byte
		origSize uint32
		payload  []byte
	}{
		{0x96, 4096, []byte("first compressed payload")},
		{0x90, 100, []byte{}},
		{0x82, 1 << 20, bytes.Repeat([]byte{0xaa}, 512)},
	}
	for _, b := range blocks {
		if err := WriteBlock(&buf, b.method, b.origSize, b.payload); err != nil {
			t.Fatalf("WriteBlock: %v", err)
		}
	}
	if err := WriteTrailer(&buf); err != nil {
		t.Fatalf("WriteTrailer: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	blockSize, err := ReadHeader(r)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if blockSize != 1<<20 {
		t.Errorf("block size %d, want %d", blockSize, 1<<20)
	}

	for i, want := range blocks {
		got, err := ReadBlock(r)
		if err != nil {
			t.Fatalf("ReadBlock %d: %v", i, err)
		}
		if got.Method != want.method {
			t.Errorf("block %d: method %#x, want %#x", i, got.Method, want.method)
		}
		if got.OrigSize != want.origSize {
			t.Errorf("block %d: orig size %d, want %d", i, got.OrigSize, want.origSize)
		}
		if !bytes.Equal(got.Payload, want.payload) {
			t.Errorf("block %d: payload mismatch", i)
		}
	}

	if _, err := ReadBlock(r); err != io.EOF {
		t.Errorf("after trailer: got %v, want io.EOF", err)
	}
}

func TestReadHeaderBadMagic(t *testing.T) {
	data := []byte("NOTQFLAT\x00\x00\x10\x00")
	if _, err := ReadHeader(bytes.NewReader(data)); !errors.Is(err, ErrBadMagic) {
		t.Errorf("got %v, want %v", err, ErrBadMagic)
	}
}

func TestReadHeaderTruncated(t *testing.T) {
	if _, err := ReadHeader(bytes.NewReader([]byte(Magic[:4]))); err == nil {
		t.Error("truncated header should fail")
	}
}

func TestReadBlockChecksum(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("payload protected by checksum")
	if err := WriteBlock(&buf, 0x96, 64, payload); err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}

	// Flip one payload byte.
	corrupted := buf.Bytes()
	corrupted[BlockHeaderSize] ^= 0x01

	if _, err := ReadBlock(bytes.NewReader(corrupted)); !errors.Is(err, ErrChecksum) {
		t.Errorf("got %v, want %v", err, ErrChecksum)
	}
}

func TestReadBlockTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBlock(&buf, 0x96, 64, []byte("payload that will be cut short")); err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}

	full := buf.Bytes()
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"partial header", full[:BlockHeaderSize/2]},
		{"partial payload", full[:BlockHeaderSize+4]},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadBlock(bytes.NewReader(tc.data)); !errors.Is(err, ErrTruncated) {
				t.Errorf("got %v, want %v", err, ErrTruncated)
			}
		})
	}
}

func TestReadBlockOversizedPayload(t *testing.T) {
	var hdr [BlockHeaderSize]byte
	hdr[0] = 0x96
	// comp_size just past the limit
	hdr[2] = 0x01
	hdr[3] = 0x00
	hdr[4] = 0x00
	hdr[5] = 0x40 // 1<<30 + 1 little-endian

	if _, err := ReadBlock(bytes.NewReader(hdr[:])); err == nil {
		t.Error("oversized payload should fail before allocation")
	}
}

func TestReadBlockCorruptEndMarker(t *testing.T) {
	var hdr [BlockHeaderSize]byte
	hdr[0] = EndMethod
	hdr[2] = 0x10 // non-zero comp_size on an end marker

	if _, err := ReadBlock(bytes.NewReader(hdr[:])); err == nil || err == io.EOF {
		t.Errorf("corrupt end marker: got %v, want error", err)
	}
}
