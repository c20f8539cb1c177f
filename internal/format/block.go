// internal/format/block.go

// Package format defines the on-disk framing for qflate streams: a magic
// header, a sequence of self-describing compressed blocks and an end-of-
// stream marker. Each block carries its codec method byte, sizes and a
// BLAKE3 checksum of the payload, so streams are verifiable without knowing
// the codec.
package format

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

const (
	// Magic identifies a qflate stream and its format version.
	Magic     = "QFLATE01"
	MagicSize = 8

	// HeaderSize is magic + default block size.
	HeaderSize = MagicSize + 4

	// BlockHeaderSize: method(1) + reserved(1) + comp_size(4) + orig_size(4)
	// + checksum(32).
	BlockHeaderSize = 42

	// EndMethod marks the end-of-stream frame. No codec may register it.
	EndMethod byte = 0x00

	// MaxPayload bounds a single block's compressed payload, so a corrupt
	// size field cannot trigger an enormous allocation.
	MaxPayload = 1 << 30
)

// Block is one framed compressed block.
type Block struct {
	Method   byte
	OrigSize uint32
	Payload  []byte
}

// WriteHeader writes the stream magic and the writer's default block size.
// The block size is a hint for readers sizing buffers; blocks state their
// own sizes.
func WriteHeader(w io.Writer, blockSize uint32) error {
	if _, err := w.Write([]byte(Magic)); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, blockSize); err != nil {
		return fmt.Errorf("write block size: %w", err)
	}
	return nil
}

// ReadHeader validates the stream magic and returns the default block size.
func ReadHeader(r io.Reader) (uint32, error) {
	magic := make([]byte, MagicSize)
	if _, err := io.ReadFull(r, magic); err != nil {
		return 0, fmt.Errorf("read magic: %w", err)
	}
	if string(magic) != Magic {
		return 0, ErrBadMagic
	}
	var blockSize uint32
	if err := binary.Read(r, binary.LittleEndian, &blockSize); err != nil {
		return 0, fmt.Errorf("read block size: %w", err)
	}
	return blockSize, nil
}

// WriteBlock frames one compressed payload.
func WriteBlock(w io.Writer, method byte, origSize uint32, payload []byte) error {
	var hdr [BlockHeaderSize]byte
	hdr[0] = method
	hdr[1] = 0 // reserved
	binary.LittleEndian.PutUint32(hdr[2:6], uint32(len(payload)))
	binary.LittleEndian.PutUint32(hdr[6:10], origSize)
	sum := blake3.Sum256(payload)
	copy(hdr[10:42], sum[:])
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("write block header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write block payload: %w", err)
	}
	return nil
}

// WriteTrailer writes the end-of-stream marker.
func WriteTrailer(w io.Writer) error {
	if err := WriteBlock(w, EndMethod, 0, nil); err != nil {
		return fmt.Errorf("write trailer: %w", err)
	}
	return nil
}

// ReadBlock returns the next block, or io.EOF at the end-of-stream marker.
// A stream that ends without the marker yields ErrTruncated.
func ReadBlock(r io.Reader) (*Block, error) {
	var hdr [BlockHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrTruncated
		}
		return nil, fmt.Errorf("read block header: %w", err)
	}

	method := hdr[0]
	compSize := binary.LittleEndian.Uint32(hdr[2:6])
	origSize := binary.LittleEndian.Uint32(hdr[6:10])

	if method == EndMethod {
		if compSize != 0 || origSize != 0 {
			return nil, fmt.Errorf("corrupt end marker")
		}
		return nil, io.EOF
	}
	if compSize > MaxPayload {
		return nil, fmt.Errorf("block payload size %d exceeds limit", compSize)
	}

	payload := make([]byte, compSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrTruncated
		}
		return nil, fmt.Errorf("read block payload: %w", err)
	}

	sum := blake3.Sum256(payload)
	if !bytes.Equal(sum[:], hdr[10:42]) {
		return nil, ErrChecksum
	}

	return &Block{Method: method, OrigSize: origSize, Payload: payload}, nil
}
