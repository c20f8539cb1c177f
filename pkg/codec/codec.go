// pkg/codec/codec.go

// Package codec defines the block codec interface and a process-wide
// registry keyed by the stable one-byte method identifier stored in stream
// frames.
package codec

import (
	"fmt"
	"sort"
	"sync"
)

// Codec compresses and decompresses self-contained blocks.
//
// Instances may carry per-stream state and are not safe for concurrent use;
// the registry hands out a fresh instance per lookup. Codecs holding
// resources additionally implement io.Closer.
type Codec interface {
	// Name is the stable textual identifier.
	Name() string

	// MethodByte is the identifier written into block frames.
	MethodByte() byte

	// MaxCompressedSize bounds the compressed size of n input bytes. Callers
	// size Compress destinations with it; every codec guarantees its output
	// fits within the bound.
	MaxCompressedSize(n int) int

	// Compress encodes src into dst and returns the encoded size.
	Compress(dst, src []byte) (int, error)

	// Decompress decodes src into dst. len(dst) must be the original size.
	Decompress(dst, src []byte) error
}

// Deferred is implemented by codecs that can postpone decompression work.
// Destinations passed to DecompressDeferred are valid only after Flush
// returns; Flush resolves every outstanding deferred call at once.
type Deferred interface {
	DecompressDeferred(dst, src []byte) error
	Flush() error
}

// Factory builds a fresh codec instance.
type Factory func() Codec

// Info describes one registry entry.
type Info struct {
	Method byte
	Name   string
}

var registry = struct {
	mu       sync.RWMutex
	byMethod map[byte]Factory
	byName   map[string]Factory
	infos    []Info
}{
	byMethod: make(map[byte]Factory),
	byName:   make(map[string]Factory),
}

// Register adds a codec factory under a method byte and name. It panics on
// a nil factory or a duplicate method/name, like database/sql driver
// registration: registering is an init-time act and duplicates are bugs.
func Register(method byte, name string, f Factory) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if f == nil {
		panic("codec: Register with nil factory")
	}
	if _, dup := registry.byMethod[method]; dup {
		panic(fmt.Sprintf("codec: method 0x%02x registered twice", method))
	}
	if _, dup := registry.byName[name]; dup {
		panic(fmt.Sprintf("codec: name %q registered twice", name))
	}
	registry.byMethod[method] = f
	registry.byName[name] = f
	registry.infos = append(registry.infos, Info{Method: method, Name: name})
}

// ByMethod builds a fresh codec for the given method byte.
func ByMethod(method byte) (Codec, error) {
	registry.mu.RLock()
	f, ok := registry.byMethod[method]
	registry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownMethod, method)
	}
	return f(), nil
}

// ByName builds a fresh codec for the given name.
func ByName(name string) (Codec, error) {
	registry.mu.RLock()
	f, ok := registry.byName[name]
	registry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
	return f(), nil
}

// Registered lists every registry entry, sorted by method byte.
func Registered() []Info {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	infos := make([]Info, len(registry.infos))
	copy(infos, registry.infos)
	sort.Slice(infos, func(i, j int) bool { return infos[i].Method < infos[j].Method })
	return infos
}

// Names lists every registered codec name, sorted by method byte.
func Names() []string {
	infos := Registered()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}
