// pkg/compress/pools.go
package compress

import "sync"

// Block read buffers are reused across blocks so the reader does not
// allocate once per block.
var blockBufferPool = sync.Pool{}

// getBlockBuffer returns a buffer of the given size from the pool
func getBlockBuffer(size int) []byte {
	if v := blockBufferPool.Get(); v != nil {
		buf := *(v.(*[]byte))
		if cap(buf) >= size {
			return buf[:size]
		}
	}
	return make([]byte, size)
}

// putBlockBuffer returns a buffer to the pool
func putBlockBuffer(buf []byte) {
	buf = buf[:cap(buf)]
	blockBufferPool.Put(&buf)
}
