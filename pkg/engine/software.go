// pkg/engine/software.go
package engine

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
)

// NewSoftware returns the software execution backend. It runs every job on
// the CPU and produces/accepts the same single-block deflate stream as a
// hardware accelerator, so data compressed by one backend always decompresses
// on the other.
func NewSoftware() Backend {
	return &software{
		jobs: make(map[*Job]Status),
	}
}

type software struct {
	mu sync.Mutex
	// jobs tracks initialized jobs and, for submitted ones, their final
	// status so Check can report it.
	jobs map[*Job]Status
}

func (s *software) Name() string { return "software" }

func (s *software) Init(j *Job) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j] = StatusOK
	return StatusOK
}

func (s *software) Fini(j *Job) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[j]; !ok {
		return StatusNotInitialized
	}
	delete(s.jobs, j)
	return StatusOK
}

func (s *software) Execute(j *Job) Status {
	if !s.initialized(j) {
		return StatusNotInitialized
	}
	return run(j)
}

// Submit completes the job before returning; software execution has no
// device queue to defer to. Check reports the recorded outcome.
func (s *software) Submit(j *Job) Status {
	if !s.initialized(j) {
		return StatusNotInitialized
	}
	st := run(j)
	s.mu.Lock()
	s.jobs[j] = st
	s.mu.Unlock()
	return StatusOK
}

func (s *software) Check(j *Job) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.jobs[j]
	if !ok {
		return StatusNotInitialized
	}
	return st
}

func (s *software) initialized(j *Job) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[j]
	return ok
}

// run executes a job on the CPU.
func run(j *Job) Status {
	switch j.Op {
	case OpCompress:
		return deflateBlock(j)
	case OpDecompress:
		return inflateBlock(j)
	default:
		return StatusUnsupported
	}
}

func deflateBlock(j *Job) Status {
	// Only one-shot blocks are supported; streaming chunk sequencing is a
	// hardware-side feature the codec never uses.
	if j.Flags&FlagFirst == 0 || j.Flags&FlagLast == 0 {
		return StatusUnsupported
	}
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flateLevel(j.Level))
	if err != nil {
		return StatusInternal
	}
	if _, err := w.Write(j.In); err != nil {
		return StatusInternal
	}
	if err := w.Close(); err != nil {
		return StatusInternal
	}
	if buf.Len() > len(j.Out) {
		return StatusMoreOutput
	}
	j.TotalOut = uint32(copy(j.Out, buf.Bytes()))
	return StatusOK
}

func inflateBlock(j *Job) Status {
	if j.Flags&FlagFirst == 0 || j.Flags&FlagLast == 0 {
		return StatusUnsupported
	}
	r := flate.NewReader(bytes.NewReader(j.In))
	defer r.Close()

	n, err := io.ReadFull(r, j.Out)
	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		// The stream decoded to fewer bytes than the buffer holds.
		j.TotalOut = uint32(n)
		return StatusOK
	case err != nil:
		return StatusBadDeflate
	}

	// Out is full; any residual decoded data means it was too small.
	var one [1]byte
	if m, _ := r.Read(one[:]); m > 0 {
		return StatusMoreOutput
	}
	j.TotalOut = uint32(n)
	return StatusOK
}

// flateLevel maps a job level to a flate compression level. FlagDynamicHuffman
// needs no mapping: flate chooses dynamic Huffman tables on its own.
func flateLevel(l Level) int {
	if l >= 1 && l <= 9 {
		return int(l)
	}
	return flate.DefaultCompression
}
