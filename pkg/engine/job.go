// pkg/engine/job.go
package engine

// Op selects the operation a job performs.
type Op uint8

const (
	// OpCompress deflates Job.In into Job.Out.
	OpCompress Op = iota + 1

	// OpDecompress inflates Job.In into Job.Out.
	OpDecompress
)

// Flags is a bitmask of per-job execution flags.
type Flags uint16

const (
	// FlagFirst marks the job's input as the first chunk of a stream.
	FlagFirst Flags = 1 << iota

	// FlagLast marks the job's input as the last chunk of a stream.
	// Every block codec job sets FlagFirst|FlagLast: one self-contained block.
	FlagLast

	// FlagDynamicHuffman requests dynamic Huffman encoding for compression.
	FlagDynamicHuffman

	// FlagOmitVerify skips the post-compression verification pass. The block
	// codec trusts the downstream decompress+checksum to catch corruption.
	FlagOmitVerify
)

// Level is the compression effort level. LevelDefault lets the backend pick;
// values 1-9 map to increasing effort.
type Level int

// LevelDefault selects the backend's default compression level.
const LevelDefault Level = 0

// Job describes one compress or decompress operation: its buffers, flags and
// operation code. A Job is consumed by exactly one Backend at a time; callers
// configure the fields, hand the job to the backend and read TotalOut back on
// success.
type Job struct {
	Op    Op
	Flags Flags
	Level Level

	// In is the input buffer. The whole slice is consumed.
	In []byte

	// Out is the output buffer. len(Out) bounds how much the backend may
	// write; a backend that needs more room fails with StatusMoreOutput.
	Out []byte

	// TotalOut is set by the backend to the number of bytes written to Out.
	TotalOut uint32
}
