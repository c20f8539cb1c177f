// pkg/engine/status.go
package engine

import "fmt"

// Status is the fixed status-code space shared by every execution backend.
// Any status other than StatusOK is recoverable: callers fall back to another
// path or surface an error, they never treat it as fatal to the process.
type Status uint32

const (
	// StatusOK means the operation completed successfully.
	StatusOK Status = iota

	// StatusInProgress means a submitted job has not completed yet.
	StatusInProgress

	// StatusMoreOutput means the output buffer was too small.
	StatusMoreOutput

	// StatusBadDeflate means the input is not a valid deflate stream.
	StatusBadDeflate

	// StatusQueueFull means the device rejected the submission.
	StatusQueueFull

	// StatusNotInitialized means the job was not initialized with Init.
	StatusNotInitialized

	// StatusUnsupported means the job configuration is not supported,
	// for example a multi-chunk compress without FlagFirst|FlagLast.
	StatusUnsupported

	// StatusInternal means the backend failed for an unspecified reason.
	StatusInternal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInProgress:
		return "in progress"
	case StatusMoreOutput:
		return "output buffer too small"
	case StatusBadDeflate:
		return "invalid deflate data"
	case StatusQueueFull:
		return "device queue full"
	case StatusNotInitialized:
		return "job not initialized"
	case StatusUnsupported:
		return "unsupported job configuration"
	case StatusInternal:
		return "internal error"
	default:
		return fmt.Sprintf("status(%d)", uint32(s))
	}
}
