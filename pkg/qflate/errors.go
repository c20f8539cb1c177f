// pkg/qflate/errors.go
package qflate

import (
	"errors"
	"fmt"

	"github.com/qflate/qflate/pkg/engine"
)

var (
	// ErrPoolUnavailable is returned by JobPool.Acquire when device discovery
	// failed or reported zero capacity, so the pool never became ready.
	ErrPoolUnavailable = errors.New("hardware job pool unavailable")

	// ErrSlotExhausted is returned by JobPool.Acquire when every slot probe
	// within the retry bound found the slot held.
	ErrSlotExhausted = errors.New("hardware job pool exhausted")
)

// HardwareError reports a non-success status from the hardware backend. The
// codec always recovers it internally by retrying the same operation on the
// software path; it never reaches callers.
type HardwareError struct {
	Stage  string // "submit", "execute" or "poll"
	Status engine.Status
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("hardware %s failed: %s", e.Stage, e.Status)
}

// SoftwareError reports a non-success status from the software path. No
// further fallback exists, so this is the only error class callers of the
// codec observe.
type SoftwareError struct {
	Op     string // "init", "compress" or "decompress"
	Status engine.Status
}

func (e *SoftwareError) Error() string {
	return fmt.Sprintf("software %s failed: %s", e.Op, e.Status)
}
