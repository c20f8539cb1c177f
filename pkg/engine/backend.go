// pkg/engine/backend.go

// Package engine models the job-execution layer underneath the qflate codec:
// job resources, the fixed status-code space, and the backends that execute
// jobs. The software backend is always available and produces the shared
// deflate-compatible stream; a hardware accelerator can be plugged in
// process-wide with RegisterAccelerator.
package engine

import "sync"

// Backend executes compress/decompress jobs.
//
// Execute runs a job synchronously. Submit starts a job without waiting;
// Check polls it and returns StatusInProgress until the job leaves the
// device, then its final status. Init must be called once before a job is
// used and Fini once when it is retired.
//
// Implementations must be safe for concurrent use with distinct jobs. A
// single job must not be operated on by more than one goroutine at a time.
type Backend interface {
	Name() string
	Init(j *Job) Status
	Execute(j *Job) Status
	Submit(j *Job) Status
	Check(j *Job) Status
	Fini(j *Job) Status
}

// Accelerator is a hardware execution backend together with its device
// discovery. QueueCapacity reports the total work-queue depth across all
// discovered devices; the job pool sizes itself with it. A discovery error
// is non-fatal and simply disables the hardware path.
type Accelerator interface {
	Backend
	QueueCapacity() (int, error)
}

var (
	accelMu sync.RWMutex
	accel   Accelerator
)

// RegisterAccelerator installs the process-wide hardware backend. Call it
// before the first codec is constructed; the shared job pool is built once,
// on first use, from whatever is registered at that point.
func RegisterAccelerator(a Accelerator) {
	accelMu.Lock()
	accel = a
	accelMu.Unlock()
}

// RegisteredAccelerator returns the installed hardware backend, if any.
func RegisteredAccelerator() (Accelerator, bool) {
	accelMu.RLock()
	defer accelMu.RUnlock()
	return accel, accel != nil
}
