// pkg/engine/enginetest/accelerator.go

// Package enginetest provides a software-simulated hardware accelerator so
// the hardware execution paths can be exercised without a device. The
// simulator produces the same deflate stream as the software backend and
// supports failure injection at discovery, init, submit and completion time.
package enginetest

import (
	"sync"

	"github.com/qflate/qflate/pkg/engine"
)

// Accelerator simulates a hardware deflate device. The zero value is usable;
// configure the exported fields before handing it to a job pool. Completion
// is observed by polling, like real hardware: a submitted job stays
// StatusInProgress for Latency Check calls before reporting its outcome.
type Accelerator struct {
	// Capacity is the total work-queue depth reported by discovery.
	Capacity int

	// CapacityErr, when set, makes discovery fail.
	CapacityErr error

	// Latency is how many Check polls a submitted job stays in progress.
	Latency int

	// FailInit, if non-nil, is consulted with the 1-based init ordinal and
	// fails that initialization when it returns true.
	FailInit func(n int) bool

	// FailSubmit, if non-nil, rejects submissions for which it returns true.
	FailSubmit func(j *engine.Job) bool

	// FailExecute, if non-nil, makes matching jobs complete with an error
	// (synchronous executes fail immediately; submitted jobs fail once
	// polled to completion, without touching the destination buffer).
	FailExecute func(j *engine.Job) bool

	mu       sync.Mutex
	sw       engine.Backend
	inits    int
	inflight map[*engine.Job]*flight
}

type flight struct {
	remaining int
	status    engine.Status
}

var _ engine.Accelerator = (*Accelerator)(nil)

func (a *Accelerator) Name() string { return "simulated" }

// QueueCapacity implements device discovery.
func (a *Accelerator) QueueCapacity() (int, error) {
	if a.CapacityErr != nil {
		return 0, a.CapacityErr
	}
	return a.Capacity, nil
}

func (a *Accelerator) Init(j *engine.Job) engine.Status {
	a.mu.Lock()
	a.inits++
	n := a.inits
	a.mu.Unlock()
	if a.FailInit != nil && a.FailInit(n) {
		return engine.StatusInternal
	}
	return a.backend().Init(j)
}

func (a *Accelerator) Fini(j *engine.Job) engine.Status {
	return a.backend().Fini(j)
}

func (a *Accelerator) Execute(j *engine.Job) engine.Status {
	if a.FailExecute != nil && a.FailExecute(j) {
		return engine.StatusInternal
	}
	return a.backend().Execute(j)
}

// Submit performs the work eagerly but withholds the outcome until the job
// has been polled Latency times, which is how the asynchronous protocol sees
// a real device.
func (a *Accelerator) Submit(j *engine.Job) engine.Status {
	if a.FailSubmit != nil && a.FailSubmit(j) {
		return engine.StatusQueueFull
	}
	st := engine.StatusInternal
	if a.FailExecute == nil || !a.FailExecute(j) {
		st = a.backend().Execute(j)
	}
	a.mu.Lock()
	if a.inflight == nil {
		a.inflight = make(map[*engine.Job]*flight)
	}
	a.inflight[j] = &flight{remaining: a.Latency, status: st}
	a.mu.Unlock()
	return engine.StatusOK
}

func (a *Accelerator) Check(j *engine.Job) engine.Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, ok := a.inflight[j]
	if !ok {
		return engine.StatusNotInitialized
	}
	if f.remaining > 0 {
		f.remaining--
		return engine.StatusInProgress
	}
	delete(a.inflight, j)
	return f.status
}

func (a *Accelerator) backend() engine.Backend {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sw == nil {
		a.sw = engine.NewSoftware()
	}
	return a.sw
}
