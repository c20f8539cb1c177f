// pkg/qflate/pool.go
package qflate

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/qflate/qflate/pkg/engine"
)

// JobPool manages a fixed set of pre-initialized hardware job resources
// shared by every codec instance in the process. Acquire and release are
// lock-free: each slot is guarded by a single atomic flag, with no queue and
// no fairness between contending goroutines.
type JobPool struct {
	acc      engine.Accelerator
	capacity uint32
	ready    bool
	jobs     []engine.Job
	locks    []atomic.Bool

	// inited counts slots that were actually initialized, so Close never
	// finalizes a slot that initialization never reached.
	inited uint32
}

// NewJobPool builds a pool over the given accelerator. Construction never
// fails: a nil accelerator, a discovery error, zero capacity or any slot
// initialization failure all leave the pool permanently not ready, which
// downgrades every caller to the software path.
func NewJobPool(acc engine.Accelerator) *JobPool {
	p := &JobPool{acc: acc}
	if acc == nil {
		Log.Debug("no hardware accelerator registered, using software deflate only")
		return p
	}
	n, err := acc.QueueCapacity()
	if err != nil {
		Log.WithError(err).Warn("hardware deflate disabled: device discovery failed")
		return p
	}
	if n <= 0 {
		Log.Warn("hardware deflate disabled: discovery reported no work-queue capacity")
		return p
	}
	p.capacity = uint32(n)
	p.jobs = make([]engine.Job, n)
	p.locks = make([]atomic.Bool, n)
	for i := range p.jobs {
		if st := acc.Init(&p.jobs[i]); st != engine.StatusOK {
			Log.WithField("status", st.String()).Warn("hardware deflate disabled: job initialization failed")
			return p
		}
		p.inited++
	}
	p.ready = true
	Log.WithField("capacity", n).Debug("hardware deflate job pool ready")
	return p
}

// Ready reports whether construction fully succeeded. A pool that is not
// ready fails every Acquire and ignores every Release.
func (p *JobPool) Ready() bool { return p.ready }

// Capacity returns the discovered slot count, even when the pool is not
// ready.
func (p *JobPool) Capacity() int { return int(p.capacity) }

// Acquire locks a random free slot and returns its handle and job resource.
// Probing is retry-bounded rather than queued: after capacity+1 failed
// probes it returns ErrSlotExhausted instead of blocking, trading worst-case
// fairness for O(1) expected latency.
//
// The handle is capacity-index: never zero and never equal to the raw slot
// index, so it cannot collide with a "no job" sentinel.
func (p *JobPool) Acquire() (uint32, *engine.Job, error) {
	if !p.ready {
		return 0, nil, ErrPoolUnavailable
	}
	index := uint32(rand.Intn(int(p.capacity)))
	for retry := uint32(0); !p.tryLock(index); {
		index = uint32(rand.Intn(int(p.capacity)))
		retry++
		if retry > p.capacity {
			return 0, nil, ErrSlotExhausted
		}
	}
	return p.capacity - index, &p.jobs[index], nil
}

// Release unlocks the slot the handle maps to. It is a no-op on a pool that
// never became ready.
func (p *JobPool) Release(handle uint32) {
	if p.ready {
		p.unlock(p.capacity - handle)
	}
}

// Close finalizes every slot that was initialized, waiting for held slots to
// be released first. The pool is permanently not ready afterwards. Callers
// must have flushed all asynchronous work before closing the pool.
func (p *JobPool) Close() {
	for i := uint32(0); i < p.inited; i++ {
		for !p.tryLock(i) {
			pause()
		}
		p.acc.Fini(&p.jobs[i])
		p.unlock(i)
	}
	p.ready = false
}

func (p *JobPool) tryLock(index uint32) bool {
	return p.locks[index].CompareAndSwap(false, true)
}

func (p *JobPool) unlock(index uint32) {
	p.locks[index].Store(false)
}

// pause hints the scheduler between completion polls. Hardware jobs complete
// in microseconds, so a blocking wait would cost more than it saves.
func pause() { runtime.Gosched() }

var (
	defaultPoolOnce sync.Once
	defaultPool     *JobPool
)

// DefaultPool returns the process-wide pool, building it on first use from
// the accelerator registered with engine.RegisterAccelerator. All codecs
// constructed without WithPool share it.
func DefaultPool() *JobPool {
	defaultPoolOnce.Do(func() {
		acc, _ := engine.RegisteredAccelerator()
		defaultPool = NewJobPool(acc)
	})
	return defaultPool
}
