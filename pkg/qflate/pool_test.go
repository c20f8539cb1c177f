// pkg/qflate/pool_test.go
package qflate_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/qflate/qflate/pkg/engine"
	"github.com/qflate/qflate/pkg/engine/enginetest"
	"github.com/qflate/qflate/pkg/qflate"
)

// mustAcquire retries Acquire until it succeeds. Probing is random and gives
// up after a bounded number of misses, so a single call may fail spuriously
// while free slots remain.
func mustAcquire(t *testing.T, p *qflate.JobPool) (uint32, *engine.Job) {
	t.Helper()
	for attempt := 0; attempt < 1000; attempt++ {
		handle, job, err := p.Acquire()
		if err == nil {
			return handle, job
		}
		if !errors.Is(err, qflate.ErrSlotExhausted) {
			t.Fatalf("Acquire: %v", err)
		}
	}
	t.Fatal("could not acquire a slot in 1000 attempts")
	return 0, nil
}

func TestJobPoolNilAccelerator(t *testing.T) {
	p := qflate.NewJobPool(nil)
	if p.Ready() {
		t.Fatal("pool with no accelerator should not be ready")
	}
	if _, _, err := p.Acquire(); !errors.Is(err, qflate.ErrPoolUnavailable) {
		t.Errorf("got %v, want %v", err, qflate.ErrPoolUnavailable)
	}
	p.Release(1) // must not panic
	p.Close()    // must not panic
}

func TestJobPoolDiscoveryFailure(t *testing.T) {
	acc := &enginetest.Accelerator{CapacityErr: errors.New("no devices")}
	p := qflate.NewJobPool(acc)
	if p.Ready() {
		t.Fatal("pool should not be ready after discovery failure")
	}
	if _, _, err := p.Acquire(); !errors.Is(err, qflate.ErrPoolUnavailable) {
		t.Errorf("got %v, want %v", err, qflate.ErrPoolUnavailable)
	}
}

func TestJobPoolZeroCapacity(t *testing.T) {
	p := qflate.NewJobPool(&enginetest.Accelerator{Capacity: 0})
	if p.Ready() {
		t.Fatal("pool should not be ready with zero capacity")
	}
}

func TestJobPoolInitFailure(t *testing.T) {
	acc := &enginetest.Accelerator{
		Capacity: 4,
		FailInit: func(n int) bool { return n == 3 },
	}
	p := qflate.NewJobPool(acc)
	if p.Ready() {
		t.Fatal("pool should not be ready after a slot init failure")
	}
	if _, _, err := p.Acquire(); !errors.Is(err, qflate.ErrPoolUnavailable) {
		t.Errorf("got %v, want %v", err, qflate.ErrPoolUnavailable)
	}
	// Close must only finalize the slots that were initialized.
	p.Close()
}

func TestJobPoolHandles(t *testing.T) {
	const capacity = 8
	p := qflate.NewJobPool(&enginetest.Accelerator{Capacity: capacity})
	if !p.Ready() {
		t.Fatal("pool should be ready")
	}
	defer p.Close()

	if p.Capacity() != capacity {
		t.Fatalf("capacity %d, want %d", p.Capacity(), capacity)
	}

	seen := make(map[uint32]bool)
	for i := 0; i < capacity; i++ {
		handle, job, ok := mustAcquireOK(t, p)
		if !ok {
			t.Fatalf("acquired only %d of %d slots", i, capacity)
		}
		if handle == 0 {
			t.Error("handle must never be zero")
		}
		if handle > capacity {
			t.Errorf("handle %d out of range [1, %d]", handle, capacity)
		}
		if seen[handle] {
			t.Errorf("handle %d issued twice", handle)
		}
		seen[handle] = true
		if job == nil {
			t.Fatal("nil job resource for a valid handle")
		}
	}

	// Every slot is held: a further acquire must fail fast.
	if _, _, err := p.Acquire(); !errors.Is(err, qflate.ErrSlotExhausted) {
		t.Errorf("got %v, want %v", err, qflate.ErrSlotExhausted)
	}

	// Released slots become acquirable again; everything must be free before
	// Close, which waits for held slots.
	for handle := range seen {
		p.Release(handle)
	}
	handle, _ := mustAcquire(t, p)
	p.Release(handle)
}

// mustAcquireOK drains slots one by one, retrying spurious probe misses but
// reporting genuine exhaustion.
func mustAcquireOK(t *testing.T, p *qflate.JobPool) (uint32, *engine.Job, bool) {
	t.Helper()
	for attempt := 0; attempt < 1000; attempt++ {
		handle, job, err := p.Acquire()
		if err == nil {
			return handle, job, true
		}
	}
	return 0, nil, false
}

func TestJobPoolConcurrent(t *testing.T) {
	const capacity = 4
	const goroutines = 16
	const iterations = 200

	p := qflate.NewJobPool(&enginetest.Accelerator{Capacity: capacity})
	if !p.Ready() {
		t.Fatal("pool should be ready")
	}
	defer p.Close()

	// holders[i] counts goroutines currently holding slot index i
	// (index = capacity - handle). It must never exceed 1.
	var holders [capacity]atomic.Int32
	var violations atomic.Int32

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				handle, _, err := p.Acquire()
				if err != nil {
					continue // exhausted, try again
				}
				idx := capacity - handle
				if holders[idx].Add(1) > 1 {
					violations.Add(1)
				}
				holders[idx].Add(-1)
				p.Release(handle)
			}
		}()
	}
	wg.Wait()

	if n := violations.Load(); n > 0 {
		t.Errorf("%d slots were held by more than one goroutine", n)
	}
	for i := range holders {
		if holders[i].Load() != 0 {
			t.Errorf("slot %d still marked held after all releases", i)
		}
	}

	// All slots must be free again.
	seen := 0
	handles := make([]uint32, 0, capacity)
	for i := 0; i < capacity; i++ {
		if handle, _, ok := mustAcquireOK(t, p); ok {
			handles = append(handles, handle)
			seen++
		}
	}
	if seen != capacity {
		t.Errorf("only %d of %d slots free after concurrent churn", seen, capacity)
	}
	for _, h := range handles {
		p.Release(h)
	}
}
