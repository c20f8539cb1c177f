// pkg/qflate/hardware.go
package qflate

import (
	"errors"

	"github.com/qflate/qflate/pkg/engine"
)

// hardwareEngine fronts the shared job pool for one codec instance. It holds
// the codec's software engine only for asynchronous-flush failure handling:
// a job whose caller already received a handle must still produce correct
// data, so a failed hardware job is re-run on software during Flush.
//
// pending maps job handles to their resources between a successful
// asynchronous submit and resolution by Flush, in insertion order.
type hardwareEngine struct {
	pool    *JobPool
	sw      *softwareEngine
	pending map[uint32]*engine.Job
	order   []uint32
}

func newHardwareEngine(pool *JobPool, sw *softwareEngine) *hardwareEngine {
	return &hardwareEngine{
		pool:    pool,
		sw:      sw,
		pending: make(map[uint32]*engine.Job),
	}
}

// Compress runs a one-shot hardware compress. The slot is released whatever
// the outcome; any error means the caller retries on software.
func (h *hardwareEngine) Compress(dst, src []byte) (int, error) {
	handle, j, err := h.pool.Acquire()
	if err != nil {
		Log.WithError(err).Info("hardware compress unavailable, falling back to software")
		return 0, err
	}
	defer h.pool.Release(handle)

	j.Op = engine.OpCompress
	j.In = src
	j.Out = dst
	j.Level = engine.LevelDefault
	j.Flags = engine.FlagFirst | engine.FlagDynamicHuffman | engine.FlagLast | engine.FlagOmitVerify

	if st := h.pool.acc.Execute(j); st != engine.StatusOK {
		Log.WithField("status", st.String()).Warn("hardware compress failed, falling back to software")
		return 0, &HardwareError{Stage: "execute", Status: st}
	}
	return int(j.TotalOut), nil
}

// DecompressSync submits a decompress job and busy-polls it to completion.
// Expected completion latency is low enough that a full context switch would
// dominate the cost, hence the cooperative spin.
func (h *hardwareEngine) DecompressSync(dst, src []byte) (int, error) {
	handle, j, err := h.pool.Acquire()
	if err != nil {
		Log.WithError(err).Info("hardware decompress unavailable, falling back to software")
		return 0, err
	}
	defer h.pool.Release(handle)

	j.Op = engine.OpDecompress
	j.In = src
	j.Out = dst
	j.Flags = engine.FlagFirst | engine.FlagLast

	if st := h.pool.acc.Submit(j); st != engine.StatusOK {
		Log.WithField("status", st.String()).Warn("hardware decompress submit failed, falling back to software")
		return 0, &HardwareError{Stage: "submit", Status: st}
	}
	st := h.pool.acc.Check(j)
	for st == engine.StatusInProgress {
		pause()
		st = h.pool.acc.Check(j)
	}
	if st != engine.StatusOK {
		Log.WithField("status", st.String()).Warn("hardware decompress failed, falling back to software")
		return 0, &HardwareError{Stage: "poll", Status: st}
	}
	return int(j.TotalOut), nil
}

// DecompressAsync submits a decompress job and returns its handle without
// waiting for completion. The destination must not be read until Flush has
// resolved the handle.
func (h *hardwareEngine) DecompressAsync(dst, src []byte) (uint32, error) {
	handle, j, err := h.pool.Acquire()
	if err != nil {
		Log.WithError(err).Info("hardware decompress unavailable, running this call on software")
		return 0, err
	}

	j.Op = engine.OpDecompress
	j.In = src
	j.Out = dst
	j.Flags = engine.FlagFirst | engine.FlagLast

	if st := h.pool.acc.Submit(j); st != engine.StatusOK {
		h.pool.Release(handle)
		Log.WithField("status", st.String()).Warn("hardware decompress submit failed, running this call on software")
		return 0, &HardwareError{Stage: "submit", Status: st}
	}
	h.pending[handle] = j
	h.order = append(h.order, handle)
	return handle, nil
}

// Flush drains every pending asynchronous job, scanning round-robin. A job
// still in flight is skipped until the next pass; a job that completed with
// an error is re-run synchronously on the software path using the buffers
// recorded on its resource. Every resolved slot is released and the pending
// set is empty on return.
func (h *hardwareEngine) Flush() error {
	var errs []error
	for len(h.order) > 0 {
		resolved := false
		i := 0
		for i < len(h.order) {
			handle := h.order[i]
			j := h.pending[handle]
			st := h.pool.acc.Check(j)
			if st == engine.StatusInProgress {
				i++
				continue
			}
			if st != engine.StatusOK {
				Log.WithField("status", st.String()).Warn("asynchronous hardware decompress failed, substituting software result")
				if err := h.sw.Decompress(j.Out, j.In); err != nil {
					errs = append(errs, err)
				}
			}
			delete(h.pending, handle)
			h.order = append(h.order[:i], h.order[i+1:]...)
			h.pool.Release(handle)
			resolved = true
		}
		if !resolved && len(h.order) > 0 {
			// Everything still in flight; pause before re-scanning.
			pause()
		}
	}
	return errors.Join(errs...)
}

// Close applies the leak policy to jobs that were submitted asynchronously
// but never flushed. Force-released slots may still be executing on the
// device; reclaiming them is best effort, not a clean abandonment.
func (h *hardwareEngine) Close(policy LeakPolicy) {
	if len(h.pending) == 0 {
		return
	}
	if policy == LeakPolicyPanic {
		panic("qflate: codec closed with unresolved asynchronous decompress jobs; call Flush first")
	}
	Log.WithField("pending", len(h.pending)).Warn("codec closed with unresolved asynchronous decompress jobs, force-releasing slots")
	for _, handle := range h.order {
		h.pool.Release(handle)
	}
	h.pending = make(map[uint32]*engine.Job)
	h.order = nil
}
