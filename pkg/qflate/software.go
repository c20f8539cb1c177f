// pkg/qflate/software.go
package qflate

import "github.com/qflate/qflate/pkg/engine"

// softwareEngine is the per-codec fallback executor. It owns exactly one
// private job resource, created on first use and finalized once at Close.
// Software execution needs no contention control, so the resource is not
// pooled.
type softwareEngine struct {
	backend engine.Backend
	job     *engine.Job
}

func newSoftwareEngine() *softwareEngine {
	return &softwareEngine{backend: engine.NewSoftware()}
}

func (e *softwareEngine) jobPtr() (*engine.Job, error) {
	if e.job == nil {
		j := new(engine.Job)
		if st := e.backend.Init(j); st != engine.StatusOK {
			return nil, &SoftwareError{Op: "init", Status: st}
		}
		e.job = j
	}
	return e.job, nil
}

// Compress deflates src into dst as one final block and returns the
// compressed size.
func (e *softwareEngine) Compress(dst, src []byte) (int, error) {
	j, err := e.jobPtr()
	if err != nil {
		return 0, err
	}
	j.Op = engine.OpCompress
	j.In = src
	j.Out = dst
	j.Level = engine.LevelDefault
	j.Flags = engine.FlagFirst | engine.FlagDynamicHuffman | engine.FlagLast | engine.FlagOmitVerify
	if st := e.backend.Execute(j); st != engine.StatusOK {
		return 0, &SoftwareError{Op: "compress", Status: st}
	}
	return int(j.TotalOut), nil
}

// Decompress inflates src into dst. len(dst) must be the original size.
func (e *softwareEngine) Decompress(dst, src []byte) error {
	j, err := e.jobPtr()
	if err != nil {
		return err
	}
	j.Op = engine.OpDecompress
	j.In = src
	j.Out = dst
	j.Flags = engine.FlagFirst | engine.FlagLast
	if st := e.backend.Execute(j); st != engine.StatusOK {
		return &SoftwareError{Op: "decompress", Status: st}
	}
	return nil
}

// Close finalizes the private job resource. Safe to call more than once.
func (e *softwareEngine) Close() {
	if e.job != nil {
		e.backend.Fini(e.job)
		e.job = nil
	}
}
