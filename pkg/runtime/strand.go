package runtime

import "sync"

type StrandStatus int

const (
	StrandPending StrandStatus = iota
	StrandResolved
	StrandFailed
)

// StrandHandleValue is the opaque handle returned by the strand
// construct. A strand always runs to completion or failure; there is no
// cancellation surface.
type StrandHandleValue struct {
	mu     sync.Mutex
	done   *sync.Cond
	status StrandStatus
	result Value
	err    *Error
}

func NewStrandHandle() *StrandHandleValue {
	h := &StrandHandleValue{}
	h.done = sync.NewCond(&h.mu)
	return h
}

func (v *StrandHandleValue) Kind() Kind { return KindStrandHandle }

func (v *StrandHandleValue) Status() StrandStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Await blocks the calling task until the strand finishes.
func (v *StrandHandleValue) Await() (Value, *Error, StrandStatus) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for v.status == StrandPending {
		v.done.Wait()
	}
	return v.result, v.err, v.status
}

func (v *StrandHandleValue) Resolve(val Value) {
	v.mu.Lock()
	if v.status == StrandPending {
		v.status = StrandResolved
		v.result = val
		v.done.Broadcast()
	}
	v.mu.Unlock()
}

func (v *StrandHandleValue) Fail(err *Error) {
	v.mu.Lock()
	if v.status == StrandPending {
		v.status = StrandFailed
		v.err = err
		v.done.Broadcast()
	}
	v.mu.Unlock()
}
