package interpreter

import (
	"sync"

	"flo/interpreter-go/pkg/runtime"
)

// StrandTask is the unit of work a strand submits to its executor.
type StrandTask func() (runtime.Value, *runtime.Error)

// Executor schedules strand bodies. The interpreter never assumes where
// or when a task runs; it only awaits the handle the task resolves.
type Executor interface {
	// Submit schedules the task and wires its outcome into the handle.
	Submit(task StrandTask, handle *runtime.StrandHandleValue)
	// Wait blocks until every submitted task has settled.
	Wait()
}

// GoroutineExecutor runs each strand on its own goroutine.
type GoroutineExecutor struct {
	wg sync.WaitGroup
}

func NewGoroutineExecutor() *GoroutineExecutor {
	return &GoroutineExecutor{}
}

func (e *GoroutineExecutor) Submit(task StrandTask, handle *runtime.StrandHandleValue) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		runTask(task, handle)
	}()
}

func (e *GoroutineExecutor) Wait() {
	e.wg.Wait()
}

// SerialExecutor runs each strand body synchronously at spawn time, on
// the spawning strand's thread. Every handle is already settled by the
// time the spawn expression yields it, which makes scheduling fully
// deterministic for tests and single-threaded embedders.
type SerialExecutor struct{}

func NewSerialExecutor() *SerialExecutor {
	return &SerialExecutor{}
}

func (e *SerialExecutor) Submit(task StrandTask, handle *runtime.StrandHandleValue) {
	runTask(task, handle)
}

func (e *SerialExecutor) Wait() {}

// runTask settles the handle exactly once, converting a panic in the
// task into a failed strand rather than tearing down the process.
func runTask(task StrandTask, handle *runtime.StrandHandleValue) {
	defer func() {
		if r := recover(); r != nil {
			handle.Fail(runtime.NewError(runtime.ErrStrandPropagated, "strand panicked: %v", r))
		}
	}()
	val, err := task()
	if err != nil {
		handle.Fail(err)
		return
	}
	handle.Resolve(val)
}
