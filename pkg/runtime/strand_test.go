package runtime

import (
	"testing"
	"time"
)

func TestStrandHandleResolve(t *testing.T) {
	h := NewStrandHandle()
	if h.Status() != StrandPending {
		t.Fatalf("new handle should be pending")
	}
	go func() {
		time.Sleep(5 * time.Millisecond)
		h.Resolve(IntValue{Val: 42})
	}()
	val, err, status := h.Await()
	if err != nil || status != StrandResolved {
		t.Fatalf("expected resolved handle, got err %v status %v", err, status)
	}
	if iv := val.(IntValue); iv.Val != 42 {
		t.Fatalf("expected 42, got %#v", val)
	}
}

func TestStrandHandleFail(t *testing.T) {
	h := NewStrandHandle()
	h.Fail(NewError(ErrDivisionByZero, "division by zero"))
	_, err, status := h.Await()
	if status != StrandFailed || err == nil || err.Kind != ErrDivisionByZero {
		t.Fatalf("expected failed handle, got err %v status %v", err, status)
	}
}

func TestStrandHandleSettlesOnce(t *testing.T) {
	h := NewStrandHandle()
	h.Resolve(IntValue{Val: 1})
	h.Resolve(IntValue{Val: 2})
	h.Fail(NewError(ErrTypeMismatch, "late failure"))
	val, err, status := h.Await()
	if err != nil || status != StrandResolved {
		t.Fatalf("settled handle changed state: err %v status %v", err, status)
	}
	if iv := val.(IntValue); iv.Val != 1 {
		t.Fatalf("first settlement lost, got %#v", val)
	}
}

func TestAwaitIsIdempotent(t *testing.T) {
	h := NewStrandHandle()
	h.Resolve(StringValue{Val: "done"})
	for i := 0; i < 3; i++ {
		val, err, _ := h.Await()
		if err != nil {
			t.Fatalf("await %d failed: %v", i, err)
		}
		if sv := val.(StringValue); sv.Val != "done" {
			t.Fatalf("await %d returned %#v", i, val)
		}
	}
}

func TestMultipleAwaitersAllWake(t *testing.T) {
	h := NewStrandHandle()
	results := make(chan Value, 4)
	for i := 0; i < 4; i++ {
		go func() {
			val, _, _ := h.Await()
			results <- val
		}()
	}
	time.Sleep(5 * time.Millisecond)
	h.Resolve(IntValue{Val: 9})
	for i := 0; i < 4; i++ {
		select {
		case val := <-results:
			if iv := val.(IntValue); iv.Val != 9 {
				t.Fatalf("awaiter %d got %#v", i, val)
			}
		case <-time.After(time.Second):
			t.Fatalf("awaiter %d never woke", i)
		}
	}
}

func TestWrapStrandKeepsCause(t *testing.T) {
	cause := NewError(ErrKeyNotFound, "key 'x' not found").At(4, 2)
	wrapped := WrapStrand(cause)
	if wrapped.Kind != ErrStrandPropagated {
		t.Fatalf("expected StrandPropagatedError, got %s", wrapped.Kind)
	}
	if wrapped.Cause != cause {
		t.Fatalf("cause not preserved")
	}
	if wrapped.Line != 4 || wrapped.Column != 2 {
		t.Fatalf("position not carried over: %d:%d", wrapped.Line, wrapped.Column)
	}
}
