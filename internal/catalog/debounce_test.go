package catalog

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_SingleCall(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(20 * time.Millisecond)

	if !debouncer.Debounce(func() { atomic.AddInt32(&called, 1) }) {
		t.Fatal("expected Debounce to arm")
	}
	if !debouncer.Pending() {
		t.Error("expected a pending call right after arming")
	}

	time.Sleep(80 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call, got %d", called)
	}
	if debouncer.Pending() {
		t.Error("expected nothing pending after firing")
	}
}

func TestDebouncer_RapidCalls(t *testing.T) {
	var called int32
	var lastValue int32
	debouncer := NewDebouncer(40 * time.Millisecond)

	for i := 1; i <= 10; i++ {
		value := int32(i)
		debouncer.Debounce(func() {
			atomic.StoreInt32(&lastValue, value)
			atomic.AddInt32(&called, 1)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(120 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call for rapid succession, got %d", called)
	}
	if atomic.LoadInt32(&lastValue) != 10 {
		t.Errorf("Expected last value 10, got %d", lastValue)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(30 * time.Millisecond)

	debouncer.Debounce(func() { atomic.AddInt32(&called, 1) })
	time.Sleep(5 * time.Millisecond)
	debouncer.Cancel()

	time.Sleep(80 * time.Millisecond)

	if atomic.LoadInt32(&called) != 0 {
		t.Errorf("Expected 0 calls after cancel, got %d", called)
	}

	// Cancel does not close: arming again still works.
	debouncer.Debounce(func() { atomic.AddInt32(&called, 1) })
	time.Sleep(80 * time.Millisecond)
	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call after re-arming, got %d", called)
	}
}

func TestDebouncer_Close(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(20 * time.Millisecond)

	debouncer.Debounce(func() { atomic.AddInt32(&called, 1) })
	debouncer.Close()

	if debouncer.Debounce(func() { atomic.AddInt32(&called, 1) }) {
		t.Error("expected Debounce to refuse after Close")
	}

	time.Sleep(60 * time.Millisecond)

	if atomic.LoadInt32(&called) != 0 {
		t.Errorf("Expected 0 calls after close, got %d", called)
	}
	if debouncer.Pending() {
		t.Error("expected nothing pending after close")
	}
}

func BenchmarkDebouncer_RapidCalls(b *testing.B) {
	debouncer := NewDebouncer(10 * time.Millisecond)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		debouncer.Debounce(func() {})
	}

	debouncer.Close()
}
