package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

// TestTickerStopsWhenCallbackReturnsFalse verifies the goroutine exits on its own.
func TestTickerStopsWhenCallbackReturnsFalse(t *testing.T) {
	var calls atomic.Int32
	tk := NewTicker(time.Millisecond, func() bool {
		return calls.Add(1) < 3
	})

	select {
	case <-tk.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not exit after callback returned false")
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("callback ran %d times, want 3", n)
	}
	tk.Stop()
}

// TestTickerStopHaltsCallbacks verifies no callback runs once Stop returns.
func TestTickerStopHaltsCallbacks(t *testing.T) {
	var calls atomic.Int32
	tk := NewTicker(time.Millisecond, func() bool {
		calls.Add(1)
		return true
	})
	time.Sleep(10 * time.Millisecond)
	tk.Stop()

	after := calls.Load()
	time.Sleep(10 * time.Millisecond)
	if n := calls.Load(); n != after {
		t.Errorf("callback ran %d more times after Stop", n-after)
	}
}

// TestTickerStopIdempotent verifies repeated and nil Stop calls are safe.
func TestTickerStopIdempotent(t *testing.T) {
	tk := NewTicker(time.Hour, func() bool { return true })
	tk.Stop()
	tk.Stop()

	var nilTicker *Ticker
	nilTicker.Stop()
}
