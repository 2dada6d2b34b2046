package timer

import (
	"sync"
	"time"
)

// Ticker is an owned, cancellable periodic callback. The callback runs on the
// ticker's own goroutine and ends the ticker by returning false.
//
// Stop blocks until that goroutine has exited, so once Stop returns the
// callback will not run again.
type Ticker struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewTicker starts calling fn every interval until fn returns false or Stop
// is called.
func NewTicker(interval time.Duration, fn func() bool) *Ticker {
	t := &Ticker{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go t.run(interval, fn)
	return t
}

func (t *Ticker) run(interval time.Duration, fn func() bool) {
	defer close(t.done)
	tk := time.NewTicker(interval)
	defer tk.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-tk.C:
			// A Stop racing with a tick wins.
			select {
			case <-t.stop:
				return
			default:
			}
			if !fn() {
				return
			}
		}
	}
}

// Stop cancels the ticker and waits for its goroutine to exit. It must not be
// called from inside the callback; return false there instead. Stop is
// idempotent and safe on a nil Ticker.
func (t *Ticker) Stop() {
	if t == nil {
		return
	}
	t.stopOnce.Do(func() { close(t.stop) })
	<-t.done
}

// Done is closed once the ticker goroutine has exited.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}
