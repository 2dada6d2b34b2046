package timer

import (
	"sync"
	"time"
)

// Driver runs an Interval off a Ticker.
//
// Every control call bumps a generation and replaces the ticker, so a tick
// that was already in flight when Pause or Reset ran sees a stale generation
// and is dropped instead of decrementing the new state.
type Driver struct {
	mu       sync.Mutex
	timer    *Interval
	interval time.Duration
	ticker   *Ticker
	gen      uint64
	onUpdate func(State, TickResult)
}

// NewDriver wraps t. onUpdate, if non-nil, is called from the tick goroutine
// after each applied tick; it must not call back into the Driver.
func NewDriver(t *Interval, interval time.Duration, onUpdate func(State, TickResult)) *Driver {
	if interval <= 0 {
		interval = time.Second
	}
	return &Driver{timer: t, interval: interval, onUpdate: onUpdate}
}

// Start starts or resumes the run and arms a fresh tick source.
func (d *Driver) Start() Transition {
	d.mu.Lock()
	tr := d.timer.Start()
	var old *Ticker
	if tr != NoChange {
		d.gen++
		old = d.ticker
		d.ticker = NewTicker(d.interval, d.tick(d.gen))
	}
	d.mu.Unlock()

	old.Stop()
	return tr
}

// Pause suspends the run and halts its tick source.
func (d *Driver) Pause() bool {
	d.mu.Lock()
	paused := d.timer.Pause()
	old := d.detach()
	d.mu.Unlock()

	old.Stop()
	return paused
}

// Reset returns the run to Idle and halts its tick source.
func (d *Driver) Reset() {
	d.mu.Lock()
	d.timer.Reset()
	old := d.detach()
	d.mu.Unlock()

	old.Stop()
}

// Close halts the tick source without touching the timer state.
func (d *Driver) Close() {
	d.mu.Lock()
	old := d.detach()
	d.mu.Unlock()

	old.Stop()
}

// SetConfig forwards to Interval.SetConfig.
func (d *Driver) SetConfig(cfg Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer.SetConfig(cfg)
}

// State returns a snapshot of the driven timer.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer.Snapshot()
}

// Status returns the display label of the driven timer.
func (d *Driver) Status() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer.Status()
}

// detach invalidates in-flight ticks and hands back the ticker to stop.
// Callers hold d.mu and call Stop after releasing it.
func (d *Driver) detach() *Ticker {
	d.gen++
	old := d.ticker
	d.ticker = nil
	return old
}

func (d *Driver) tick(gen uint64) func() bool {
	return func() bool {
		d.mu.Lock()
		if gen != d.gen || !d.timer.Active() {
			d.mu.Unlock()
			return false
		}
		res := d.timer.Tick()
		st := d.timer.Snapshot()
		active := d.timer.Active()
		d.mu.Unlock()

		if d.onUpdate != nil {
			d.onUpdate(st, res)
		}
		return active
	}
}
