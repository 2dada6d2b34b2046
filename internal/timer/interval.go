// Package timer implements the tick-driven countdown state machines used by the
// interval timer and the workout rest timer, plus the owned tick sources that
// drive them.
package timer

import (
	"errors"
	"fmt"
)

// Bounds accepted by Config.Validate.
const (
	MaxPhaseSeconds = 3600
	MaxSets         = 50
)

var (
	ErrInvalidConfig = errors.New("invalid timer config")
	ErrConfigLocked  = errors.New("timer config is locked while a run is in progress")
)

// Config holds the durations of an interval run.
type Config struct {
	WorkSeconds int `yaml:"work_seconds" json:"work_seconds"`
	RestSeconds int `yaml:"rest_seconds" json:"rest_seconds"`
	TotalSets   int `yaml:"total_sets" json:"total_sets"`
}

// DefaultConfig returns 30s work, 15s rest, 3 sets.
func DefaultConfig() Config {
	return Config{WorkSeconds: 30, RestSeconds: 15, TotalSets: 3}
}

// Validate checks that every field is positive and within bounds.
func (c Config) Validate() error {
	if c.WorkSeconds < 1 || c.WorkSeconds > MaxPhaseSeconds {
		return fmt.Errorf("%w: work duration %ds not in 1..%d", ErrInvalidConfig, c.WorkSeconds, MaxPhaseSeconds)
	}
	if c.RestSeconds < 1 || c.RestSeconds > MaxPhaseSeconds {
		return fmt.Errorf("%w: rest duration %ds not in 1..%d", ErrInvalidConfig, c.RestSeconds, MaxPhaseSeconds)
	}
	if c.TotalSets < 1 || c.TotalSets > MaxSets {
		return fmt.Errorf("%w: total sets %d not in 1..%d", ErrInvalidConfig, c.TotalSets, MaxSets)
	}
	return nil
}

// Phase is the position of an interval run.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseWorking  Phase = "working"
	PhaseResting  Phase = "resting"
	PhaseComplete Phase = "complete"
)

// Display statuses.
const (
	StatusReady    = "READY"
	StatusWork     = "WORK OUT"
	StatusRest     = "REST"
	StatusComplete = "COMPLETE"
	StatusPaused   = "PAUSED"
)

// Transition reports what Start did.
type Transition int

const (
	NoChange Transition = iota
	Started
	Resumed
)

// Event reports what a tick did beyond decrementing.
type Event int

const (
	EventNone Event = iota
	// EventRestStarted: a work phase ended and rest began.
	EventRestStarted
	// EventSetStarted: a rest phase ended and the next work phase began.
	EventSetStarted
	// EventComplete: the final work phase ended.
	EventComplete
)

// TickResult describes one applied tick. Phase and Progress refer to the phase
// that was ticked, so Progress is 100 on the tick that ends it.
type TickResult struct {
	Event    Event
	Phase    Phase
	Progress float64
}

// State is a read-only snapshot of an Interval.
type State struct {
	Phase      Phase  `json:"phase"`
	Paused     bool   `json:"paused"`
	Remaining  int    `json:"remaining_seconds"`
	CurrentSet int    `json:"current_set"`
	Config     Config `json:"config"`
}

// Interval alternates work and rest phases over a configured number of sets.
//
// Working and Resting are the two phases; at most one of them is active, and
// pausing keeps the phase and remaining time so a later Start resumes it.
// Interval is not safe for concurrent use; Driver serialises access.
type Interval struct {
	cfg        Config
	phase      Phase
	paused     bool
	remaining  int
	currentSet int
}

// NewInterval returns an idle interval timer.
func NewInterval(cfg Config) (*Interval, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Interval{cfg: cfg, phase: PhaseIdle, currentSet: 1}, nil
}

// Config returns the current configuration.
func (t *Interval) Config() Config { return t.cfg }

// SetConfig replaces the configuration. It is refused once a phase has
// started and until the run completes or is reset.
func (t *Interval) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if t.inRun() {
		return ErrConfigLocked
	}
	t.cfg = cfg
	return nil
}

func (t *Interval) inRun() bool {
	return t.phase == PhaseWorking || t.phase == PhaseResting
}

// WorkActive reports whether the work phase is counting down.
func (t *Interval) WorkActive() bool { return t.phase == PhaseWorking && !t.paused }

// RestActive reports whether the rest phase is counting down.
func (t *Interval) RestActive() bool { return t.phase == PhaseResting && !t.paused }

// Active reports whether either phase is counting down.
func (t *Interval) Active() bool { return t.inRun() && !t.paused }

// Start begins a fresh run from Idle or Complete, or resumes a paused phase.
// It does nothing while a phase is already active.
func (t *Interval) Start() Transition {
	switch {
	case t.Active():
		return NoChange
	case t.inRun() && t.paused:
		t.paused = false
		return Resumed
	default:
		t.phase = PhaseWorking
		t.paused = false
		t.remaining = t.cfg.WorkSeconds
		t.currentSet = 1
		return Started
	}
}

// Pause suspends the active phase, keeping remaining time and set.
// It reports whether anything was paused.
func (t *Interval) Pause() bool {
	if !t.Active() {
		return false
	}
	t.paused = true
	return true
}

// Reset returns to Idle with no remaining time and the first set.
func (t *Interval) Reset() {
	t.phase = PhaseIdle
	t.paused = false
	t.remaining = 0
	t.currentSet = 1
}

// Tick advances the active phase by one second. It is a no-op unless a phase
// is active.
func (t *Interval) Tick() TickResult {
	if !t.Active() {
		return TickResult{Phase: t.phase, Progress: t.Progress()}
	}
	if t.remaining > 0 {
		t.remaining--
	}
	res := TickResult{Phase: t.phase, Progress: t.Progress()}
	if t.remaining > 0 {
		return res
	}

	switch t.phase {
	case PhaseWorking:
		if t.currentSet < t.cfg.TotalSets {
			t.phase = PhaseResting
			t.remaining = t.cfg.RestSeconds
			res.Event = EventRestStarted
		} else {
			t.phase = PhaseComplete
			t.currentSet = 1
			res.Event = EventComplete
		}
	case PhaseResting:
		t.currentSet++
		t.phase = PhaseWorking
		t.remaining = t.cfg.WorkSeconds
		res.Event = EventSetStarted
	}
	return res
}

// Phase returns the current phase.
func (t *Interval) Phase() Phase { return t.phase }

// Paused reports whether a phase is suspended.
func (t *Interval) Paused() bool { return t.paused }

// Remaining returns the seconds left in the current phase.
func (t *Interval) Remaining() int { return t.remaining }

// CurrentSet returns the 1-based set number.
func (t *Interval) CurrentSet() int { return t.currentSet }

// Snapshot returns the current state.
func (t *Interval) Snapshot() State {
	return State{
		Phase:      t.phase,
		Paused:     t.paused,
		Remaining:  t.remaining,
		CurrentSet: t.currentSet,
		Config:     t.cfg,
	}
}

// Status returns the display label for the current state.
func (t *Interval) Status() string {
	switch {
	case t.phase == PhaseIdle:
		return StatusReady
	case t.phase == PhaseComplete:
		return StatusComplete
	case t.paused:
		return StatusPaused
	case t.phase == PhaseWorking:
		return StatusWork
	default:
		return StatusRest
	}
}

// PhaseDuration returns the configured length of the current phase. Idle and
// Complete report the work duration.
func (t *Interval) PhaseDuration() int {
	if t.phase == PhaseResting {
		return t.cfg.RestSeconds
	}
	return t.cfg.WorkSeconds
}

// Progress returns the elapsed share of the current phase in percent.
func (t *Interval) Progress() float64 {
	switch t.phase {
	case PhaseIdle:
		return 0
	case PhaseComplete:
		return 100
	}
	return Percent(t.PhaseDuration(), t.remaining)
}

// Percent returns (duration-remaining)/duration*100, or 0 for a zero duration.
func Percent(duration, remaining int) float64 {
	if duration <= 0 {
		return 0
	}
	return float64(duration-remaining) / float64(duration) * 100
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
