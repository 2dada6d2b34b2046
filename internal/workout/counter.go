package workout

import (
	"fmt"

	"github.com/claude/fittrack/internal/timer"
)

// DefaultRestSeconds is the rest period a new exercise starts with.
const DefaultRestSeconds = 60

// Counter tracks the exercise currently being performed: reps of the set in
// progress, completed sets and the rest countdown between sets.
type Counter struct {
	Name        string
	WeightKg    float64
	RestSeconds int

	reps      int
	sets      int
	totalReps int
	rest      timer.Countdown
}

// NewCounter returns an empty counter with the default rest period.
func NewCounter() *Counter {
	return &Counter{RestSeconds: DefaultRestSeconds}
}

// IncrementReps counts one rep of the current set.
func (c *Counter) IncrementReps() Notice {
	c.reps++
	return info("Rep Counted!", fmt.Sprintf("Total reps: %d", c.reps))
}

// DecrementReps removes one rep, never going below zero.
func (c *Counter) DecrementReps() bool {
	if c.reps == 0 {
		return false
	}
	c.reps--
	return true
}

// CompleteSet records the current set and arms the rest countdown. With no
// reps counted it does nothing and reports false.
func (c *Counter) CompleteSet() (Notice, bool) {
	if c.reps == 0 {
		return Notice{}, false
	}
	c.sets++
	c.totalReps += c.reps
	if c.RestSeconds > 0 {
		c.rest.Arm(c.RestSeconds)
	}
	n := success("Set Complete!", fmt.Sprintf("Set %d completed with %d reps", c.sets, c.reps))
	c.reps = 0
	return n, true
}

// TickRest advances the rest countdown by one second. The notice is only set
// when the countdown reaches zero.
func (c *Counter) TickRest() (Notice, bool) {
	if !c.rest.Tick() {
		return Notice{}, false
	}
	return info("Rest Complete!", "Time for your next set"), true
}

// SkipRest ends the rest countdown immediately.
func (c *Counter) SkipRest() bool {
	if !c.rest.Active() {
		return false
	}
	c.rest.Skip()
	return true
}

// ResetCurrentExercise zeroes reps and sets and discards any rest in progress.
func (c *Counter) ResetCurrentExercise() {
	c.reps = 0
	c.sets = 0
	c.totalReps = 0
	c.rest.Clear()
}

// Reps is the rep count of the set in progress.
func (c *Counter) Reps() int { return c.reps }

// Sets is the number of completed sets.
func (c *Counter) Sets() int { return c.sets }

// TotalReps is the sum of reps over completed sets.
func (c *Counter) TotalReps() int { return c.totalReps }

// Resting reports whether the rest countdown is running.
func (c *Counter) Resting() bool { return c.rest.Active() }

// RestRemaining is the seconds left in the rest countdown.
func (c *Counter) RestRemaining() int { return c.rest.Remaining() }

// Entry returns the exercise as it would be added to the draft. Reps are the
// sum over completed sets.
func (c *Counter) Entry() Exercise {
	return Exercise{
		Name:        c.Name,
		Sets:        c.sets,
		Reps:        c.totalReps,
		WeightKg:    c.WeightKg,
		RestSeconds: c.RestSeconds,
	}
}
