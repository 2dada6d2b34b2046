// Package workout holds the in-progress workout session: the exercise draft,
// the rep/set counter with its rest countdown, and saving the draft to a store.
package workout

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/claude/fittrack/internal/voice"
)

// Errors reported by drafts and saving. Category maps them to notice titles.
var (
	ErrExerciseNameRequired = errors.New("exercise name required")
	ErrInvalidExercise      = errors.New("invalid exercise")
	ErrTitleRequired        = errors.New("workout title required")
	ErrNoExercises          = errors.New("workout has no exercises")
	ErrNoSuchExercise       = errors.New("no such exercise")
	ErrSaveFailed           = errors.New("saving workout failed")
	ErrNoIdentity           = errors.New("no signed-in user")
)

// Category returns the user-facing heading for an error from this package.
func Category(err error) string {
	switch {
	case errors.Is(err, ErrExerciseNameRequired):
		return "Exercise Name Required"
	case errors.Is(err, ErrInvalidExercise):
		return "Invalid Exercise"
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrNoExercises):
		return "Incomplete Workout"
	case errors.Is(err, ErrSaveFailed):
		return "Save Failed"
	case errors.Is(err, ErrNoIdentity):
		return "Not Signed In"
	case errors.Is(err, voice.ErrUnavailable):
		return "Voice Recognition Not Available"
	default:
		return "Error"
	}
}

// Exercise is one finished exercise in a draft. It is not edited after being
// added; remove and re-add it instead.
type Exercise struct {
	Name        string  `json:"name"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	WeightKg    float64 `json:"weight_kg"`
	RestSeconds int     `json:"rest_seconds"`
}

func (e Exercise) validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrExerciseNameRequired
	}
	if e.Sets < 0 || e.Reps < 0 || e.RestSeconds < 0 || e.WeightKg < 0 || math.IsNaN(e.WeightKg) {
		return fmt.Errorf("%w: %s has a negative value", ErrInvalidExercise, e.Name)
	}
	return nil
}

// Draft is a workout session that has not been saved yet.
type Draft struct {
	Title          string     `json:"title"`
	Notes          string     `json:"notes"`
	Exercises      []Exercise `json:"exercises"`
	StartedAt      time.Time  `json:"started_at"`
	ElapsedSeconds int        `json:"elapsed_seconds"`
}

// Start (re)starts the workout clock at now.
func (d *Draft) Start(now time.Time) {
	d.StartedAt = now
	d.ElapsedSeconds = 0
}

// Started reports whether the workout clock is running.
func (d *Draft) Started() bool { return !d.StartedAt.IsZero() }

// UpdateElapsed recomputes the elapsed seconds from the start time.
func (d *Draft) UpdateElapsed(now time.Time) int {
	if !d.Started() {
		return d.ElapsedSeconds
	}
	if el := int(now.Sub(d.StartedAt) / time.Second); el > 0 {
		d.ElapsedSeconds = el
	}
	return d.ElapsedSeconds
}

// Resume rebases a restored clock so it continues from ElapsedSeconds at now
// instead of counting the time the draft spent on disk.
func (d *Draft) Resume(now time.Time) {
	if !d.Started() {
		return
	}
	d.StartedAt = now.Add(-time.Duration(d.ElapsedSeconds) * time.Second)
}

// AddExercise appends e. On a validation error the draft is unchanged.
func (d *Draft) AddExercise(e Exercise) error {
	if err := e.validate(); err != nil {
		return err
	}
	e.Name = strings.TrimSpace(e.Name)
	d.Exercises = append(d.Exercises, e)
	return nil
}

// RemoveExercise deletes the exercise at index i.
func (d *Draft) RemoveExercise(i int) error {
	if i < 0 || i >= len(d.Exercises) {
		return fmt.Errorf("%w: index %d", ErrNoSuchExercise, i)
	}
	d.Exercises = append(d.Exercises[:i], d.Exercises[i+1:]...)
	return nil
}

// Validate checks the draft is ready to save.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	if len(d.Exercises) == 0 {
		return ErrNoExercises
	}
	return nil
}

// TotalReps sums reps over the added exercises.
func (d *Draft) TotalReps() int {
	n := 0
	for _, e := range d.Exercises {
		n += e.Reps
	}
	return n
}

// TotalSets sums sets over the added exercises.
func (d *Draft) TotalSets() int {
	n := 0
	for _, e := range d.Exercises {
		n += e.Sets
	}
	return n
}

// DurationMinutes returns the elapsed time rounded to whole minutes.
func (d *Draft) DurationMinutes() int {
	return int(math.Round(float64(d.ElapsedSeconds) / 60))
}

// Empty reports whether the draft holds nothing worth keeping.
func (d *Draft) Empty() bool {
	return d.Title == "" && d.Notes == "" && len(d.Exercises) == 0 && !d.Started()
}

// Reset clears the draft.
func (d *Draft) Reset() {
	*d = Draft{}
}
