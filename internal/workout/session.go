package workout

import (
	"time"

	"github.com/claude/fittrack/internal/voice"
)

// Session is the workout screen's state: the draft being built and the
// counter for the exercise in progress.
type Session struct {
	Draft   Draft
	Counter *Counter
}

// NewSession returns an empty session with a fresh counter.
func NewSession() *Session {
	return &Session{Counter: NewCounter()}
}

// StartWorkout starts the workout clock.
func (s *Session) StartWorkout(now time.Time) Notice {
	s.Draft.Start(now)
	return success("Workout Started!", "Time to get those gains!")
}

// AddExercise moves the counted exercise into the draft and starts a fresh
// counter. On error neither the draft nor the counter changes.
func (s *Session) AddExercise() (Notice, error) {
	e := s.Counter.Entry()
	if err := s.Draft.AddExercise(e); err != nil {
		return ErrorNotice(err), err
	}
	s.Counter = NewCounter()
	return success("Exercise Added!", e.Name+" added to your workout"), nil
}

// Apply routes a voice command to the matching counter control. It reports
// false when the command had no effect.
func (s *Session) Apply(cmd voice.Command) (Notice, bool) {
	switch cmd {
	case voice.IncrementRep:
		return s.Counter.IncrementReps(), true
	case voice.CompleteSet:
		return s.Counter.CompleteSet()
	case voice.Reset:
		s.Counter.ResetCurrentExercise()
		return info("Exercise Reset", "Reps and sets cleared"), true
	}
	return Notice{}, false
}

// Tick advances the rest countdown and the workout clock.
func (s *Session) Tick(now time.Time) (Notice, bool) {
	s.Draft.UpdateElapsed(now)
	return s.Counter.TickRest()
}

// Reset discards the draft and the counter.
func (s *Session) Reset() {
	s.Draft.Reset()
	s.Counter = NewCounter()
}
