package workout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/store"
)

// Saver writes drafts to a Store as one session plus its exercises.
type Saver struct {
	store store.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewSaver returns a Saver writing to st.
func NewSaver(st store.Store, log *slog.Logger) *Saver {
	return &Saver{store: st, log: log, now: time.Now}
}

// Save validates d, creates the session and inserts its exercises. If the
// exercise insert fails the session is deleted again. d is reset only when
// everything succeeded; on any error it is left as it was.
func (s *Saver) Save(ctx context.Context, owner *models.User, d *Draft) (*models.Session, error) {
	if owner == nil {
		return nil, ErrNoIdentity
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	sess, err := s.store.CreateSession(ctx, models.NewSession{
		UserID:          owner.ID,
		Title:           d.Title,
		Date:            s.now(),
		DurationMinutes: d.DurationMinutes(),
		TotalReps:       d.TotalReps(),
		TotalSets:       d.TotalSets(),
		Notes:           d.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating session: %w", ErrSaveFailed, err)
	}

	exercises := make([]models.NewExercise, len(d.Exercises))
	for i, e := range d.Exercises {
		exercises[i] = models.NewExercise{
			Name:        e.Name,
			Sets:        e.Sets,
			Reps:        e.Reps,
			RestSeconds: e.RestSeconds,
			WeightKg:    e.WeightKg,
		}
	}
	if _, err := s.store.InsertExercises(ctx, sess.ID, owner.ID, exercises); err != nil {
		if delErr := s.store.DeleteSession(context.WithoutCancel(ctx), sess.ID, owner.ID); delErr != nil {
			s.log.Error("failed to remove partial session", "session", sess.ID, "error", delErr)
		}
		return nil, fmt.Errorf("%w: inserting exercises: %w", ErrSaveFailed, err)
	}

	s.log.Info("workout saved", "session", sess.ID, "exercises", len(exercises), "reps", d.TotalReps())
	d.Reset()
	return sess, nil
}
