package workout

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/claude/fittrack/internal/models"
)

// fakeStore records calls and fails on demand.
type fakeStore struct {
	createErr error
	insertErr error

	created   []models.NewSession
	exercises []models.NewExercise
	deleted   []uuid.UUID
}

func (f *fakeStore) CreateSession(_ context.Context, s models.NewSession) (*models.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, s)
	return &models.Session{ID: uuid.New(), UserID: s.UserID, Title: s.Title}, nil
}

func (f *fakeStore) InsertExercises(_ context.Context, _ uuid.UUID, _ int, ex []models.NewExercise) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.exercises = append(f.exercises, ex...)
	return int64(len(ex)), nil
}

func (f *fakeStore) DeleteSession(_ context.Context, id uuid.UUID, _ int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) ListSessions(context.Context, models.SessionQuery) ([]models.Session, error) {
	return nil, nil
}

func (f *fakeStore) ListExercises(context.Context, uuid.UUID, int) ([]models.ExerciseRow, error) {
	return nil, nil
}

func readyDraft() *Draft {
	d := &Draft{Title: "Leg day", Notes: "felt strong", ElapsedSeconds: 1830}
	d.AddExercise(Exercise{Name: "Squat", Sets: 3, Reps: 24, WeightKg: 80, RestSeconds: 90})
	d.AddExercise(Exercise{Name: "Lunge", Sets: 2, Reps: 20, RestSeconds: 60})
	return d
}

var owner = &models.User{ID: 4, Login: "sam@example.com"}

// TestSaveWritesSessionAndExercises verifies the session payload carries the
// aggregates and the draft is reset afterwards.
func TestSaveWritesSessionAndExercises(t *testing.T) {
	st := &fakeStore{}
	d := readyDraft()

	sess, err := NewSaver(st, slog.Default()).Save(context.Background(), owner, d)
	if err != nil {
		t.Fatal(err)
	}
	if sess == nil || len(st.created) != 1 {
		t.Fatalf("created %d sessions", len(st.created))
	}
	got := st.created[0]
	if got.UserID != 4 || got.Title != "Leg day" || got.TotalReps != 44 || got.TotalSets != 5 || got.DurationMinutes != 31 || got.Notes != "felt strong" {
		t.Errorf("session payload = %+v", got)
	}
	if len(st.exercises) != 2 || st.exercises[0].Name != "Squat" || st.exercises[0].RestSeconds != 90 {
		t.Errorf("exercises = %+v", st.exercises)
	}
	if !d.Empty() {
		t.Errorf("draft not reset: %+v", d)
	}
}

// TestSaveWithoutIdentityIsNoop verifies nothing is sent without a user.
func TestSaveWithoutIdentityIsNoop(t *testing.T) {
	st := &fakeStore{}
	d := readyDraft()
	if _, err := NewSaver(st, slog.Default()).Save(context.Background(), nil, d); !errors.Is(err, ErrNoIdentity) {
		t.Fatalf("Save = %v, want ErrNoIdentity", err)
	}
	if len(st.created) != 0 || len(d.Exercises) != 2 {
		t.Error("save without identity touched the store or the draft")
	}
}

// TestSaveValidatesBeforeCalling verifies validation errors stop before the store.
func TestSaveValidatesBeforeCalling(t *testing.T) {
	st := &fakeStore{}
	d := readyDraft()
	d.Title = ""
	if _, err := NewSaver(st, slog.Default()).Save(context.Background(), owner, d); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("Save = %v, want ErrTitleRequired", err)
	}
	if len(st.created) != 0 {
		t.Error("store called for an invalid draft")
	}
}

// TestSaveCreateFailureKeepsDraft verifies a failed session insert leaves the
// draft intact for retry.
func TestSaveCreateFailureKeepsDraft(t *testing.T) {
	boom := errors.New("connection refused")
	st := &fakeStore{createErr: boom}
	d := readyDraft()

	_, err := NewSaver(st, slog.Default()).Save(context.Background(), owner, d)
	if !errors.Is(err, ErrSaveFailed) || !errors.Is(err, boom) {
		t.Fatalf("Save = %v, want ErrSaveFailed wrapping the cause", err)
	}
	if d.Title != "Leg day" || len(d.Exercises) != 2 || d.ElapsedSeconds != 1830 {
		t.Errorf("draft changed: %+v", d)
	}
}

// TestSaveExerciseFailureRemovesSession verifies no partial session remains
// when the exercise insert fails.
func TestSaveExerciseFailureRemovesSession(t *testing.T) {
	st := &fakeStore{insertErr: errors.New("constraint violation")}
	d := readyDraft()

	_, err := NewSaver(st, slog.Default()).Save(context.Background(), owner, d)
	if !errors.Is(err, ErrSaveFailed) {
		t.Fatalf("Save = %v, want ErrSaveFailed", err)
	}
	if len(st.deleted) != 1 {
		t.Errorf("deleted %d sessions, want 1", len(st.deleted))
	}
	if len(d.Exercises) != 2 {
		t.Error("draft lost its exercises")
	}
	if n := ErrorNotice(err); n.Title != "Save Failed" || n.Level != LevelError {
		t.Errorf("notice = %+v", n)
	}
}
