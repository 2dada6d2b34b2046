package server

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/store"
)

// memBackend is an in-memory Backend for handler tests.
type memBackend struct {
	mu        sync.Mutex
	users     map[string]int
	sessions  map[uuid.UUID]models.Session
	exercises []models.ExerciseRow
}

func newMemBackend() *memBackend {
	return &memBackend{users: map[string]int{}, sessions: map[uuid.UUID]models.Session{}}
}

func (m *memBackend) GetOrCreateUser(_ context.Context, login, _ string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.users[login]; ok {
		return id, nil
	}
	id := len(m.users) + 100
	m.users[login] = id
	return id, nil
}

func (m *memBackend) CreateSession(_ context.Context, s models.NewSession) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := models.Session{
		ID: uuid.New(), UserID: s.UserID, Title: s.Title, Date: s.Date,
		DurationMinutes: s.DurationMinutes, TotalReps: s.TotalReps, TotalSets: s.TotalSets,
		Notes: s.Notes, CreatedAt: time.Now(),
	}
	m.sessions[sess.ID] = sess
	return &sess, nil
}

func (m *memBackend) InsertExercises(_ context.Context, id uuid.UUID, userID int, ex []models.NewExercise) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; !ok || s.UserID != userID {
		return 0, store.ErrNotFound
	}
	for _, e := range ex {
		m.exercises = append(m.exercises, models.ExerciseRow{
			ID: int64(len(m.exercises) + 1), SessionID: id, UserID: userID,
			Name: e.Name, Sets: e.Sets, Reps: e.Reps, RestSeconds: e.RestSeconds, WeightKg: e.WeightKg,
		})
	}
	return int64(len(ex)), nil
}

func (m *memBackend) DeleteSession(_ context.Context, id uuid.UUID, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; !ok || s.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memBackend) ListSessions(_ context.Context, q models.SessionQuery) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Session
	for _, s := range m.sessions {
		if s.UserID != q.UserID {
			continue
		}
		if !q.Start.IsZero() && s.Date.Before(q.Start) {
			continue
		}
		if !q.End.IsZero() && !s.Date.Before(q.End) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memBackend) ListExercises(_ context.Context, id uuid.UUID, userID int) ([]models.ExerciseRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ExerciseRow
	for _, e := range m.exercises {
		if e.SessionID == id && e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func newTestServer(opts Options) (*Server, *memBackend) {
	db := newMemBackend()
	return New(db, opts, slog.Default()), db
}
