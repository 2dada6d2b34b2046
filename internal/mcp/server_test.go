package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/stats"
)

// fakeStore serves fixed sessions and records the last query.
type fakeStore struct {
	sessions  []models.Session
	exercises map[uuid.UUID][]models.ExerciseRow
	lastQuery models.SessionQuery
}

func (f *fakeStore) CreateSession(context.Context, models.NewSession) (*models.Session, error) {
	return nil, nil
}

func (f *fakeStore) InsertExercises(context.Context, uuid.UUID, int, []models.NewExercise) (int64, error) {
	return 0, nil
}

func (f *fakeStore) DeleteSession(context.Context, uuid.UUID, int) error { return nil }

func (f *fakeStore) ListSessions(_ context.Context, q models.SessionQuery) ([]models.Session, error) {
	f.lastQuery = q
	var out []models.Session
	for _, s := range f.sessions {
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
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeStore) ListExercises(_ context.Context, id uuid.UUID, _ int) ([]models.ExerciseRow, error) {
	return f.exercises[id], nil
}

func newHandlers(ds *fakeStore) *handlers {
	return &handlers{ds: ds, weeklyGoal: 5, log: slog.Default()}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func decodeResult(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", res.Content[0])
	}
	if err := json.Unmarshal([]byte(text.Text), v); err != nil {
		t.Fatalf("decode result: %v", err)
	}
}

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestDefaultTimeRange verifies time range defaults (last 7 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 167 || diff.Hours() > 169 {
		t.Errorf("default range = %.0f hours, want ~168", diff.Hours())
	}

	start, end, err = defaultTimeRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2024 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2024-01-01", start)
	}
	if end.Day() != 31 {
		t.Errorf("end = %v, want 2024-01-31", end)
	}

	start, _, err = defaultTimeRange("2024-06-15T10:30:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}

	if _, _, err = defaultTimeRange("not-a-date", ""); err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestGetRecentWorkoutsScopesUser verifies the caller's user ID and limit
// reach the store.
func TestGetRecentWorkoutsScopesUser(t *testing.T) {
	now := time.Now()
	ds := &fakeStore{sessions: []models.Session{
		{UserID: 7, Title: "mine", Date: now.Add(-time.Hour)},
		{UserID: 8, Title: "theirs", Date: now.Add(-time.Hour)},
	}}
	h := newHandlers(ds)

	res, err := h.getRecentWorkouts(WithUserID(context.Background(), 7), callRequest(map[string]any{"limit": 3}))
	if err != nil {
		t.Fatal(err)
	}
	var got []models.Session
	decodeResult(t, res, &got)
	if len(got) != 1 || got[0].Title != "mine" {
		t.Errorf("sessions = %+v", got)
	}
	if ds.lastQuery.UserID != 7 || ds.lastQuery.Limit != 3 {
		t.Errorf("query = %+v", ds.lastQuery)
	}
}

// TestGetWorkoutsOnDate verifies sessions are filtered to one calendar day.
func TestGetWorkoutsOnDate(t *testing.T) {
	day := time.Date(2026, 3, 13, 0, 0, 0, 0, time.Local)
	ds := &fakeStore{sessions: []models.Session{
		{UserID: 1, Title: "morning", Date: day.Add(8 * time.Hour)},
		{UserID: 1, Title: "next day", Date: day.Add(30 * time.Hour)},
	}}
	h := newHandlers(ds)

	res, err := h.getWorkoutsOnDate(context.Background(), callRequest(map[string]any{"date": "2026-03-13"}))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Date     string           `json:"date"`
		Sessions []models.Session `json:"sessions"`
	}
	decodeResult(t, res, &got)
	if len(got.Sessions) != 1 || got.Sessions[0].Title != "morning" {
		t.Errorf("sessions = %+v", got.Sessions)
	}

	res, _ = h.getWorkoutsOnDate(context.Background(), callRequest(map[string]any{}))
	if !res.IsError {
		t.Error("missing date should be a tool error")
	}
}

// TestGetDashboardStats verifies the dashboard summary and goal override.
func TestGetDashboardStats(t *testing.T) {
	now := time.Now()
	ds := &fakeStore{sessions: []models.Session{
		{UserID: 1, Date: now, CreatedAt: now, TotalReps: 12, TotalSets: 3, DurationMinutes: 20},
		{UserID: 1, Date: now, CreatedAt: now, TotalReps: 8, TotalSets: 2, DurationMinutes: 15},
	}}
	h := newHandlers(ds)

	res, err := h.getDashboardStats(context.Background(), callRequest(map[string]any{"weekly_goal": 4}))
	if err != nil {
		t.Fatal(err)
	}
	var d stats.Dashboard
	decodeResult(t, res, &d)
	if d.TotalReps != 20 || d.TotalMinutes != 35 || d.WeeklyGoal != 4 || d.WeeklyProgress != 50 {
		t.Errorf("dashboard = %+v", d)
	}
	if ds.lastQuery.Limit != stats.RecentLimit {
		t.Errorf("limit = %d, want %d", ds.lastQuery.Limit, stats.RecentLimit)
	}
}

// TestGetSessionExercises verifies ID validation and exercise listing.
func TestGetSessionExercises(t *testing.T) {
	id := uuid.New()
	ds := &fakeStore{exercises: map[uuid.UUID][]models.ExerciseRow{
		id: {{Name: "Deadlift", Sets: 3, Reps: 15, WeightKg: 120}},
	}}
	h := newHandlers(ds)

	res, err := h.getSessionExercises(context.Background(), callRequest(map[string]any{"session_id": id.String()}))
	if err != nil {
		t.Fatal(err)
	}
	var rows []models.ExerciseRow
	decodeResult(t, res, &rows)
	if len(rows) != 1 || rows[0].Name != "Deadlift" {
		t.Errorf("rows = %+v", rows)
	}

	res, _ = h.getSessionExercises(context.Background(), callRequest(map[string]any{"session_id": "nope"}))
	if !res.IsError {
		t.Error("invalid session_id should be a tool error")
	}
}

// TestRecentWorkoutsResource verifies the resource returns JSON for its URI.
func TestRecentWorkoutsResource(t *testing.T) {
	ds := &fakeStore{sessions: []models.Session{{UserID: 1, Title: "today", Date: time.Now().Add(-time.Hour)}}}
	h := newHandlers(ds)

	var req mcp.ReadResourceRequest
	req.Params.URI = "fittrack://recent_workouts"
	contents, err := h.recentWorkouts(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok || text.URI != "fittrack://recent_workouts" {
		t.Fatalf("contents = %+v", contents)
	}
	var got []models.Session
	if err := json.Unmarshal([]byte(text.Text), &got); err != nil || len(got) != 1 {
		t.Errorf("resource body = %q (%v)", text.Text, err)
	}
}

// TestNewRegistersTools verifies the server constructs with a store.
func TestNewRegistersTools(t *testing.T) {
	if s := New(&fakeStore{}, 5, "test", slog.Default()); s == nil {
		t.Fatal("New returned nil")
	}
}
