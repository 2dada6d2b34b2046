package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/claude/fittrack/internal/models"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by "METHOD path".
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestMeSendsAPIKey verifies the API key header and user decoding.
func TestMeSendsAPIKey(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/me": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("X-API-Key"); got != "secret" {
				t.Errorf("X-API-Key=%q, want secret", got)
			}
			writeTestJSON(t, w, http.StatusOK, models.User{ID: 7, Login: "alex@example.com"})
		},
	})

	u, err := NewHTTPClient(ts.URL+"/", "secret").Me(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != 7 || u.Name() != "alex" {
		t.Errorf("user = %+v", u)
	}
}

// TestCreateSessionPostsPayload verifies the session payload and 201 handling.
func TestCreateSessionPostsPayload(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/sessions": func(w http.ResponseWriter, r *http.Request) {
			var in models.NewSession
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				t.Fatal(err)
			}
			if in.Title != "Legs" || in.TotalReps != 30 || in.DurationMinutes != 42 {
				t.Errorf("payload = %+v", in)
			}
			writeTestJSON(t, w, http.StatusCreated, models.Session{ID: id, Title: in.Title})
		},
	})

	s, err := NewHTTPClient(ts.URL, "").CreateSession(context.Background(), models.NewSession{
		Title: "Legs", TotalReps: 30, TotalSets: 3, DurationMinutes: 42,
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != id {
		t.Errorf("id = %s, want %s", s.ID, id)
	}
}

// TestInsertExercisesReturnsCount verifies the batch path and result decoding.
func TestInsertExercisesReturnsCount(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/sessions/" + id.String() + "/exercises": func(w http.ResponseWriter, r *http.Request) {
			var in []models.NewExercise
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				t.Fatal(err)
			}
			writeTestJSON(t, w, http.StatusCreated, map[string]int{"inserted": len(in)})
		},
	})

	n, err := NewHTTPClient(ts.URL, "").InsertExercises(context.Background(), id, 1, []models.NewExercise{
		{Name: "Squat", Sets: 3, Reps: 30}, {Name: "Lunge", Sets: 2, Reps: 20},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("inserted = %d, want 2", n)
	}
}

// TestListSessionsQueryParams verifies range and limit parameters.
func TestListSessionsQueryParams(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/sessions": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("limit") != "5" {
				t.Errorf("limit=%q, want 5", q.Get("limit"))
			}
			if q.Get("start") != "2026-01-01T00:00:00Z" {
				t.Errorf("start=%q", q.Get("start"))
			}
			if q.Has("end") {
				t.Errorf("end should be omitted, got %q", q.Get("end"))
			}
			writeTestJSON(t, w, http.StatusOK, []models.Session{{Title: "a"}, {Title: "b"}})
		},
	})

	got, err := NewHTTPClient(ts.URL, "").ListSessions(context.Background(), models.SessionQuery{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Limit: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d sessions, want 2", len(got))
	}
}

// TestErrorStatusIncludesBody verifies non-2xx responses surface code and body.
func TestErrorStatusIncludesBody(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/sessions/" + id.String() + "/exercises": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "database unavailable", http.StatusInternalServerError)
		},
		"DELETE /api/v1/sessions/" + id.String(): func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		},
	})
	c := NewHTTPClient(ts.URL, "")

	_, err := c.ListExercises(context.Background(), id, 1)
	if err == nil || !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "database unavailable") {
		t.Errorf("ListExercises error = %v", err)
	}
	if err := c.DeleteSession(context.Background(), id, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteSession error = %v, want ErrNotFound", err)
	}
}
