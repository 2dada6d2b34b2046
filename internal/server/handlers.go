package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/stats"
	"github.com/claude/fittrack/internal/store"
)

const maxExercisesPerSession = 200

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	info := userInfoFromContext(r)
	writeJSON(w, http.StatusOK, models.User{
		ID:          userIDFromContext(r),
		Login:       info.Login,
		DisplayName: info.DisplayName,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	q := models.SessionQuery{UserID: userIDFromContext(r)}

	var err error
	if q.Start, q.End, err = parseOptionalRange(r); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		q.Limit = n
	}

	sessions, err := s.db.ListSessions(r.Context(), q)
	if err != nil {
		s.log.Error("listing sessions", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var in models.NewSession
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title required"})
		return
	}
	if in.DurationMinutes < 0 || in.TotalReps < 0 || in.TotalSets < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "counts must not be negative"})
		return
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	in.UserID = userIDFromContext(r)

	sess, err := s.db.CreateSession(r.Context(), in)
	if err != nil {
		s.log.Error("creating session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteSession(r.Context(), id, userIDFromContext(r)); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	rows, err := s.db.ListExercises(r.Context(), id, userIDFromContext(r))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if rows == nil {
		rows = []models.ExerciseRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleInsertExercises(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var in []models.NewExercise
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(in) > maxExercisesPerSession {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "too many exercises"})
		return
	}
	for _, e := range in {
		if strings.TrimSpace(e.Name) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise_name required"})
			return
		}
		if e.Sets < 0 || e.Reps < 0 || e.RestSeconds < 0 || e.WeightKg < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise values must not be negative"})
			return
		}
	}

	n, err := s.db.InsertExercises(r.Context(), id, userIDFromContext(r), in)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"inserted": n})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.ListSessions(r.Context(), models.SessionQuery{
		UserID: userIDFromContext(r),
		Limit:  stats.RecentLimit,
	})
	if err != nil {
		s.log.Error("loading dashboard", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats.ComputeDashboard(sessions, time.Now(), s.opts.WeeklyGoal))
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	s.log.Error("store error", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseOptionalRange reads start/end as RFC 3339 or YYYY-MM-DD. Missing
// bounds stay zero; a date-only end covers the whole day.
func parseOptionalRange(r *http.Request) (start, end time.Time, err error) {
	if v := r.URL.Query().Get("start"); v != "" {
		if start, err = parseTime(v, false); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		if end, err = parseTime(v, true); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

func parseTime(v string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(stats.DayLayout, v)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24 * time.Hour)
	}
	return t, nil
}
