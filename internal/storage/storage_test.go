package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/claude/fittrack/internal/models"
)

// TestSessionListQueryUserOnly verifies an unbounded query filters by user only.
func TestSessionListQueryUserOnly(t *testing.T) {
	query, args := sessionListQuery(models.SessionQuery{UserID: 3})
	if !strings.Contains(query, "WHERE user_id = $1 ORDER BY date DESC, created_at DESC") {
		t.Errorf("query = %s", query)
	}
	if strings.Contains(query, "LIMIT") {
		t.Error("zero limit should not add LIMIT")
	}
	if len(args) != 1 || args[0] != 3 {
		t.Errorf("args = %v", args)
	}
}

// TestSessionListQueryRangeAndLimit verifies placeholders are numbered in
// argument order.
func TestSessionListQueryRangeAndLimit(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	query, args := sessionListQuery(models.SessionQuery{UserID: 1, Start: start, End: end, Limit: 5})

	for _, want := range []string{"date >= $2", "date < $3", "LIMIT $4"} {
		if !strings.Contains(query, want) {
			t.Errorf("query missing %q: %s", want, query)
		}
	}
	if len(args) != 4 || args[1] != start || args[2] != end || args[3] != 5 {
		t.Errorf("args = %v", args)
	}
}

// TestSessionListQueryEndOnly verifies an open start still numbers End as $2.
func TestSessionListQueryEndOnly(t *testing.T) {
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	query, args := sessionListQuery(models.SessionQuery{UserID: 1, End: end})
	if !strings.Contains(query, "date < $2") || strings.Contains(query, "date >=") {
		t.Errorf("query = %s", query)
	}
	if len(args) != 2 {
		t.Errorf("args = %v", args)
	}
}

// TestExerciseInsertQuery verifies one VALUES tuple per exercise with seven
// placeholders each.
func TestExerciseInsertQuery(t *testing.T) {
	id := uuid.New()
	query, args := exerciseInsertQuery(id, 9, []models.NewExercise{
		{Name: " Squat ", Sets: 3, Reps: 30, RestSeconds: 90, WeightKg: 100},
		{Name: "Lunge", Sets: 2, Reps: 20},
	})

	if !strings.Contains(query, "($1,$2,$3,$4,$5,$6,$7),($8,$9,$10,$11,$12,$13,$14)") {
		t.Errorf("query = %s", query)
	}
	if len(args) != 14 {
		t.Fatalf("got %d args, want 14", len(args))
	}
	if args[0] != id || args[1] != 9 || args[2] != "Squat" || args[9] != "Lunge" {
		t.Errorf("args = %v", args)
	}
}
