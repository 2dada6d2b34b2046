package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/store"
)

// InsertExercises batch-inserts the exercises of a session owned by userID.
// Returns count inserted.
func (db *DB) InsertExercises(ctx context.Context, sessionID uuid.UUID, userID int, exercises []models.NewExercise) (int64, error) {
	if len(exercises) == 0 {
		return 0, nil
	}

	var owner int
	err := db.Pool.QueryRow(ctx, `SELECT user_id FROM workout_sessions WHERE id = $1`, sessionID).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && owner != userID) {
		return 0, fmt.Errorf("session %s: %w", sessionID, store.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("checking session owner: %w", err)
	}

	query, args := exerciseInsertQuery(sessionID, userID, exercises)
	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting exercises: %w", err)
	}
	return tag.RowsAffected(), nil
}

// exerciseInsertQuery builds one multi-row INSERT for exercises.
func exerciseInsertQuery(sessionID uuid.UUID, userID int, exercises []models.NewExercise) (string, []any) {
	args := make([]any, 0, len(exercises)*7)
	valueStrings := make([]string, 0, len(exercises))

	for i, e := range exercises {
		base := i * 7
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		args = append(args, sessionID, userID, strings.TrimSpace(e.Name), e.Sets, e.Reps, e.RestSeconds, e.WeightKg)
	}
	return `INSERT INTO exercises (session_id, user_id, exercise_name, sets, reps, rest_time_seconds, weight_kg) VALUES ` +
		strings.Join(valueStrings, ","), args
}

// ListExercises returns the exercises of a session in insertion order.
func (db *DB) ListExercises(ctx context.Context, sessionID uuid.UUID, userID int) ([]models.ExerciseRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, session_id, user_id, exercise_name, sets, reps, rest_time_seconds, weight_kg
		 FROM exercises
		 WHERE session_id = $1 AND user_id = $2
		 ORDER BY id ASC`,
		sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseRow
	for rows.Next() {
		var r models.ExerciseRow
		if err := rows.Scan(&r.ID, &r.SessionID, &r.UserID, &r.Name, &r.Sets, &r.Reps, &r.RestSeconds, &r.WeightKg); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
