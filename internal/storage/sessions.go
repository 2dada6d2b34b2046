package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/store"
)

const sessionColumns = `id, user_id, title, date, duration_minutes, total_reps, total_sets, notes, created_at`

// CreateSession inserts a workout session and returns the stored row.
func (db *DB) CreateSession(ctx context.Context, s models.NewSession) (*models.Session, error) {
	row := db.Pool.QueryRow(ctx,
		`INSERT INTO workout_sessions (id, user_id, title, date, duration_minutes, total_reps, total_sets, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING `+sessionColumns,
		uuid.New(), s.UserID, s.Title, s.Date, s.DurationMinutes, s.TotalReps, s.TotalSets, s.Notes)

	sess, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return sess, nil
}

// DeleteSession removes a session owned by userID together with its exercises.
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// ListSessions returns the sessions of q.UserID, newest first.
func (db *DB) ListSessions(ctx context.Context, q models.SessionQuery) ([]models.Session, error) {
	query, args := sessionListQuery(q)
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// sessionListQuery builds the filtered listing for q. Start is inclusive,
// End exclusive.
func sessionListQuery(q models.SessionQuery) (string, []any) {
	where := []string{"user_id = $1"}
	args := []any{q.UserID}
	if !q.Start.IsZero() {
		args = append(args, q.Start)
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
	}
	if !q.End.IsZero() {
		args = append(args, q.End)
		where = append(where, fmt.Sprintf("date < $%d", len(args)))
	}
	query := `SELECT ` + sessionColumns + ` FROM workout_sessions WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY date DESC, created_at DESC`
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return query, args
}

func scanSession(row pgx.Row) (*models.Session, error) {
	var s models.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.Title, &s.Date, &s.DurationMinutes,
		&s.TotalReps, &s.TotalSets, &s.Notes, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
