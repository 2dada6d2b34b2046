// Package store defines the workout data collaborator the client and the MCP
// server talk to, and a REST implementation of it.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/claude/fittrack/internal/models"
)

// Store persists and queries workout sessions. Both *storage.DB (local) and
// *HTTPClient (remote via REST API) satisfy this interface. The REST
// implementation ignores userID; the server derives it from the caller.
type Store interface {
	CreateSession(ctx context.Context, s models.NewSession) (*models.Session, error)
	InsertExercises(ctx context.Context, sessionID uuid.UUID, userID int, exercises []models.NewExercise) (int64, error)
	DeleteSession(ctx context.Context, id uuid.UUID, userID int) error
	ListSessions(ctx context.Context, q models.SessionQuery) ([]models.Session, error)
	ListExercises(ctx context.Context, sessionID uuid.UUID, userID int) ([]models.ExerciseRow, error)
}

// Identity supplies the signed-in user.
type Identity interface {
	Me(ctx context.Context) (*models.User, error)
}
