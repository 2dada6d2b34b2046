package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an authenticated owner of workout sessions.
type User struct {
	ID          int    `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

// Name returns the display name, falling back to the local part of the login.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	name, _, _ := strings.Cut(u.Login, "@")
	return name
}

// Session is a stored workout session.
type Session struct {
	ID              uuid.UUID `json:"id"`
	UserID          int       `json:"user_id"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalReps       int       `json:"total_reps"`
	TotalSets       int       `json:"total_sets"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewSession is the payload for inserting a workout session.
type NewSession struct {
	UserID          int       `json:"-"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalReps       int       `json:"total_reps"`
	TotalSets       int       `json:"total_sets"`
	Notes           string    `json:"notes"`
}

// ExerciseRow is a stored exercise belonging to a session.
type ExerciseRow struct {
	ID          int64     `json:"id"`
	SessionID   uuid.UUID `json:"session_id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"exercise_name"`
	Sets        int       `json:"sets"`
	Reps        int       `json:"reps"`
	RestSeconds int       `json:"rest_time_seconds"`
	WeightKg    float64   `json:"weight_kg"`
}

// NewExercise is the payload for batch-inserting exercises of a session.
type NewExercise struct {
	Name        string  `json:"exercise_name"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	RestSeconds int     `json:"rest_time_seconds"`
	WeightKg    float64 `json:"weight_kg"`
}

// SessionQuery filters a session listing. Zero Start/End mean unbounded,
// a zero Limit means no limit.
type SessionQuery struct {
	UserID int
	Start  time.Time
	End    time.Time
	Limit  int
}
