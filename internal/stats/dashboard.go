// Package stats derives dashboard figures and calendar views from stored
// workout sessions.
package stats

import (
	"sort"
	"time"

	"github.com/claude/fittrack/internal/models"
)

const (
	// DefaultWeeklyGoal is the number of workouts per week aimed for.
	DefaultWeeklyGoal = 5
	// RecentLimit is how many of the latest sessions the dashboard covers.
	RecentLimit = 5
	// RecentShown is how many of those are listed individually.
	RecentShown = 3
)

// Dashboard is the summary shown on the home screen.
type Dashboard struct {
	TotalWorkouts  int              `json:"total_workouts"`
	TotalReps      int              `json:"total_reps"`
	TotalSets      int              `json:"total_sets"`
	TotalMinutes   int              `json:"total_minutes"`
	WeeklyWorkouts int              `json:"weekly_workouts"`
	WeeklyGoal     int              `json:"weekly_goal"`
	WeeklyProgress float64          `json:"weekly_progress"`
	GoalReached    bool             `json:"goal_reached"`
	Recent         []models.Session `json:"recent"`
}

// ComputeDashboard summarises the latest RecentLimit sessions. Weekly figures
// count those created within the 7 days before now; progress is capped at 100.
// A non-positive goal falls back to DefaultWeeklyGoal.
func ComputeDashboard(sessions []models.Session, now time.Time, goal int) Dashboard {
	if goal <= 0 {
		goal = DefaultWeeklyGoal
	}
	latest := make([]models.Session, len(sessions))
	copy(latest, sessions)
	sort.SliceStable(latest, func(i, j int) bool {
		return created(latest[i]).After(created(latest[j]))
	})
	if len(latest) > RecentLimit {
		latest = latest[:RecentLimit]
	}

	d := Dashboard{TotalWorkouts: len(latest), WeeklyGoal: goal}
	weekAgo := now.AddDate(0, 0, -7)
	for _, s := range latest {
		d.TotalReps += s.TotalReps
		d.TotalSets += s.TotalSets
		d.TotalMinutes += s.DurationMinutes
		if !created(s).Before(weekAgo) {
			d.WeeklyWorkouts++
		}
	}
	d.WeeklyProgress = float64(d.WeeklyWorkouts) / float64(goal) * 100
	if d.WeeklyProgress > 100 {
		d.WeeklyProgress = 100
	}
	d.GoalReached = d.WeeklyWorkouts >= goal

	shown := min(len(latest), RecentShown)
	d.Recent = latest[:shown:shown]
	return d
}

func created(s models.Session) time.Time {
	if s.CreatedAt.IsZero() {
		return s.Date
	}
	return s.CreatedAt
}
