package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/stats"
)

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.ParseInLocation(stats.DayLayout, s, time.Local)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetRecentWorkouts = mcp.NewTool("get_recent_workouts",
	mcp.WithDescription("List recorded workout sessions, newest first. Each session has a title, duration in minutes, total reps and sets, and notes."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions. Defaults to 20.")),
)

var toolGetDashboardStats = mcp.NewTool("get_dashboard_stats",
	mcp.WithDescription("Totals over the five most recent sessions plus weekly goal progress (workouts in the last 7 days against the goal)."),
	mcp.WithNumber("weekly_goal", mcp.Description("Workouts per week to measure against. Defaults to the configured goal.")),
)

var toolGetWorkoutsOnDate = mcp.NewTool("get_workouts_on_date",
	mcp.WithDescription("List the workout sessions recorded on one calendar day."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Day as YYYY-MM-DD")),
)

var toolGetSessionExercises = mcp.NewTool("get_session_exercises",
	mcp.WithDescription("List the exercises of a workout session with sets, reps, rest time and weight."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session UUID as returned by get_recent_workouts")),
)

// --- Tool handlers ---

func (h *handlers) getRecentWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	limit := req.GetInt("limit", 20)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	sessions, err := h.ds.ListSessions(ctx, models.SessionQuery{
		UserID: UserIDFromContext(ctx),
		Start:  start,
		End:    end,
		Limit:  limit,
	})
	if err != nil {
		h.log.Error("mcp get_recent_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if sessions == nil {
		sessions = []models.Session{}
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDashboardStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goal := req.GetInt("weekly_goal", h.weeklyGoal)

	sessions, err := h.ds.ListSessions(ctx, models.SessionQuery{
		UserID: UserIDFromContext(ctx),
		Limit:  stats.RecentLimit,
	})
	if err != nil {
		h.log.Error("mcp get_dashboard_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats.ComputeDashboard(sessions, time.Now(), goal))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutsOnDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateStr, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	day, err := time.ParseInLocation(stats.DayLayout, dateStr, time.Local)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	sessions, err := h.ds.ListSessions(ctx, models.SessionQuery{
		UserID: UserIDFromContext(ctx),
		Start:  day,
		End:    day.AddDate(0, 0, 1),
	})
	if err != nil {
		h.log.Error("mcp get_workouts_on_date", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	onDay := stats.NewCalendar(sessions, time.Local).On(day)
	if onDay == nil {
		onDay = []models.Session{}
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"date":     dateStr,
		"sessions": onDay,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid session_id"), nil
	}

	rows, err := h.ds.ListExercises(ctx, id, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_session_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if rows == nil {
		rows = []models.ExerciseRow{}
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
