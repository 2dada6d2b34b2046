package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/fittrack/internal/store"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered. ds is
// either *storage.DB (local) or *store.HTTPClient (remote via REST API).
func New(ds store.Store, weeklyGoal int, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("fittrack", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("fittrack workout log. Query recorded workout sessions, their exercises, calendar days and dashboard stats. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, weeklyGoal: weeklyGoal, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetRecentWorkouts, Handler: h.getRecentWorkouts},
		server.ServerTool{Tool: toolGetDashboardStats, Handler: h.getDashboardStats},
		server.ServerTool{Tool: toolGetWorkoutsOnDate, Handler: h.getWorkoutsOnDate},
		server.ServerTool{Tool: toolGetSessionExercises, Handler: h.getSessionExercises},
	)

	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds         store.Store
	weeklyGoal int
	log        *slog.Logger
}

var resRecentWorkouts = mcp.NewResource(
	"fittrack://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workout sessions from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)
