package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/fittrack/internal/models"
)

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	end := time.Now()
	sessions, err := h.ds.ListSessions(ctx, models.SessionQuery{
		UserID: UserIDFromContext(ctx),
		Start:  end.AddDate(0, 0, -14),
		End:    end,
	})
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []models.Session{}
	}

	data, err := json.Marshal(sessions)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
