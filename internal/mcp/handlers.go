// ABOUTME: MCP tool handler implementations for the locstream server
// ABOUTME: Translates tool calls into storage engine queries
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/locstream/internal/models"
	"github.com/harper/locstream/internal/storage"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	engine storage.Engine
}

// LocationStats handles the location_stats tool.
func (h *Handlers) LocationStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.engine.GetStats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}
	return jsonResult(stats)
}

// ListSessions handles the list_sessions tool.
func (h *Handlers) ListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := request.GetString("user_id", "")
	activeOnly := request.GetBool("active_only", false)

	var (
		sessions []*models.Session
		err      error
	)
	if activeOnly {
		sessions, err = h.engine.GetActiveSessions(userID)
	} else {
		sessions, err = h.engine.GetSessions(userID)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing sessions failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// QueryLocations handles the query_locations tool.
func (h *Handlers) QueryLocations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := request.RequireFloat("start_time")
	if err != nil {
		return mcp.NewToolResultError("start_time argument is required and must be a number"), nil
	}

	r := models.TimeRange{Start: time.Unix(int64(start), 0)}
	if end := request.GetFloat("end_time", 0); end > 0 {
		endTime := time.Unix(int64(end), 0)
		r.End = &endTime
	}

	page, err := h.engine.GetLocationsInRange(r, models.Pagination{
		Limit:  request.GetInt("limit", 0),
		Offset: request.GetInt("offset", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("location query failed: %v", err)), nil
	}
	return jsonResult(page)
}

// SessionLocations handles the session_locations tool.
func (h *Handlers) SessionLocations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireFloat("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a number"), nil
	}

	page, err := h.engine.GetSessionLocations(int64(sessionID), models.Pagination{
		Limit:  request.GetInt("limit", 0),
		Offset: request.GetInt("offset", 0),
	})
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("session %d not found", int64(sessionID))), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session location query failed: %v", err)), nil
	}
	return jsonResult(page)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
