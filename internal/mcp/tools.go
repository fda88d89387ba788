// ABOUTME: MCP tool definitions and registration for the locstream server
// ABOUTME: Exposes the local storage query surface over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/locstream/internal/storage"
)

// RegisterTools registers all MCP tools with the server.
func RegisterTools(server *mcpserver.MCPServer, engine storage.Engine) *Handlers {
	handlers := &Handlers{engine: engine}

	server.AddTool(mcp.Tool{
		Name:        "location_stats",
		Description: "Get aggregate statistics for the local location store: session and location counts, unsynced backlog, and on-disk size.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.LocationStats)

	server.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List tracking sessions, newest first. Optionally filter by user or restrict to active (not yet ended) sessions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "Only sessions owned by this user",
				},
				"active_only": map[string]interface{}{
					"type":        "boolean",
					"description": "Only sessions without an end time (default false)",
					"default":     false,
				},
			},
		},
	}, handlers.ListSessions)

	server.AddTool(mcp.Tool{
		Name:        "query_locations",
		Description: "Query location points by time range, ascending by timestamp, with pagination metadata.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"start_time": map[string]interface{}{
					"type":        "number",
					"description": "Range start as Unix seconds (inclusive)",
				},
				"end_time": map[string]interface{}{
					"type":        "number",
					"description": "Optional range end as Unix seconds (inclusive)",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Page size (default 1000)",
					"default":     1000,
				},
				"offset": map[string]interface{}{
					"type":        "number",
					"description": "Page offset (default 0)",
					"default":     0,
				},
			},
			Required: []string{"start_time"},
		},
	}, handlers.QueryLocations)

	server.AddTool(mcp.Tool{
		Name:        "session_locations",
		Description: "Get the location points recorded during one session, ascending by timestamp.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "number",
					"description": "Local session id",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Page size (default 1000)",
					"default":     1000,
				},
				"offset": map[string]interface{}{
					"type":        "number",
					"description": "Page offset (default 0)",
					"default":     0,
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.SessionLocations)

	return handlers
}
