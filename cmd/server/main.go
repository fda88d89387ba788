// ABOUTME: Main entry point for the locstream MCP server with stdio transport
// ABOUTME: Initializes the storage engine and registers all query tools
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/locstream/internal/config"
	"github.com/harper/locstream/internal/mcp"
	"github.com/harper/locstream/internal/storage/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	engine := sqlite.NewEngine(cfg.DBPath)
	if err := engine.Init(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer func() { _ = engine.Close() }()

	server := mcpserver.NewMCPServer(
		"Locstream Location Store",
		"0.1.0",
	)

	mcp.RegisterTools(server, engine)

	log.Println("locstream MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
