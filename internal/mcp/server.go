// ABOUTME: MCP server setup for the vital metrics store.
// ABOUTME: Wraps the MCP server with storage and analytics access.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openvital/vital/internal/analytics"
	"github.com/openvital/vital/internal/config"
	"github.com/openvital/vital/internal/storage"
)

// Server wraps the MCP server with storage and engine access.
type Server struct {
	mcpServer *mcp.Server
	store     storage.Store
	engine    *analytics.Engine
	cfg       *config.Config
}

// NewServer creates an MCP server exposing metric logging and analytics.
func NewServer(store storage.Store, cfg *config.Config) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "vital",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		engine:    analytics.New(store),
		cfg:       cfg,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
