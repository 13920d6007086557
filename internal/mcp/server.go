// ABOUTME: MCP server setup for the athlete performance tracker.
// ABOUTME: Wraps the MCP server around the tracker service and locale resolver.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/athlete/internal/i18n"
	"github.com/harperreed/athlete/internal/tracker"
)

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	svc       *tracker.Service
	resolver  *i18n.Resolver
}

// NewServer creates a new MCP server over svc. A nil resolver uses the
// embedded locale tables.
func NewServer(svc *tracker.Service, resolver *i18n.Resolver) (*Server, error) {
	if resolver == nil {
		resolver = i18n.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "athlete",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
		resolver:  resolver,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
