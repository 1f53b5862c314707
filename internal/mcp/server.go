// ABOUTME: MCP server exposing the notebook to AI agents.
// ABOUTME: Provides tools, resources, and prompts backed by the repository.

package mcp

import (
	"context"

	"github.com/harper/notebook/internal/repo"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

const Version = "1.0.0"

type Server struct {
	server *mcp.Server
	repo   *repo.Repository
	log    zerolog.Logger
}

func NewServer(r *repo.Repository, log zerolog.Logger) *Server {
	s := &Server{repo: r, log: log.With().Str("component", "mcp").Logger()}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "notebook",
			Version: Version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// Serve speaks MCP over stdin and stdout until ctx is done or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info().Msg("serving mcp over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
