// Package mcpserver exposes the NBA tool dispatcher and roster catalogs over MCP.
package mcpserver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aatrey56/nba-mcp/internal/catalog"
	"github.com/aatrey56/nba-mcp/internal/nba"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	Name    = "nba-mcp"
	Version = "0.1.0"
)

// Rosters supplies the read-only roster resources.
type Rosters interface {
	Players(ctx context.Context) ([]catalog.Player, error)
	ActivePlayers(ctx context.Context) ([]catalog.Player, error)
	Teams() ([]catalog.Team, error)
}

type ToolInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []nba.Param `json:"params"`
}

type Server struct {
	mcp        *mcp.Server
	dispatcher *nba.Dispatcher
	rosters    Rosters
	logger     *slog.Logger
	registry   []ToolInfo
}

// New registers every dispatcher operation as a tool and the rosters as resources.
func New(d *nba.Dispatcher, rosters Rosters, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    Name,
				Version: Version,
			},
			nil,
		),
		dispatcher: d,
		rosters:    rosters,
		logger:     logger,
		registry:   make([]ToolInfo, 0, 16),
	}
	for _, op := range d.Operations() {
		s.addTool(op)
	}
	s.addResources()
	return s
}

func (s *Server) MCP() *mcp.Server { return s.mcp }

// Tools lists registered tools in registration order.
func (s *Server) Tools() []ToolInfo {
	return append([]ToolInfo(nil), s.registry...)
}

// RunStdio serves MCP over stdin/stdout until ctx ends or the client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.run(ctx, "stdio", &mcp.StdioTransport{})
}

func (s *Server) run(ctx context.Context, name string, transport mcp.Transport) error {
	s.logger.Info("MCP server running", "transport", name, "tools", len(s.registry))
	err := s.mcp.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
