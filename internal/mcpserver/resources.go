package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	PlayersURI       = "nba://players"
	ActivePlayersURI = "nba://active_players"
	TeamsURI         = "nba://teams"
)

func (s *Server) addResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        "players",
		Title:       "All NBA Players",
		Description: "Get a list of all NBA players.",
		MIMEType:    "application/json",
		URI:         PlayersURI,
	}, s.rosterHandler(func(ctx context.Context) (any, error) {
		return s.rosters.Players(ctx)
	}))

	s.mcp.AddResource(&mcp.Resource{
		Name:        "active_players",
		Title:       "Active NBA Players",
		Description: "Get a list of all active NBA players.",
		MIMEType:    "application/json",
		URI:         ActivePlayersURI,
	}, s.rosterHandler(func(ctx context.Context) (any, error) {
		return s.rosters.ActivePlayers(ctx)
	}))

	s.mcp.AddResource(&mcp.Resource{
		Name:        "teams",
		Title:       "NBA Teams",
		Description: "Get a list of all NBA teams.",
		MIMEType:    "application/json",
		URI:         TeamsURI,
	}, s.rosterHandler(func(context.Context) (any, error) {
		return s.rosters.Teams()
	}))
}

// rosterHandler reports load failures as resource read errors; rosters have
// no error payload of their own.
func (s *Server) rosterHandler(load func(context.Context) (any, error)) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("resource URI is required")
		}
		uri := req.Params.URI

		list, err := load(ctx)
		if err != nil {
			s.logger.Warn("resource read failed", "uri", uri, "error", err)
			return nil, err
		}
		data, err := json.Marshal(list)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", uri, err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
