package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aatrey56/nba-mcp/internal/nba"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tidwall/gjson"
)

func (s *Server) addTool(op nba.Operation) {
	s.registry = append(s.registry, ToolInfo{Name: op.Name, Description: op.Description, Params: op.Params})
	s.mcp.AddTool(&mcp.Tool{
		Name:        op.Name,
		Description: op.Description,
		InputSchema: inputSchema(op),
	}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		args, err := decodeArgs(raw)
		if err != nil {
			return toolResult(s.dispatcher.Reject(op.Name, err)), nil
		}
		return toolResult(s.dispatcher.Call(ctx, op.Name, args)), nil
	})
}

// inputSchema declares every parameter as a required string.
func inputSchema(op nba.Operation) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(op.Params)),
		Required:   make([]string, 0, len(op.Params)),
	}
	for _, p := range op.Params {
		schema.Properties[p.Name] = &jsonschema.Schema{Type: "string", Description: p.Description}
		schema.Required = append(schema.Required, p.Name)
	}
	return schema
}

// decodeArgs flattens tool arguments to strings. Numbers and booleans keep their
// JSON text so an unquoted player_id of 2544 reaches the provider as "2544".
func decodeArgs(raw json.RawMessage) (nba.Args, error) {
	args := nba.Args{}
	if len(raw) == 0 || string(raw) == "null" {
		return args, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	for name, value := range fields {
		v := gjson.ParseBytes(value)
		switch v.Type {
		case gjson.String:
			args[name] = v.Str
		case gjson.Number, gjson.True, gjson.False:
			args[name] = v.Raw
		default:
			return nil, fmt.Errorf("argument %s must be a string", name)
		}
	}
	return args, nil
}

func toolResult(res nba.Result) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: res.Failed(),
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res.Payload)},
		},
	}
}
