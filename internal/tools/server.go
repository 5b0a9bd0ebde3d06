// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/nih-reporter/pkg/types"
)

// NewServer returns an MCP server exposing every tool in reg.
func NewServer(info types.ServerInfo, reg *Registry) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: info.Name, Version: info.Version}, nil)
	for _, t := range reg.Tools() {
		server.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, toolHandler(reg, t.Name))
	}
	return server
}

func toolHandler(reg *Registry, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw []byte
		if req.Params != nil {
			raw = req.Params.Arguments
		}
		text, isError := Render(reg.Call(ctx, name, raw))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
			IsError: isError,
		}, nil
	}
}

// ServeStdio runs server over stdin/stdout until ctx is done or the client
// disconnects.
func ServeStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
