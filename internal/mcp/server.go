// Package mcp exposes the query resolver to AI agents over the Model
// Context Protocol.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/legisverde/legisverde/internal/resolver"
	"github.com/legisverde/legisverde/internal/stats"
)

// Version is set via ldflags at build time.
var Version = "dev"

// queryResolver answers one question; failures are encoded in the
// response, never returned as errors.
type queryResolver interface {
	Resolve(ctx context.Context, question string) *resolver.Response
}

// Server wraps an MCP server that exposes legislation query tools.
type Server struct {
	resolver queryResolver
	stats    stats.Provider
	mcp      *server.MCPServer
}

// NewServer creates an MCP server with the given dependencies.
func NewServer(res queryResolver, provider stats.Provider) *Server {
	s := &Server{resolver: res, stats: provider}

	s.mcp = server.NewMCPServer(
		"legisverde",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(consultarTool, s.handleConsultar)
	s.mcp.AddTool(estatisticasTool, s.handleEstatisticas)
}

// Serve starts the MCP server on stdio. Stdout carries MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
