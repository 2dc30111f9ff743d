// Package mcp exposes a design.Session over the Model Context Protocol:
// resources for files, nodes and cache statistics, tools for search, active
// file handling, code generation and image export, and two prompts.
package mcp

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"figmcp/internal/design"
)

const serverName = "figmcp"

const instructions = `figmcp reads Figma files through the Figma REST API.

Nodes are addressed as figma://node/{fileKey}/{nodeId}, {fileKey}/{nodeId}, or a bare {nodeId} resolved against the active file.
Use set_active_file once, then find_by_name or list_components to discover node ids.
Results are cached for the lifetime of the server; restart it to see remote edits.`

// Server is the MCP facade over a design session.
type Server struct {
	session *design.Session
	logger  *slog.Logger
	version string
	mcp     *server.MCPServer
}

// NewServer creates the facade and registers every tool, resource and prompt.
func NewServer(version string, session *design.Session, logger *slog.Logger) *Server {
	s := &Server{
		session: session,
		logger:  logger,
		version: version,
	}

	s.mcp = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve speaks MCP over in/out until ctx is cancelled or in is closed.
// Nothing else may write to out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("MCP server starting",
		"version", s.version,
		"activeFile", s.session.Active(),
	)

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	err := stdio.Listen(ctx, in, out)
	if err != nil && ctx.Err() == nil {
		s.logger.Error("MCP server stopped", "error", err.Error())
		return err
	}

	s.logger.Info("MCP server stopped")
	return nil
}
