// Package mcp exposes FSM rendering as a Model Context Protocol tool.
package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/fsmd"
	"github.com/aretw0/fsmd/internal/logging"
	"github.com/aretw0/fsmd/internal/render"
	"github.com/aretw0/fsmd/pkg/domain"
	"github.com/aretw0/fsmd/pkg/graph"
	"github.com/aretw0/fsmd/pkg/loader"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// FormatsURI is the resource listing the supported output formats.
const FormatsURI = "fsmd://formats"

// Engine renders FSM descriptions.
type Engine interface {
	Encode(ctx context.Context, desc domain.FSMDescription, format string, opts graph.Options) ([]byte, error)
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("fsmd-mcp", strings.TrimSpace(fsmd.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	tool := mcp.NewTool("render_fsm",
		mcp.WithDescription("Render a finite-state machine described in FSMD YAML as a diagram. Text formats (svg, dot, mermaid) are returned as text; png is returned as an image."),
		mcp.WithString("fsm", mcp.Required(), mcp.Description("FSM description in YAML with filename, startstate, states, finalstates and transitions (\"from;to;label\")")),
		mcp.WithString("format", mcp.Description("Output format"), mcp.Enum(domain.Formats...)),
		mcp.WithBoolean("epsilon", mcp.Description("Replace E with ε in transition labels")),
		mcp.WithBoolean("strict", mcp.Description("Reject transitions between undeclared states")),
	)
	s.mcpServer.AddTool(tool, s.handleRender)
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("fsm")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format := request.GetString("format", domain.FormatSVG)
	opts := graph.Options{
		Epsilon: request.GetBool("epsilon", false),
		Strict:  request.GetBool("strict", false),
	}

	desc, err := loader.Parse([]byte(source), "fsm")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid FSM: %v", err)), nil
	}

	out, err := s.engine.Encode(ctx, desc, format, opts)
	if err != nil {
		s.logger.Error("MCP render failed", "format", format, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	if format == domain.FormatPNG {
		return mcp.NewToolResultImage(desc.Filename+".png", base64.StdEncoding.EncodeToString(out), render.ContentType(format)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(FormatsURI, "Supported output formats",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      FormatsURI,
				MIMEType: "text/plain",
				Text:     strings.Join(domain.Formats, "\n"),
			},
		}, nil
	})
}
