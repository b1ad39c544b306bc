// Package mcpserver exposes headless bubble rendering as MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"infobubble/internal/bubble"
	"infobubble/internal/config"
	"infobubble/internal/snapshot"
	"infobubble/pkg/logging"
)

const subsystem = "MCP"

// Server serves the bubble tools over MCP.
type Server struct {
	cfg config.Config
	mcp *server.MCPServer
}

// NewServer registers the bubble tools. cfg supplies the bubble option
// defaults the tools start from.
func NewServer(cfg config.Config, version string) *Server {
	s := &Server{
		cfg: cfg,
		mcp: server.NewMCPServer(
			"infobubble",
			version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	for _, t := range s.tools() {
		s.mcp.AddTool(t.Tool, t.Handler)
	}
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio answers JSON-RPC requests read from in until ctx is done or in
// is exhausted.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	logging.Info(subsystem, "serving %d tools on stdio", len(s.tools()))
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

func (s *Server) tools() []server.ServerTool {
	args := []mcp.ToolOption{
		mcp.WithString("content",
			mcp.Description("Bubble content as markup, e.g. <b>Depot</b><br>Open 9-5. Ignored when tabs are given."),
		),
		mcp.WithString("tabs",
			mcp.Description(`JSON array of tabs, e.g. [{"label":"One","content":"first"}]`),
		),
		mcp.WithString("options",
			mcp.Description(`JSON object of bubble options, e.g. {"shadowStyle":2,"arrowStyle":1}`),
		),
		mcp.WithNumber("tab",
			mcp.Description("0-based tab to activate"),
			mcp.DefaultNumber(0),
		),
		mcp.WithNumber("width",
			mcp.Description("Viewport width in cells"),
			mcp.Min(1),
		),
		mcp.WithNumber("height",
			mcp.Description("Viewport height in cells"),
			mcp.Min(1),
		),
	}

	return []server.ServerTool{
		{
			Tool: mcp.NewTool("render_bubble",
				append([]mcp.ToolOption{
					mcp.WithDescription("Render a map frame with an open bubble as plain text"),
				}, args...)...,
			),
			Handler: s.handleRenderBubble,
		},
		{
			Tool: mcp.NewTool("layout_bubble",
				append([]mcp.ToolOption{
					mcp.WithDescription("Resolve the size and placement of a bubble and return them as JSON"),
				}, args...)...,
			),
			Handler: s.handleLayoutBubble,
		},
	}
}

func (s *Server) handleRenderBubble(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.render(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(res.Frame), nil
}

func (s *Server) handleLayoutBubble(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.render(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonData, err := json.MarshalIndent(layoutOf(res), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format layout: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (s *Server) render(request mcp.CallToolRequest) (snapshot.Result, error) {
	cfg, opts, err := s.parseRequest(request)
	if err != nil {
		return snapshot.Result{}, err
	}
	res, err := snapshot.Render(cfg, opts)
	if err != nil {
		logging.Warn(subsystem, "%s failed: %v", request.Params.Name, err)
		return snapshot.Result{}, err
	}
	return res, nil
}

// parseRequest turns tool arguments into a one marker configuration.
func (s *Server) parseRequest(request mcp.CallToolRequest) (config.Config, snapshot.Options, error) {
	cfg := s.cfg
	marker := config.MarkerDefinition{
		Name:    "bubble",
		Content: request.GetString("content", ""),
	}
	if cfg.Map.Center != nil {
		marker.Lat, marker.Lng = cfg.Map.Center.Lat, cfg.Map.Center.Lng
	}

	if raw := request.GetString("tabs", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &marker.Tabs); err != nil {
			return cfg, snapshot.Options{}, fmt.Errorf("tabs must be a JSON array of {label, content}: %w", err)
		}
	}
	if marker.Content == "" && len(marker.Tabs) == 0 {
		return cfg, snapshot.Options{}, fmt.Errorf("content or tabs is required")
	}
	cfg.Markers = []config.MarkerDefinition{marker}

	opts := snapshot.Options{
		Tab:    request.GetInt("tab", 0),
		Width:  request.GetInt("width", 0),
		Height: request.GetInt("height", 0),
	}
	if raw := request.GetString("options", ""); raw != "" {
		var values map[string]any
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			return cfg, snapshot.Options{}, fmt.Errorf("options must be a JSON object: %w", err)
		}
		opts.Values = make(bubble.Values, len(values))
		for k, v := range values {
			opts.Values[bubble.Option(k)] = v
		}
	}
	return cfg, opts, nil
}
