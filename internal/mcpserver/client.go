package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultClientTimeout = 30 * time.Second

// Client calls the bubble tools, either on a Server in the same process or
// on an `infobubble serve` child process.
type Client struct {
	client  *client.Client
	timeout time.Duration
}

// NewInProcessClient connects to s without a transport.
func NewInProcessClient(ctx context.Context, s *Server) (*Client, error) {
	c, err := client.NewInProcessClient(s.MCPServer())
	if err != nil {
		return nil, fmt.Errorf("failed to create in-process client: %w", err)
	}
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start in-process client: %w", err)
	}
	return connect(ctx, c)
}

// NewStdioClient starts command with args and talks to it over its
// stdin and stdout.
func NewStdioClient(ctx context.Context, command string, args ...string) (*Client, error) {
	c, err := client.NewStdioMCPClient(command, nil, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", command, err)
	}
	return connect(ctx, c)
}

func connect(ctx context.Context, c *client.Client) (*Client, error) {
	cl := &Client{client: c, timeout: defaultClientTimeout}
	if err := cl.initialize(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("initialization failed: %w", err)
	}
	return cl, nil
}

// ListTools returns the names of the tools the server offers.
func (c *Client) ListTools(ctx context.Context) ([]string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.ListTools(timeoutCtx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("listing tools failed: %w", err)
	}
	names := make([]string, 0, len(result.Tools))
	for _, t := range result.Tools {
		names = append(names, t.Name)
	}
	return names, nil
}

// CallTool executes a tool and returns the result
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.CallTool(timeoutCtx, req)
	if err != nil {
		return nil, fmt.Errorf("tool call failed: %w", err)
	}
	return result, nil
}

// CallToolText executes a tool and returns its text content. Tool errors
// are returned as errors.
func (c *Client) CallToolText(ctx context.Context, name string, args map[string]any) (string, error) {
	result, err := c.CallTool(ctx, name, args)
	if err != nil {
		return "", err
	}

	var texts []string
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			texts = append(texts, textContent.Text)
		}
	}
	if result.IsError {
		return "", fmt.Errorf("tool error: %s", strings.Join(texts, "; "))
	}
	return strings.Join(texts, "\n"), nil
}

// Layout calls layout_bubble and decodes its result.
func (c *Client) Layout(ctx context.Context, args map[string]any) (Layout, error) {
	var l Layout
	text, err := c.CallToolText(ctx, "layout_bubble", args)
	if err != nil {
		return l, err
	}
	if err := json.Unmarshal([]byte(text), &l); err != nil {
		return l, fmt.Errorf("unexpected layout_bubble result: %w", err)
	}
	return l, nil
}

// Close closes the connection
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// initialize performs the MCP protocol handshake
func (c *Client) initialize(ctx context.Context) error {
	var req mcp.InitializeRequest
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{
		Name:    "infobubble-cli",
		Version: "1.0.0",
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.client.Initialize(timeoutCtx, req)
	return err
}
