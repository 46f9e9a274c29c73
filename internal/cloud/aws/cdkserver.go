// Package aws provides the session against the AWS CDK guidance MCP server.
// The server's tools are surfaced to the model during code generation and
// executed on its behalf.
package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kervan-cloud/kervan-cli/internal/llm"
	"github.com/kervan-cloud/kervan-cli/internal/logger"
)

const (
	serverCommand = "uvx"
	serverPackage = "awslabs.cdk-mcp-server@latest"
)

// CdkServer holds one session against the CDK MCP server.
type CdkServer struct {
	client *client.StdioMCPClient
	logger *logger.Logger
}

// NewCdkServer spawns the CDK MCP server and initializes the session.
func NewCdkServer(ctx context.Context, log *logger.Logger) (*CdkServer, error) {
	env := []string{"FASTMCP_LOG_LEVEL=ERROR"}
	c, err := client.NewStdioMCPClient(serverCommand, env, serverPackage)
	if err != nil {
		return nil, fmt.Errorf("failed to start CDK MCP server: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "kervan", Version: "0.1.0"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize CDK MCP session: %w", err)
	}

	return &CdkServer{client: c, logger: log}, nil
}

// Tools lists the server's tools in the shape the model API expects.
func (s *CdkServer) Tools(ctx context.Context) ([]llm.Tool, error) {
	res, err := s.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list CDK MCP tools: %w", err)
	}

	tools := make([]llm.Tool, 0, len(res.Tools))
	for _, t := range res.Tools {
		tools = append(tools, llm.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	s.logger.Debugf("CDK MCP server exposes %d tools", len(tools))
	return tools, nil
}

// CallTool runs one tool and returns its concatenated text output.
func (s *CdkServer) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := s.client.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("tool %s failed: %w", name, err)
	}

	var b strings.Builder
	for _, content := range res.Content {
		if text, ok := contentText(content); ok {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// Close tears down the MCP session and its subprocess.
func (s *CdkServer) Close() error {
	return s.client.Close()
}

func contentText(content mcp.Content) (string, bool) {
	switch c := content.(type) {
	case mcp.TextContent:
		return c.Text, true
	case *mcp.TextContent:
		return c.Text, true
	}
	return "", false
}
