// Package aliyun provides the Alibaba Cloud provider session used to extract
// VPC configuration. The provider is reached through the alibaba-cloud-ops
// MCP server spawned as a subprocess; responses come back as tool-call text.
package aliyun

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kervan-cloud/kervan-cli/internal/llm"
	"github.com/kervan-cloud/kervan-cli/internal/logger"
	"github.com/kervan-cloud/kervan-cli/internal/vpc"
)

const (
	serverCommand = "uvx"
	serverPackage = "alibaba-cloud-ops-mcp-server@latest"

	describeVpcsTool      = "VPC_DescribeVpcs"
	describeVSwitchesTool = "VPC_DescribeVSwitches"
)

// Provider holds one session against the Alibaba Cloud MCP server.
type Provider struct {
	client *client.StdioMCPClient
	inv    llm.Invoker
	logger *logger.Logger
}

// NewProvider spawns the MCP server and initializes the session. Credentials
// are passed through the server's environment; they may be empty, in which
// case tool calls fail and extraction degrades to mock data.
func NewProvider(ctx context.Context, accessKeyID, accessKeySecret string, inv llm.Invoker, log *logger.Logger) (*Provider, error) {
	env := []string{
		"ALIBABA_CLOUD_ACCESS_KEY_ID=" + accessKeyID,
		"ALIBABA_CLOUD_ACCESS_KEY_SECRET=" + accessKeySecret,
	}
	c, err := client.NewStdioMCPClient(serverCommand, env, serverPackage)
	if err != nil {
		return nil, fmt.Errorf("failed to start Alibaba Cloud MCP server: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "kervan", Version: "0.1.0"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize Alibaba Cloud MCP session: %w", err)
	}

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to list Alibaba Cloud MCP tools: %w", err)
	}
	log.Infof("Connected to Alibaba Cloud MCP server with %d tools", len(tools.Tools))

	return &Provider{client: c, inv: inv, logger: log}, nil
}

// GetVpcInfo fetches and normalizes one VPC. A *vpc.DegradedError signals
// that only mock data would be available; the caller makes that substitution.
func (p *Provider) GetVpcInfo(ctx context.Context, vpcID, region string) (*vpc.Vpc, error) {
	args := map[string]any{"RegionId": region}
	if vpcID != "" {
		args["VpcId"] = vpcID
	}
	raw, err := p.callTool(ctx, describeVpcsTool, args)
	if err != nil {
		return nil, &vpc.DegradedError{Reason: "DescribeVpcs call failed", Err: err}
	}
	p.logger.Debugf("Raw VPC response received: %d characters", len(raw))

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		return vpc.NormalizeMap(payload, vpcID, region)
	}

	// Not structured JSON; hand the text to the model with a bounded budget.
	p.logger.Info("Raw response is not JSON, using LLM parsing...")
	pctx, cancel := context.WithTimeout(ctx, vpc.ParseTimeout)
	defer cancel()
	return vpc.ParseVpcText(pctx, p.inv, raw, vpcID, region)
}

// ListVpcs returns the raw decoded VPC listing for a region. Non-JSON
// responses are wrapped under a raw_response key.
func (p *Provider) ListVpcs(ctx context.Context, region string) (map[string]any, error) {
	raw, err := p.callTool(ctx, describeVpcsTool, map[string]any{"RegionId": region})
	if err != nil {
		return nil, fmt.Errorf("failed to list VPCs: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return map[string]any{"raw_response": raw}, nil
	}
	return payload, nil
}

// GetVSwitches fetches subnet detail for a VPC. Parsing is best-effort: a
// response that cannot be structured yields an empty slice.
func (p *Provider) GetVSwitches(ctx context.Context, vpcID, region string) ([]vpc.Subnet, error) {
	raw, err := p.callTool(ctx, describeVSwitchesTool, map[string]any{
		"VpcId":    vpcID,
		"RegionId": region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get VSwitches: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		if subnets, ok := vpc.NormalizeSubnets(payload); ok {
			return subnets, nil
		}
	}
	// Not the documented object shape; hand the text to the model.
	pctx, cancel := context.WithTimeout(ctx, vpc.ParseTimeout)
	defer cancel()
	return vpc.ParseSubnetsText(pctx, p.inv, raw), nil
}

// Close tears down the MCP session and its subprocess.
func (p *Provider) Close() error {
	return p.client.Close()
}

func (p *Provider) callTool(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := p.client.CallTool(ctx, req)
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

func contentText(content mcp.Content) (string, bool) {
	switch c := content.(type) {
	case mcp.TextContent:
		return c.Text, true
	case *mcp.TextContent:
		return c.Text, true
	}
	return "", false
}
