// Package tools exposes the analyzer as an MCP tool.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"figma-node-tree/internal/models"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "figma-mcp-server"
	ServerVersion = "1.0.0"

	AnalyzeToolName = "analyze_figma_file"
)

type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResult, error)
}

type Tools struct {
	Analyzer Analyzer
	Logger   *slog.Logger
}

var errInvalidDepth = errors.New("depth must be an integer")

// Depth is decoded as any JSON number so a fractional value reaches the
// handler and is reported as a tool error.
type analyzeArgs struct {
	FigmaURL string   `json:"figmaUrl" jsonschema:"The URL of the Figma file to analyze"`
	Depth    *float64 `json:"depth,omitempty" jsonschema:"Optional depth parameter to limit the node tree depth"`
}

func (a analyzeArgs) depth() (*int, error) {
	if a.Depth == nil {
		return nil, nil
	}
	d := *a.Depth
	if d != math.Trunc(d) || d < math.MinInt32 || d > math.MaxInt32 {
		return nil, fmt.Errorf("%w, got %v", errInvalidDepth, d)
	}
	depth := int(d)
	return &depth, nil
}

// NewServer builds an MCP server with every tool registered.
func NewServer(t *Tools) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, nil)
	t.Register(server)
	return server
}

func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        AnalyzeToolName,
		Description: "Analyze a Figma file structure to understand its nodes and hierarchy",
	}, t.handleAnalyze)
}

func (t *Tools) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	args analyzeArgs,
) (*mcp.CallToolResult, any, error) {
	depth, err := args.depth()
	if err != nil {
		return errorResult(err), nil, nil
	}

	result, err := t.Analyzer.Analyze(ctx, models.AnalyzeRequest{
		FigmaURL: args.FigmaURL,
		Depth:    depth,
	})
	if err != nil {
		t.logger().Error("error analyzing Figma file", "url", args.FigmaURL, "error", err)
		return errorResult(err), nil, nil
	}

	tree, err := json.MarshalIndent(result.Tree, "", "  ")
	if err != nil {
		return errorResult(err), nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Successfully analyzed Figma file: %s", args.FigmaURL)},
			&mcp.TextContent{Text: fmt.Sprintf("File ID: %s", result.FileID)},
			&mcp.TextContent{Text: fmt.Sprintf("Node ID: %s", result.NodeID)},
			&mcp.TextContent{Text: "Node Tree Structure:"},
			&mcp.TextContent{Text: string(tree)},
		},
	}, nil, nil
}

func (t *Tools) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return t.Logger
}

// errorResult reports a failure as tool output rather than a protocol error.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Error analyzing Figma file: %s", err)},
		},
		IsError: true,
	}
}
