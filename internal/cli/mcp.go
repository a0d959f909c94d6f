package cli

import (
	"context"
	"errors"

	"figma-node-tree/internal/tools"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analyze_figma_file tool over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMCP(cmd.Context())
		},
	}
}

func (a *app) runMCP(ctx context.Context) error {
	a.logger.Info("starting Figma MCP server in CLI mode")

	server := tools.NewServer(&tools.Tools{
		Analyzer: a.newAnalyzer(),
		Logger:   a.logger,
	})

	a.logger.Info("Figma MCP server running on stdio")
	err := server.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
