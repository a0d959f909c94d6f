package cli

import (
	"context"

	"figma-node-tree/internal/api"
	"figma-node-tree/internal/manifest"

	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runHTTP(cmd.Context())
		},
	}
}

func (a *app) runHTTP(ctx context.Context) error {
	if a.cfg.Figma.APIKey == "" {
		a.logger.Warn("FIGMA_API_KEY is not set; /analyze will fail until it is configured")
	}
	server := api.NewServer(a.cfg, a.newAnalyzer(), manifest.NewLoader(a.cfg.Manifest.Path), a.logger)
	return server.Serve(ctx)
}
