package api

import (
	"context"
	"testing"

	"figma-node-tree/internal/analyzer"
	"figma-node-tree/internal/config"
	"figma-node-tree/internal/manifest"
	"figma-node-tree/internal/models"
	"figma-node-tree/internal/testutil"
)

type stubFetcher struct {
	tree  models.Node
	err   error
	calls int
	depth *int
}

func (f *stubFetcher) NodeTree(_ context.Context, _, _ string, depth *int) (models.Node, error) {
	f.calls++
	f.depth = depth
	return f.tree, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Figma: config.FigmaConfig{APIKey: "test-key"},
		HTTP:  config.HTTPConfig{Port: 3000},
	}
}

func newTestServer(t *testing.T, cfg *config.Config, fetcher analyzer.TreeFetcher) *Server {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	a := analyzer.New(analyzer.Config{
		APIKey:  cfg.Figma.APIKey,
		Fetcher: fetcher,
		Logger:  logger,
	})
	return NewServer(cfg, a, manifest.NewLoader(cfg.Manifest.Path), logger)
}
