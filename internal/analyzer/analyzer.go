// Package analyzer holds the one operation both front-ends expose: resolve
// a Figma link and return the simplified node tree behind it.
package analyzer

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"figma-node-tree/internal/figma"
	"figma-node-tree/internal/models"

	"github.com/google/uuid"
)

type TreeFetcher interface {
	NodeTree(ctx context.Context, fileID, nodeID string, depth *int) (models.Node, error)
}

type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger

	// Fetcher overrides the Figma client built from APIKey and BaseURL.
	Fetcher TreeFetcher
}

type Analyzer struct {
	apiKey  string
	fetcher TreeFetcher
	logger  *slog.Logger
}

func New(cfg Config) *Analyzer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = figma.NewClient(cfg.APIKey,
			figma.WithBaseURL(cfg.BaseURL),
			figma.WithHTTPClient(cfg.HTTPClient),
		)
	}

	return &Analyzer{
		apiKey:  cfg.APIKey,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Analyze checks the credential, validates the link, performs a single upstream fetch and
// returns the simplified tree. Errors match the sentinels in package figma.
func (a *Analyzer) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResult, error) {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := a.logger.With("request_id", requestID)

	if a.apiKey == "" {
		logger.Error("figma api key is not configured")
		return nil, figma.ErrMissingCredential
	}

	ref, err := figma.ExtractIDs(req.Target())
	if err != nil {
		logger.Warn("rejected figma url", "url", req.Target(), "error", err)
		return nil, err
	}
	if ref.FileID == "" {
		return nil, figma.ErrMissingFileID
	}
	if !ref.HasNodeID() {
		return nil, figma.ErrMissingNodeID
	}

	start := time.Now()
	tree, err := a.fetcher.NodeTree(ctx, ref.FileID, ref.NodeID, req.Depth)
	if err != nil {
		logger.Error("failed to analyze figma file",
			"file_id", ref.FileID, "node_id", ref.NodeID, "error", err)
		return nil, err
	}

	attrs := []any{"file_id", ref.FileID, "node_id", ref.NodeID, "duration", time.Since(start)}
	if req.Depth != nil {
		attrs = append(attrs, "depth", *req.Depth)
	}
	logger.Info("analyzed figma file", attrs...)

	return &models.AnalyzeResult{
		FileID: ref.FileID,
		NodeID: ref.NodeID,
		Tree:   tree,
	}, nil
}
