package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"figma-node-tree/internal/analyzer"
	"figma-node-tree/internal/config"
	"figma-node-tree/internal/manifest"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/sync/errgroup"
)

const maxRequestBody = 1 << 20

type Server struct {
	config   *config.Config
	analyzer *analyzer.Analyzer
	manifest *manifest.Loader
	logger   *slog.Logger
}

func NewServer(cfg *config.Config, a *analyzer.Analyzer, m *manifest.Loader, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		config:   cfg,
		analyzer: a,
		manifest: m,
		logger:   logger,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
	}))

	r.Get("/health", s.HealthCheckHandler)
	r.Get("/openapi.json", s.OpenAPIHandler)
	r.Get("/mcp.json", s.ManifestHandler)
	r.Post("/analyze", s.AnalyzeHandler)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/openapi.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Serve listens on the configured port until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}

	return s.serve(ctx, srv, ln)
}

func (s *Server) serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)
	srv.BaseContext = func(_ net.Listener) context.Context {
		return egctx
	}

	base := "http://" + displayAddr(ln.Addr())
	s.logger.Info("figma server running", "addr", ln.Addr().String())
	s.logger.Info("endpoints",
		"health", base+"/health",
		"openapi", base+"/openapi.json",
		"manifest", base+"/mcp.json",
	)

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("could not close connections in time, forcing shutdown", "error", err)
			_ = srv.Close()
			return err
		}
		s.logger.Info("server has been gracefully terminated")
		return nil
	})

	return eg.Wait()
}

func displayAddr(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok && tcp.IP.IsUnspecified() {
		return fmt.Sprintf("localhost:%d", tcp.Port)
	}
	return addr.String()
}
