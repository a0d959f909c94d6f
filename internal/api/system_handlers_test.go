package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func get(t *testing.T, s *Server, target string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, m := range mutate {
		m(req)
	}
	rr := httptest.NewRecorder()
	s.Routes().ServeHTTP(rr, req)
	return rr
}

func TestAPI_Health(t *testing.T) {
	s := newTestServer(t, testConfig(), &stubFetcher{})

	rr := get(t, s, "/health")

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestAPI_OpenAPI(t *testing.T) {
	s := newTestServer(t, testConfig(), &stubFetcher{})

	rr := get(t, s, "/openapi.json")

	require.Equal(t, http.StatusOK, rr.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, paths, "/analyze")
	require.Contains(t, paths, "/health")
}

func TestAPI_Manifest_RewritesAPIURL(t *testing.T) {
	s := newTestServer(t, testConfig(), &stubFetcher{})

	t.Run("plain http", func(t *testing.T) {
		rr := get(t, s, "/mcp.json", func(r *http.Request) { r.Host = "figma.internal:3000" })

		require.Equal(t, http.StatusOK, rr.Code)
		var m map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
		require.Equal(t, "http://figma.internal:3000/openapi.json", m["api"].(map[string]any)["url"])
	})

	t.Run("behind tls proxy", func(t *testing.T) {
		rr := get(t, s, "/mcp.json", func(r *http.Request) {
			r.Host = "tools.example.com"
			r.Header.Set("X-Forwarded-Proto", "https")
		})

		var m map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
		require.Equal(t, "https://tools.example.com/openapi.json", m["api"].(map[string]any)["url"])
	})
}

func TestAPI_Manifest_Override(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		cfg := testConfig()
		cfg.Manifest.Path = filepath.Join(dir, "absent.json")
		s := newTestServer(t, cfg, &stubFetcher{})

		rr := get(t, s, "/mcp.json")

		require.Equal(t, http.StatusNotFound, rr.Code)
		require.Equal(t, "MCP manifest not found", decodeError(t, rr))
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
		cfg := testConfig()
		cfg.Manifest.Path = path
		s := newTestServer(t, cfg, &stubFetcher{})

		rr := get(t, s, "/mcp.json")

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		require.Equal(t, "Error serving MCP manifest", decodeError(t, rr))
	})
}

func TestAPI_CORS(t *testing.T) {
	s := newTestServer(t, testConfig(), &stubFetcher{})

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	s.Routes().ServeHTTP(rr, req)

	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPI_RequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, testConfig(), &stubFetcher{})

	rr := get(t, s, "/health", func(r *http.Request) { r.Header.Set("X-Request-ID", "trace-123") })

	require.Equal(t, "trace-123", rr.Header().Get("X-Request-ID"))
}

func TestAPI_Metrics(t *testing.T) {
	s := newTestServer(t, testConfig(), &stubFetcher{})
	get(t, s, "/health")

	rr := get(t, s, "/metrics")

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, strings.Contains(rr.Body.String(), `http_requests_total{method="GET",route="/health",status="200"}`))
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.ShutdownTimeout = 2 * time.Second
	s := newTestServer(t, cfg, &stubFetcher{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &http.Server{Handler: s.Routes(), ReadHeaderTimeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, srv, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
