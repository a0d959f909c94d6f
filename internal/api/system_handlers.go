package api

import (
	"errors"
	"net/http"

	"figma-node-tree/internal/manifest"

	"github.com/swaggo/swag"

	_ "figma-node-tree/docs"
)

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// @Summary      Health check
// @Description  Reports that the server is up.
// @Tags         system
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) OpenAPIHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		s.logger.Error("error serving OpenAPI spec", "error", err)
		writeError(w, http.StatusInternalServerError, "Error serving OpenAPI specification")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

// @Summary      MCP manifest
// @Description  Returns the MCP manifest with api.url pointing at this server's OpenAPI document.
// @Tags         system
// @Produce      json
// @Success      200  {object}  object
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /mcp.json [get]
func (s *Server) ManifestHandler(w http.ResponseWriter, r *http.Request) {
	m, err := s.manifest.Load()
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) {
			s.logger.Warn("MCP manifest file not found", "path", s.manifest.Path())
			writeError(w, http.StatusNotFound, "MCP manifest not found")
			return
		}
		s.logger.Error("error serving MCP manifest", "error", err)
		writeError(w, http.StatusInternalServerError, "Error serving MCP manifest")
		return
	}

	manifest.SetAPIURL(m, baseURL(r)+"/openapi.json")
	writeJSON(w, http.StatusOK, m)
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
