package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"figma-node-tree/internal/figma"
	"figma-node-tree/internal/models"
)

// @Summary      Analyze a Figma node tree
// @Description  Resolves the file and node identifiers from a Figma URL, fetches the node from the Figma REST API and returns its hierarchy. Component instances are returned without children.
// @Tags         figma
// @Accept       json
// @Produce      json
// @Param        analyzeRequest  body      models.AnalyzeRequest  true  "Figma URL and optional depth"
// @Success      200             {object}  models.AnalyzeResult
// @Failure      400             {object}  models.ErrorResponse
// @Failure      404             {object}  models.ErrorResponse
// @Failure      500             {object}  models.ErrorResponse
// @Failure      502             {object}  models.ErrorResponse
// @Router       /analyze [post]
func (s *Server) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, figma.ErrInvalidURLFormat),
		errors.Is(err, figma.ErrMissingFileID),
		errors.Is(err, figma.ErrMissingNodeID):
		return http.StatusBadRequest
	case errors.Is(err, figma.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, figma.ErrFetchFailed):
		return http.StatusBadGateway
	default:
		// ErrMissingCredential lands here: a server fault, not a client one.
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}
