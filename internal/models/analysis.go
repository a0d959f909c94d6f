package models

type AnalyzeRequest struct {
	FigmaURL string `json:"figmaUrl" example:"https://www.figma.com/design/ABC123/Project?node-id=456-789"`
	URL      string `json:"url,omitempty"`
	Depth    *int   `json:"depth,omitempty" example:"2"`
}

// Target returns figmaUrl, falling back to the url alias.
func (r AnalyzeRequest) Target() string {
	if r.FigmaURL != "" {
		return r.FigmaURL
	}
	return r.URL
}

type AnalyzeResult struct {
	FileID string `json:"fileId" example:"ABC123"`
	NodeID string `json:"nodeId" example:"456-789"`
	Tree   Node   `json:"tree"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"invalid Figma URL format"`
}
