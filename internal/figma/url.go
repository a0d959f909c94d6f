package figma

import (
	"net/url"
	"strings"

	"figma-node-tree/internal/models"
)

const nodeIDParam = "node-id"

var fileMarkers = map[string]bool{
	"file":   true,
	"design": true,
	"proto":  true,
}

// ExtractIDs resolves a Figma link such as
// https://www.figma.com/design/ABC123/Name?node-id=1-2 into its file and
// node identifiers. Every parse failure is reported as ErrInvalidURLFormat.
// Path segments are split before unescaping, so an escaped slash stays
// inside its segment.
func ExtractIDs(rawURL string) (models.DesignReference, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return models.DesignReference{}, ErrInvalidURLFormat
	}

	segments := strings.Split(u.EscapedPath(), "/")
	fileIdx := -1
	for i, segment := range segments {
		if fileMarkers[segment] {
			fileIdx = i + 1
			break
		}
	}
	if fileIdx == -1 || fileIdx >= len(segments) {
		return models.DesignReference{}, ErrInvalidURLFormat
	}

	fileID, err := url.PathUnescape(segments[fileIdx])
	if err != nil {
		return models.DesignReference{}, ErrInvalidURLFormat
	}

	return models.DesignReference{
		FileID: fileID,
		NodeID: u.Query().Get(nodeIDParam),
	}, nil
}
