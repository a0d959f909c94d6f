// Package manifest serves the MCP discovery manifest. A copy is embedded in
// the binary; an operator may point the server at a replacement file.
package manifest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

//go:embed mcp.json
var embedded []byte

var ErrNotFound = errors.New("MCP manifest not found")

type Loader struct {
	path string
}

// NewLoader returns a loader for the file at path, or for the embedded
// manifest when path is empty.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Path() string {
	return l.path
}

// Load decodes a fresh copy of the manifest on every call so callers may
// modify the result.
func (l *Loader) Load() (map[string]any, error) {
	raw := embedded
	if l.path != "" {
		data, err := os.ReadFile(l.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w at %s", ErrNotFound, l.path)
			}
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}
		raw = data
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}

// SetAPIURL points api.url at openAPIURL when the manifest declares an api
// section. It reports whether the manifest was changed.
func SetAPIURL(m map[string]any, openAPIURL string) bool {
	api, ok := m["api"].(map[string]any)
	if !ok {
		return false
	}
	if _, ok := api["url"]; !ok {
		return false
	}
	api["url"] = openAPIURL
	return true
}
