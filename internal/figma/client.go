package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"figma-node-tree/internal/models"
)

const (
	DefaultBaseURL = "https://api.figma.com/v1"
	tokenHeader    = "X-Figma-Token"
	maxErrorBody   = 4 << 10
)

type NodesResponse struct {
	Name  string                `json:"name"`
	Nodes map[string]*NodeEntry `json:"nodes"`
}

type NodeEntry struct {
	Document      models.Node                `json:"document"`
	Components    map[string]json.RawMessage `json:"components,omitempty"`
	ComponentSets map[string]json.RawMessage `json:"componentSets,omitempty"`
	Styles        map[string]json.RawMessage `json:"styles,omitempty"`
}

type apiError struct {
	Status int    `json:"status"`
	Err    string `json:"err"`
}

// Client talks to the Figma REST API. It holds no state besides its
// configuration and is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Transport: InstrumentedTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NodeTree fetches a single node (bounded by depth when set) and returns
// its simplified subtree.
func (c *Client) NodeTree(ctx context.Context, fileID, nodeID string, depth *int) (models.Node, error) {
	resp, err := c.FetchNodes(ctx, fileID, nodeID, depth)
	if err != nil {
		return models.Node{}, err
	}

	entry := lookupNode(resp.Nodes, nodeID)
	if entry == nil {
		return models.Node{}, &NodeNotFoundError{FileID: fileID, NodeID: nodeID}
	}

	return Simplify(entry.Document), nil
}

// FetchNodes performs the raw GET /files/{fileID}/nodes call. Every failure
// is returned as a *FetchError.
func (c *Client) FetchNodes(ctx context.Context, fileID, nodeID string, depth *int) (*NodesResponse, error) {
	endpoint := c.nodesURL(fileID, nodeID, depth)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set(tokenHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Err: statusError(resp)}
	}

	var nodes NodesResponse
	if err := json.NewDecoder(resp.Body).Decode(&nodes); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return &nodes, nil
}

func (c *Client) nodesURL(fileID, nodeID string, depth *int) string {
	query := url.Values{}
	query.Set("ids", nodeID)
	if depth != nil {
		query.Set("depth", strconv.Itoa(*depth))
	}
	return c.baseURL + "/files/" + url.PathEscape(fileID) + "/nodes?" + query.Encode()
}

// lookupNode accepts both the dash form used in links (1-2) and the colon
// form the API keys its response with (1:2).
func lookupNode(nodes map[string]*NodeEntry, nodeID string) *NodeEntry {
	if entry := nodes[nodeID]; entry != nil {
		return entry
	}
	if alt := strings.ReplaceAll(nodeID, "-", ":"); alt != nodeID {
		return nodes[alt]
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Err != "" {
		return fmt.Errorf("request failed with status code %d: %s", resp.StatusCode, apiErr.Err)
	}
	return fmt.Errorf("request failed with status code %d", resp.StatusCode)
}
