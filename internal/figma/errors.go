package figma

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURLFormat  = errors.New("invalid Figma URL format")
	ErrMissingFileID     = errors.New("could not extract file ID from URL")
	ErrMissingNodeID     = errors.New("no node ID specified in URL")
	ErrNodeNotFound      = errors.New("node not found")
	ErrFetchFailed       = errors.New("failed to fetch Figma node tree")
	ErrMissingCredential = errors.New("FIGMA_API_KEY not configured")
)

type NodeNotFoundError struct {
	FileID string
	NodeID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %s not found in file %s", e.NodeID, e.FileID)
}

func (e *NodeNotFoundError) Is(target error) bool {
	return target == ErrNodeNotFound
}

// FetchError wraps any transport, status or decoding failure of the
// upstream call while keeping the original message.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", ErrFetchFailed, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
