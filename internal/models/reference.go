package models

type DesignReference struct {
	FileID string `json:"fileId"`
	NodeID string `json:"nodeId,omitempty"`
}

func (r DesignReference) HasNodeID() bool {
	return r.NodeID != ""
}
