package models

import "encoding/json"

const NodeTypeInstance = "INSTANCE"

type Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Children []Node `json:"children,omitempty"`
}

// IsTerminal reports whether the node was cut off at a component instance.
// A terminal node has a nil Children slice; an expanded node without
// children has an empty, non-nil one.
func (n Node) IsTerminal() bool {
	return n.Children == nil
}

// MarshalJSON omits "children" only for terminal nodes and writes [] for
// expanded nodes that have none.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.Children == nil {
		type terminal struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Type string `json:"type"`
		}
		return json.Marshal(terminal{ID: n.ID, Name: n.Name, Type: n.Type})
	}

	type expanded struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Type     string `json:"type"`
		Children []Node `json:"children"`
	}
	return json.Marshal(expanded{ID: n.ID, Name: n.Name, Type: n.Type, Children: n.Children})
}
