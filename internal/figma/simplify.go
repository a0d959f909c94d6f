package figma

import "figma-node-tree/internal/models"

// Simplify copies id, name and type of every node in the tree. Recursion
// stops at INSTANCE nodes, which come back without children. The input is
// never modified.
func Simplify(node models.Node) models.Node {
	out := models.Node{
		ID:   node.ID,
		Name: node.Name,
		Type: node.Type,
	}
	if node.Type == models.NodeTypeInstance {
		return out
	}

	out.Children = make([]models.Node, 0, len(node.Children))
	for _, child := range node.Children {
		out.Children = append(out.Children, Simplify(child))
	}
	return out
}
