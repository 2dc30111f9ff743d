package design

import (
	"strings"

	"figmcp/internal/figma"
)

// FindByName returns nodes whose name contains query, compared
// case-insensitively, in document order. Unnamed nodes never match, not even
// an empty query. b.MaxNodes caps the result count and b.MaxDepth the depth.
func FindByName(root *figma.Node, query string, b Bounds) []figma.NodeSummary {
	out := []figma.NodeSummary{}
	if root == nil || b.MaxNodes <= 0 {
		return out
	}
	needle := strings.ToLower(query)

	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.node

		if n.Name != "" && strings.Contains(strings.ToLower(n.Name), needle) {
			typ := n.Type
			if typ == "" {
				typ = UnknownType
			}
			out = append(out, figma.NodeSummary{ID: n.ID, Name: n.Name, Type: typ})
			if len(out) >= b.MaxNodes {
				break
			}
		}

		if f.depth >= b.MaxDepth {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			if n.Children[i] != nil {
				stack = append(stack, frame{node: n.Children[i], depth: f.depth + 1})
			}
		}
	}

	return out
}
