package design

import (
	"figmcp/internal/figma"
)

type frame struct {
	node  *figma.Node
	depth int
}

// Traverse walks root depth-first in pre-order and returns summaries of the
// nodes whose type is in types. Children of a node are visited only while its
// depth is below b.MaxDepth, in-set children first with relative order kept.
// The walk stops as soon as b.MaxNodes summaries have been collected.
func Traverse(root *figma.Node, types TypeSet, b Bounds) []figma.NodeSummary {
	out := []figma.NodeSummary{}
	if root == nil || b.MaxNodes <= 0 {
		return out
	}

	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if types.Has(f.node.Type) {
			out = append(out, Summarize(f.node))
			if len(out) >= b.MaxNodes {
				break
			}
		}

		if f.depth >= b.MaxDepth || len(f.node.Children) == 0 {
			continue
		}

		// Push in reverse so the first child is popped first.
		ordered := partition(f.node.Children, types)
		for i := len(ordered) - 1; i >= 0; i-- {
			if ordered[i] == nil {
				continue
			}
			stack = append(stack, frame{node: ordered[i], depth: f.depth + 1})
		}
	}

	return out
}

// partition returns children with in-set types first. It is stable.
func partition(children []*figma.Node, types TypeSet) []*figma.Node {
	out := make([]*figma.Node, 0, len(children))
	for _, c := range children {
		if c != nil && types.Has(c.Type) {
			out = append(out, c)
		}
	}
	for _, c := range children {
		if c != nil && !types.Has(c.Type) {
			out = append(out, c)
		}
	}
	return out
}

// ShallowScan lists in-set direct children of each page of doc. For a
// COMPONENT_SET its in-set children (the variants) follow it. Nothing deeper is
// inspected and nothing is reordered.
func ShallowScan(doc *figma.Node, types TypeSet, limit int) []figma.NodeSummary {
	out := []figma.NodeSummary{}
	if doc == nil || limit <= 0 {
		return out
	}

	for _, page := range doc.Children {
		if page == nil {
			continue
		}
		for _, child := range page.Children {
			if child == nil || !types.Has(child.Type) {
				continue
			}
			out = append(out, Summarize(child))
			if len(out) >= limit {
				return out
			}

			if child.Type != figma.TypeComponentSet {
				continue
			}
			for _, variant := range child.Children {
				if variant == nil || !types.Has(variant.Type) {
					continue
				}
				out = append(out, Summarize(variant))
				if len(out) >= limit {
					return out
				}
			}
		}
	}

	return out
}
