// Package design is the core of figmcp: bounded traversal of Figma document
// trees, name search, address parsing and active-file resolution. A Session
// owns the API client, the cache and the active-file pointer.
package design

import (
	"figmcp/internal/figma"
)

// UnknownType is recorded by name search for nodes without a type.
const UnknownType = "Unknown"

// TypeSet is a set of node type tags a walk treats as significant.
type TypeSet map[string]struct{}

// NewTypeSet builds a set from type tags.
func NewTypeSet(types ...string) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether t is in the set.
func (s TypeSet) Has(t string) bool {
	_, ok := s[t]
	return ok
}

// The two policies differ on purpose. The bounded traversal ignores
// INSTANCE, the shallow scan lists it.
var (
	// FullTraversalTypes is used by Traverse for file resources.
	FullTraversalTypes = NewTypeSet(figma.TypeFrame, figma.TypeComponent, figma.TypeComponentSet)

	// ShallowScanTypes is used by ShallowScan for component listings.
	ShallowScanTypes = NewTypeSet(figma.TypeComponent, figma.TypeComponentSet, figma.TypeFrame, figma.TypeInstance)
)

// Bounds limits a walk. Depth counts from the root at 0.
type Bounds struct {
	MaxNodes int
	MaxDepth int
}

// DefaultTraversalBounds are the bounds of file resources.
var DefaultTraversalBounds = Bounds{MaxNodes: 50, MaxDepth: 3}

// DefaultSearchBounds are the bounds of name search.
var DefaultSearchBounds = Bounds{MaxNodes: 10, MaxDepth: 10}

// DefaultScanLimit is the listing size of ShallowScan.
const DefaultScanLimit = 10

// NodeRef points at one node inside one file.
type NodeRef struct {
	FileKey string `json:"fileKey"`
	NodeID  string `json:"nodeId"`
}

func (r NodeRef) String() string {
	return r.FileKey + "/" + r.NodeID
}

// Summarize converts a tree node into its flat summary form.
func Summarize(n *figma.Node) figma.NodeSummary {
	desc := n.Description
	if desc == "" {
		desc = "A " + n.Type + " from Figma"
	}
	return figma.NodeSummary{
		ID:          n.ID,
		Name:        n.Name,
		Type:        n.Type,
		Description: desc,
	}
}
