package design

import (
	"fmt"
	"strings"

	"figmcp/internal/errors"
)

const (
	nodeScheme = "figma://node/"
	fileScheme = "figma://file/"
)

// AddressShapes is the help text attached to malformed-address errors.
var AddressShapes = []string{
	"figma://node/{fileKey}/{nodeId}  e.g. figma://node/ABC123/4:5",
	"{fileKey}/{nodeId}               e.g. ABC123/4:5",
	"{nodeId} (uses the active file)  e.g. 4:5",
}

// Address is the parsed form of a node address. It is one of
// QualifiedAddress, ShortAddress or BareID.
type Address interface {
	address()
}

// QualifiedAddress is figma://node/{fileKey}/{nodeId}.
type QualifiedAddress struct {
	FileKey string
	NodeID  string
}

// ShortAddress is {fileKey}/{nodeId}.
type ShortAddress struct {
	FileKey string
	NodeID  string
}

// BareID is a node id that needs the active file.
type BareID struct {
	NodeID string
}

func (QualifiedAddress) address() {}
func (ShortAddress) address()     {}
func (BareID) address()           {}

// ParseAddress classifies s. Splits happen on the first slash only, so node
// ids containing slashes survive.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(s, nodeScheme):
		fileKey, nodeID, ok := splitRef(strings.TrimPrefix(s, nodeScheme))
		if !ok {
			return nil, malformedAddress(s)
		}
		return QualifiedAddress{FileKey: fileKey, NodeID: nodeID}, nil

	case strings.Contains(s, "://"):
		return nil, malformedAddress(s)

	case strings.Contains(s, "/"):
		fileKey, nodeID, ok := splitRef(s)
		if !ok {
			return nil, malformedAddress(s)
		}
		return ShortAddress{FileKey: fileKey, NodeID: nodeID}, nil

	case s != "":
		return BareID{NodeID: s}, nil
	}

	return nil, malformedAddress(s)
}

// ResolveAddress turns addr into a NodeRef. activeKey is used for a BareID; an
// empty activeKey makes a BareID unresolvable, which is reported as malformed.
func ResolveAddress(addr Address, activeKey string) (NodeRef, error) {
	switch a := addr.(type) {
	case QualifiedAddress:
		return NodeRef{FileKey: a.FileKey, NodeID: a.NodeID}, nil
	case ShortAddress:
		return NodeRef{FileKey: a.FileKey, NodeID: a.NodeID}, nil
	case BareID:
		if activeKey == "" {
			return NodeRef{}, malformedAddress(a.NodeID).
				WithHints("no active file: set one with set_active_file or use {fileKey}/{nodeId}")
		}
		return NodeRef{FileKey: activeKey, NodeID: a.NodeID}, nil
	}
	return NodeRef{}, errors.New(errors.InternalError, "unknown address kind", nil)
}

// ParseFileAddress accepts figma://file/{fileKey} or a bare key. An empty
// string returns an empty key, meaning "use the active file".
func ParseFileAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, fileScheme) {
		s = strings.TrimPrefix(s, fileScheme)
		if s == "" {
			return "", malformedFileAddress(fileScheme)
		}
	}
	if strings.ContainsAny(s, "/:") {
		return "", malformedFileAddress(s)
	}
	return s, nil
}

func splitRef(s string) (string, string, bool) {
	fileKey, nodeID, ok := strings.Cut(s, "/")
	if !ok || fileKey == "" || nodeID == "" {
		return "", "", false
	}
	return fileKey, nodeID, true
}

func malformedAddress(s string) *errors.Error {
	msg := fmt.Sprintf("unrecognised node address %q; accepted shapes: figma://node/ABC123/4:5, ABC123/4:5, or 4:5 with an active file", s)
	return errors.New(errors.MalformedAddress, msg, nil).
		WithDetails(map[string]string{"address": s}).
		WithHints(AddressShapes...)
}

func malformedFileAddress(s string) *errors.Error {
	msg := fmt.Sprintf("unrecognised file address %q; accepted shapes: figma://file/ABC123 or ABC123", s)
	return errors.New(errors.MalformedAddress, msg, nil).
		WithDetails(map[string]string{"address": s}).
		WithHints("figma://file/{fileKey}  e.g. figma://file/ABC123", "{fileKey}  e.g. ABC123")
}
