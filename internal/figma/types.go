// Package figma is a thin client for the Figma REST API: file listings, file
// documents, node details and image exports. Nothing here caches or retries.
package figma

import (
	"fmt"
	"strings"
	"time"
)

// Node types the rest of figmcp cares about. Any other type string is passed
// through verbatim.
const (
	TypeDocument     = "DOCUMENT"
	TypeCanvas       = "CANVAS"
	TypeFrame        = "FRAME"
	TypeComponent    = "COMPONENT"
	TypeComponentSet = "COMPONENT_SET"
	TypeInstance     = "INSTANCE"
)

// FileMeta is one entry of a file listing.
type FileMeta struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	LastModified time.Time `json:"last_modified"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
}

// Node is a document tree node as returned by GET /files/:key.
// Only the fields figmcp reads are decoded.
type Node struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description string  `json:"description,omitempty"`
	Children    []*Node `json:"children,omitempty"`
}

// File is the GET /files/:key response.
type File struct {
	Name         string    `json:"name"`
	LastModified time.Time `json:"lastModified"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Version      string    `json:"version,omitempty"`
	Document     *Node     `json:"document"`
}

// Meta converts a fetched file into a listing entry.
func (f *File) Meta(key string) FileMeta {
	return FileMeta{
		Key:          key,
		Name:         f.Name,
		LastModified: f.LastModified,
		ThumbnailURL: f.ThumbnailURL,
	}
}

// NodesResponse is the raw GET /files/:key/nodes payload. It is kept as
// decoded JSON because callers hand it through unchanged.
type NodesResponse map[string]any

type listFilesResponse struct {
	Name  string     `json:"name,omitempty"`
	Files []FileMeta `json:"files"`
}

type imagesResponse struct {
	Err    *string           `json:"err"`
	Images map[string]string `json:"images"`
}

// ImageFormat is an export format accepted by GET /images/:key.
type ImageFormat string

const (
	ImagePNG ImageFormat = "png"
	ImageJPG ImageFormat = "jpg"
	ImageSVG ImageFormat = "svg"
	ImagePDF ImageFormat = "pdf"
)

// ImageFormats lists the accepted export formats.
var ImageFormats = []ImageFormat{ImagePNG, ImageJPG, ImageSVG, ImagePDF}

// ParseImageFormat validates a user-supplied format name.
func ParseImageFormat(s string) (ImageFormat, error) {
	f := ImageFormat(strings.ToLower(s))
	for _, known := range ImageFormats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported image format %q (valid: png, jpg, svg, pdf)", s)
}

const (
	MinImageScale = 1
	MaxImageScale = 4
)

// NodeSummary is the flattened form of a node kept in listings and caches.
type NodeSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}
