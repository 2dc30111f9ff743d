package mcp

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"figmcp/internal/design"
	"figmcp/internal/errors"
)

const (
	filesURI      = "figma://files"
	cacheStatsURI = "figma://cache/stats"
	fileURIPrefix = "figma://file/"
	nodeURIPrefix = "figma://node/"
	jsonMIMEType  = "application/json"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(
		mcp.NewResource(filesURI, "Files",
			mcp.WithResourceDescription("Figma files known to this server"),
			mcp.WithMIMEType(jsonMIMEType),
		),
		s.handleResourceRead,
	)
	s.mcp.AddResource(
		mcp.NewResource(cacheStatsURI, "Cache Statistics",
			mcp.WithResourceDescription("Hit and miss counters and entry counts of the in-memory cache"),
			mcp.WithMIMEType(jsonMIMEType),
		),
		s.handleResourceRead,
	)

	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(fileURIPrefix+"{fileKey}", "File",
			mcp.WithTemplateDescription("Frames, components and component sets of a file, bounded in count and depth"),
			mcp.WithTemplateMIMEType(jsonMIMEType),
		),
		s.handleResourceRead,
	)
	s.mcp.AddResourceTemplate(
		// Reserved expansion: node ids carry ':' and ';', and everything after
		// the first slash belongs to the id.
		mcp.NewResourceTemplate(nodeURIPrefix+"{fileKey}/{+nodeId}", "Node",
			mcp.WithTemplateDescription("Raw Figma API detail of a single node"),
			mcp.WithTemplateMIMEType(jsonMIMEType),
		),
		s.handleResourceRead,
	)
}

// handleResourceRead serves every resource URI.
func (s *Server) handleResourceRead(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	s.logger.Debug("Reading resource", "uri", uri)

	payload, err := s.readResource(ctx, uri)
	if err != nil {
		s.logger.Warn("Resource read failed",
			"uri", uri,
			"error", err.Error(),
		)
		return nil, err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, errors.New(errors.InternalError, "marshal resource", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: jsonMIMEType,
			Text:     string(data),
		},
	}, nil
}

func (s *Server) readResource(ctx context.Context, uri string) (any, error) {
	switch {
	case uri == filesURI:
		return s.session.Files(ctx)

	case uri == cacheStatsURI:
		return s.session.CacheStats(), nil

	case strings.HasPrefix(uri, fileURIPrefix):
		key, err := url.PathUnescape(strings.TrimPrefix(uri, fileURIPrefix))
		if err != nil || key == "" || strings.Contains(key, "/") {
			return nil, errors.NewInvalidParameterError("uri", "expected figma://file/{fileKey}")
		}
		return s.session.FileNodes(ctx, key)

	case strings.HasPrefix(uri, nodeURIPrefix):
		unescaped, err := url.PathUnescape(uri)
		if err != nil {
			return nil, errors.NewInvalidParameterError("uri", err.Error())
		}
		addr, err := design.ParseAddress(unescaped)
		if err != nil {
			return nil, err
		}
		ref, err := design.ResolveAddress(addr, "")
		if err != nil {
			return nil, err
		}
		return s.session.NodeDetail(ctx, ref)
	}

	return nil, errors.NewInvalidParameterError("uri", "unknown resource "+uri)
}
