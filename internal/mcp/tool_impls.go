package mcp

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"figmcp/internal/codegen"
	"figmcp/internal/design"
	"figmcp/internal/errors"
	"figmcp/internal/figma"
	"figmcp/internal/tokens"
)

// toolSetActiveFile implements the set_active_file tool
func (s *Server) toolSetActiveFile(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	key, err := requireString(req, "fileKey")
	if err != nil {
		return "", err
	}

	f, err := s.session.SetActive(ctx, key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Active file set to %s (%s)", f.Name, f.Key), nil
}

// toolGetActiveFile implements the get_active_file tool
func (s *Server) toolGetActiveFile(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	f, ok, err := s.session.ActiveFile(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "No active file. Use set_active_file with a Figma file key.", nil
	}
	return "Active file: " + formatFile(f), nil
}

// toolListFiles implements the list_files tool
func (s *Server) toolListFiles(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	files, err := s.session.Files(ctx)
	if err != nil {
		return "", err
	}

	active, _, err := s.session.ActiveFile(ctx)
	if err != nil {
		return "", err
	}
	return formatFiles(files, active.Key), nil
}

// toolListComponents implements the list_components tool
func (s *Server) toolListComponents(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	limit, err := optionalInt(req, "limit", 0)
	if err != nil {
		return "", err
	}

	list, err := s.session.ListComponents(ctx, strings.TrimSpace(req.GetString("fileKey", "")), limit)
	if err != nil {
		return "", err
	}
	return formatComponents(list), nil
}

// toolFindByName implements the find_by_name tool
func (s *Server) toolFindByName(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	name, err := requireString(req, "name")
	if err != nil {
		return "", err
	}

	res, err := s.session.FindByName(ctx, name, strings.TrimSpace(req.GetString("fileKey", "")))
	if err != nil {
		return "", err
	}
	return formatMatches(res), nil
}

// toolGenerateComponent implements the generate_component tool
func (s *Server) toolGenerateComponent(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	address, err := requireString(req, "nodeAddress")
	if err != nil {
		return "", err
	}
	format, err := codegen.ParseFormat(req.GetString("format", string(codegen.React)))
	if err != nil {
		return "", errors.NewInvalidParameterError("format", err.Error())
	}

	ref, err := s.session.ResolveNode(ctx, address)
	if err != nil {
		return "", err
	}
	node, err := s.session.NodeSummary(ctx, ref)
	if err != nil {
		return "", err
	}

	code, err := codegen.Render(codegen.Request{
		Node:    node,
		FileKey: ref.FileKey,
		Name:    strings.TrimSpace(req.GetString("componentName", "")),
		Format:  format,
	})
	if err != nil {
		return "", errors.New(errors.InternalError, "code generation failed", err)
	}
	return code, nil
}

// toolExportImage implements the export_image tool
func (s *Server) toolExportImage(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	address, err := requireString(req, "nodeAddress")
	if err != nil {
		return "", err
	}
	format, err := figma.ParseImageFormat(req.GetString("format", string(figma.ImagePNG)))
	if err != nil {
		return "", errors.NewInvalidParameterError("format", err.Error())
	}
	scale, err := optionalInt(req, "scale", 1)
	if err != nil {
		return "", err
	}

	ref, err := s.session.ResolveNode(ctx, address)
	if err != nil {
		return "", err
	}
	url, err := s.session.ExportImage(ctx, ref, format, scale)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Image (%s, %dx) for %s:\n%s", format, scale, ref, url), nil
}

// toolExtractDesignTokens implements the extract_design_tokens tool. The
// output is the same for every file.
func (s *Server) toolExtractDesignTokens(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	format, err := tokens.ParseFormat(req.GetString("format", string(tokens.JSON)))
	if err != nil {
		return "", errors.NewInvalidParameterError("format", err.Error())
	}

	// The address does not change the output, but a malformed one is reported.
	if _, err := design.ParseFileAddress(req.GetString("fileAddress", "")); err != nil {
		return "", err
	}

	out, err := tokens.Render(tokens.Mock(), format)
	if err != nil {
		return "", errors.New(errors.InternalError, "token rendering failed", err)
	}
	return out, nil
}

func requireString(req mcp.CallToolRequest, key string) (string, error) {
	v, err := req.RequireString(key)
	if err != nil {
		return "", errors.NewInvalidParameterError(key, "required")
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", errors.NewInvalidParameterError(key, "must not be empty")
	}
	return v, nil
}

// optionalInt reads a whole number argument. JSON numbers arrive as float64.
func optionalInt(req mcp.CallToolRequest, key string, def int) (int, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return def, nil
	}
	f, ok := raw.(float64)
	if !ok {
		if i, isInt := raw.(int); isInt {
			return i, nil
		}
		return 0, errors.NewInvalidParameterError(key, "must be a number")
	}
	if f != math.Trunc(f) {
		return 0, errors.NewInvalidParameterError(key, "must be a whole number")
	}
	return int(f), nil
}
