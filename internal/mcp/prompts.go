package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"figmcp/internal/codegen"
	"figmcp/internal/errors"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(
		mcp.NewPrompt("component_to_code",
			mcp.WithPromptDescription("Ask for a production implementation of a Figma node"),
			mcp.WithArgument("nodeAddress",
				mcp.ArgumentDescription("figma://node/{fileKey}/{nodeId}, {fileKey}/{nodeId} or a node id in the active file"),
				mcp.RequiredArgument(),
			),
			mcp.WithArgument("framework",
				mcp.ArgumentDescription("react, vue, svelte or html (default react)"),
			),
		),
		s.promptComponentToCode,
	)

	s.mcp.AddPrompt(
		mcp.NewPrompt("design_system_overview",
			mcp.WithPromptDescription("Review the components of a Figma file as a design system"),
			mcp.WithArgument("fileKey",
				mcp.ArgumentDescription("File key; defaults to the active file"),
			),
		),
		s.promptDesignSystemOverview,
	)
}

func (s *Server) promptComponentToCode(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	address := strings.TrimSpace(req.Params.Arguments["nodeAddress"])
	if address == "" {
		return nil, errors.NewInvalidParameterError("nodeAddress", "required")
	}
	framework := req.Params.Arguments["framework"]
	if framework == "" {
		framework = string(codegen.React)
	}
	format, err := codegen.ParseFormat(framework)
	if err != nil {
		return nil, errors.NewInvalidParameterError("framework", err.Error())
	}

	ref, err := s.session.ResolveNode(ctx, address)
	if err != nil {
		return nil, err
	}
	node, err := s.session.NodeSummary(ctx, ref)
	if err != nil {
		return nil, err
	}
	stub, err := codegen.Render(codegen.Request{Node: node, FileKey: ref.FileKey, Format: format})
	if err != nil {
		return nil, errors.New(errors.InternalError, "code generation failed", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Implement the Figma %s %q (node %s in file %s) as a %s component.\n\n",
		node.Type, node.Name, node.ID, ref.FileKey, format)
	fmt.Fprintf(&b, "Description: %s\n\n", node.Description)
	b.WriteString("Start from this stub and fill in layout, styling and props:\n\n")
	b.WriteString(stub)

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Implement %s in %s", node.Name, format),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(b.String())),
		},
	), nil
}

func (s *Server) promptDesignSystemOverview(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	list, err := s.session.ListComponents(ctx, strings.TrimSpace(req.Params.Arguments["fileKey"]), 0)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Review the following Figma components as a design system. ")
	b.WriteString("Point out naming inconsistencies, missing variants and components that look like duplicates.\n\n")
	b.WriteString(formatComponents(list))

	return mcp.NewGetPromptResult(
		"Design system overview of "+list.FileKey,
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(b.String())),
		},
	), nil
}
