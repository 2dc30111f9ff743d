package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"figmcp/internal/codegen"
	"figmcp/internal/figma"
	"figmcp/internal/tokens"
)

// toolFunc is the body of a tool. Errors become IsError results, never
// protocol errors.
type toolFunc func(ctx context.Context, req mcp.CallToolRequest) (string, error)

type toolDef struct {
	tool mcp.Tool
	fn   toolFunc
}

// toolDefinitions returns every tool with its handler.
func (s *Server) toolDefinitions() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("set_active_file",
				mcp.WithDescription("Make a Figma file the default context for node addresses and searches. The key is checked against the API first."),
				mcp.WithString("fileKey",
					mcp.Required(),
					mcp.Description("Figma file key, the part after /file/ or /design/ in a Figma URL"),
				),
			),
			fn: s.toolSetActiveFile,
		},
		{
			tool: mcp.NewTool("get_active_file",
				mcp.WithDescription("Show which Figma file is currently active"),
			),
			fn: s.toolGetActiveFile,
		},
		{
			tool: mcp.NewTool("list_files",
				mcp.WithDescription("List the Figma files this server knows about"),
			),
			fn: s.toolListFiles,
		},
		{
			tool: mcp.NewTool("list_components",
				mcp.WithDescription("Quickly list components, component sets, frames and instances on the top level of each page"),
				mcp.WithString("fileKey",
					mcp.Description("File key; defaults to the active file"),
				),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of entries"),
					mcp.Min(1),
					mcp.Max(100),
				),
			),
			fn: s.toolListComponents,
		},
		{
			tool: mcp.NewTool("find_by_name",
				mcp.WithDescription("Find nodes whose name contains the query (case-insensitive), in document order"),
				mcp.WithString("name",
					mcp.Required(),
					mcp.Description("Substring to look for"),
				),
				mcp.WithString("fileKey",
					mcp.Description("File key; defaults to the active file"),
				),
			),
			fn: s.toolFindByName,
		},
		{
			tool: mcp.NewTool("generate_component",
				mcp.WithDescription("Generate a stub component for a design node"),
				mcp.WithString("nodeAddress",
					mcp.Required(),
					mcp.Description("figma://node/{fileKey}/{nodeId}, {fileKey}/{nodeId} or a node id in the active file"),
				),
				mcp.WithString("componentName",
					mcp.Description("Component name; derived from the node name when omitted"),
				),
				mcp.WithString("format",
					mcp.Description("Target framework"),
					mcp.Enum(enumValues(codegen.Formats)...),
					mcp.DefaultString(string(codegen.React)),
				),
			),
			fn: s.toolGenerateComponent,
		},
		{
			tool: mcp.NewTool("export_image",
				mcp.WithDescription("Render a node and return the image URL"),
				mcp.WithString("nodeAddress",
					mcp.Required(),
					mcp.Description("figma://node/{fileKey}/{nodeId}, {fileKey}/{nodeId} or a node id in the active file"),
				),
				mcp.WithString("format",
					mcp.Description("Image format"),
					mcp.Enum(enumValues(figma.ImageFormats)...),
					mcp.DefaultString(string(figma.ImagePNG)),
				),
				mcp.WithNumber("scale",
					mcp.Description("Integer scale factor"),
					mcp.Min(figma.MinImageScale),
					mcp.Max(figma.MaxImageScale),
					mcp.DefaultNumber(1),
				),
			),
			fn: s.toolExportImage,
		},
		{
			tool: mcp.NewTool("extract_design_tokens",
				mcp.WithDescription("Return design tokens (colors, typography, spacing, radii). The token set is currently a fixed sample and does not reflect the file's styles."),
				mcp.WithString("fileAddress",
					mcp.Description("figma://file/{fileKey} or a file key; defaults to the active file"),
				),
				mcp.WithString("format",
					mcp.Description("Output format"),
					mcp.Enum(enumValues(tokens.Formats)...),
					mcp.DefaultString(string(tokens.JSON)),
				),
			),
			fn: s.toolExtractDesignTokens,
		},
	}
}

func (s *Server) registerTools() {
	for _, def := range s.toolDefinitions() {
		s.mcp.AddTool(def.tool, s.wrapTool(def.tool.Name, def.fn))
	}
}

// wrapTool logs the call and turns errors into tool error results.
func (s *Server) wrapTool(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		s.logger.Info("Calling tool",
			"tool", name,
			"params", req.GetArguments(),
		)

		text, err := fn(ctx, req)
		if err != nil {
			s.logger.Warn("Tool failed",
				"tool", name,
				"duration", time.Since(start),
				"error", err.Error(),
			)
			return mcp.NewToolResultError(formatError(err)), nil
		}

		s.logger.Debug("Tool completed",
			"tool", name,
			"duration", time.Since(start),
		)
		return mcp.NewToolResultText(text), nil
	}
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
