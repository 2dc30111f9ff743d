package mcp

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"figmcp/internal/design"
	"figmcp/internal/errors"
	"figmcp/internal/figma"
)

func formatFile(f figma.FileMeta) string {
	s := fmt.Sprintf("%s (%s)", f.Name, f.Key)
	if !f.LastModified.IsZero() {
		s += ", modified " + humanize.Time(f.LastModified)
	}
	return s
}

func formatFiles(files []figma.FileMeta, activeKey string) string {
	if len(files) == 0 {
		return "No files available. Check the API key, or set FIGMA_FILE_KEY / use set_active_file."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d %s:\n", len(files), plural(len(files), "file", "files"))
	for _, f := range files {
		marker := "  "
		if f.Key == activeKey {
			marker = "* "
		}
		b.WriteString(marker + formatFile(f) + "\n")
	}
	return b.String()
}

func formatNode(n figma.NodeSummary) string {
	return fmt.Sprintf("%s [%s] id=%s", n.Name, n.Type, n.ID)
}

func formatComponents(list design.ComponentList) string {
	if len(list.Components) == 0 {
		return fmt.Sprintf("No components found on the top level of file %s.", list.FileKey)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d %s in file %s:\n", len(list.Components),
		plural(len(list.Components), "component", "components"), list.FileKey)
	for _, n := range list.Components {
		b.WriteString("- " + formatNode(n) + "\n")
	}
	return b.String()
}

func formatMatches(res design.SearchResult) string {
	if len(res.Matches) == 0 {
		return fmt.Sprintf("No nodes named like %q in file %s.", res.Query, res.FileKey)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d %s for %q in file %s:\n", len(res.Matches),
		plural(len(res.Matches), "match", "matches"), res.Query, res.FileKey)
	for _, n := range res.Matches {
		fmt.Fprintf(&b, "- %s  address=%s/%s\n", formatNode(n), res.FileKey, n.ID)
	}
	return b.String()
}

// formatError renders a coded error with its hints for a tool result.
func formatError(err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error [%s]: %s", errors.CodeOf(err), messageOf(err))

	if e := asError(err); e != nil && len(e.Hints) > 0 {
		b.WriteString("\n")
		for _, h := range e.Hints {
			b.WriteString("\n  - " + h)
		}
	}
	return b.String()
}

// messageOf is the error text without the bracketed code prefix.
func messageOf(err error) string {
	msg := err.Error()
	if e := asError(err); e != nil {
		msg = strings.TrimPrefix(msg, "["+string(e.Code)+"] ")
	}
	return msg
}

func asError(err error) *errors.Error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
