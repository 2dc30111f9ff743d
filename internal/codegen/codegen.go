// Package codegen renders stub component source for a design node.
package codegen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"figmcp/internal/figma"
)

// Format is a target framework.
type Format string

const (
	React  Format = "react"
	Vue    Format = "vue"
	Svelte Format = "svelte"
	HTML   Format = "html"
)

// Formats lists the supported targets.
var Formats = []Format{React, Vue, Svelte, HTML}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported component format %q (valid: react, vue, svelte, html)", s)
}

// Request is one snippet to render.
type Request struct {
	Node    figma.NodeSummary
	FileKey string
	// Name overrides the component name derived from the node name.
	Name   string
	Format Format
}

var templates = template.Must(template.New("codegen").Parse(`
{{define "react"}}import React from 'react';

interface {{.Name}}Props {
  className?: string;
}

// {{.Type}} {{.NodeID}} from file {{.FileKey}}
export const {{.Name}}: React.FC<{{.Name}}Props> = ({ className }) => {
  return (
    <div className={` + "`" + `{{.Class}} ${className ?? ''}` + "`" + `}>
      {/* {{.Description}} */}
    </div>
  );
};

export default {{.Name}};
{{end}}
{{define "vue"}}<template>
  <div class="{{.Class}}">
    <!-- {{.Description}} -->
  </div>
</template>

<script setup lang="ts">
// {{.Name}}: {{.Type}} {{.NodeID}} from file {{.FileKey}}
defineOptions({ name: '{{.Name}}' });
</script>

<style scoped>
.{{.Class}} {
}
</style>
{{end}}
{{define "svelte"}}<script lang="ts">
  // {{.Name}}: {{.Type}} {{.NodeID}} from file {{.FileKey}}
  export let className = '';
</script>

<div class="{{.Class}} {className}">
  <!-- {{.Description}} -->
</div>

<style>
  .{{.Class}} {
  }
</style>
{{end}}
{{define "html"}}<!-- {{.Name}}: {{.Type}} {{.NodeID}} from file {{.FileKey}} -->
<div class="{{.Class}}">
  <!-- {{.Description}} -->
</div>
{{end}}
`))

// Render produces the snippet for req.
func Render(req Request) (string, error) {
	// An explicit name is normalised the same way as a derived one.
	source := req.Name
	if strings.TrimSpace(source) == "" {
		source = req.Node.Name
	}
	name := ComponentName(source)

	data := struct {
		Name        string
		Class       string
		Type        string
		NodeID      string
		FileKey     string
		Description string
	}{
		Name:        name,
		Class:       KebabCase(name),
		Type:        req.Node.Type,
		NodeID:      req.Node.ID,
		FileKey:     req.FileKey,
		Description: req.Node.Description,
	}

	if _, err := ParseFormat(string(req.Format)); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, string(req.Format), data); err != nil {
		return "", fmt.Errorf("render %s component: %w", req.Format, err)
	}
	return buf.String(), nil
}

// ComponentName turns a design node name into a PascalCase identifier.
// Names without letters or digits become "Component"; a leading digit gets a
// "Component" prefix.
func ComponentName(s string) string {
	var b strings.Builder
	for _, word := range words(s) {
		runes := []rune(word)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}

	name := b.String()
	if name == "" {
		return "Component"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		return "Component" + name
	}
	return name
}

// KebabCase turns a PascalCase or free-form name into a CSS class name.
func KebabCase(s string) string {
	var parts []string
	for _, word := range words(s) {
		var cur []rune
		runes := []rune(word)
		for i, r := range runes {
			if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
				parts = append(parts, string(cur))
				cur = nil
			}
			cur = append(cur, unicode.ToLower(r))
		}
		parts = append(parts, string(cur))
	}
	if len(parts) == 0 {
		return "component"
	}
	return strings.Join(parts, "-")
}

// words splits on anything that is not a letter or digit.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
