// Package tokens renders the design-token payload of extract_design_tokens.
//
// The token set is fixed. It does not depend on the file that was asked for;
// real extraction from styles and variables is not implemented.
package tokens

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	JSON Format = "json"
	CSS  Format = "css"
	SCSS Format = "scss"
	YAML Format = "yaml"
)

// Formats lists the supported output formats.
var Formats = []Format{JSON, CSS, SCSS, YAML}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported token format %q (valid: json, css, scss, yaml)", s)
}

// Set is a design-token collection grouped by category.
type Set struct {
	Colors     map[string]string `json:"colors" yaml:"colors"`
	Typography map[string]string `json:"typography" yaml:"typography"`
	Spacing    map[string]string `json:"spacing" yaml:"spacing"`
	Radii      map[string]string `json:"radii" yaml:"radii"`
}

// Mock returns the fixed token set.
func Mock() Set {
	return Set{
		Colors: map[string]string{
			"primary":    "#0066FF",
			"secondary":  "#6B7280",
			"success":    "#10B981",
			"warning":    "#F59E0B",
			"error":      "#EF4444",
			"background": "#FFFFFF",
			"text":       "#111827",
		},
		Typography: map[string]string{
			"font-family": "Inter, sans-serif",
			"size-sm":     "14px",
			"size-md":     "16px",
			"size-lg":     "20px",
			"size-xl":     "24px",
			"line-height": "1.5",
		},
		Spacing: map[string]string{
			"xs": "4px",
			"sm": "8px",
			"md": "16px",
			"lg": "24px",
			"xl": "32px",
		},
		Radii: map[string]string{
			"sm":   "4px",
			"md":   "8px",
			"lg":   "16px",
			"full": "9999px",
		},
	}
}

// Render formats s.
func Render(s Set, format Format) (string, error) {
	switch format {
	case JSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case YAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case CSS:
		var b strings.Builder
		b.WriteString(":root {\n")
		for _, v := range s.variables() {
			fmt.Fprintf(&b, "  --%s: %s;\n", v.name, v.value)
		}
		b.WriteString("}\n")
		return b.String(), nil

	case SCSS:
		var b strings.Builder
		for _, v := range s.variables() {
			fmt.Fprintf(&b, "$%s: %s;\n", v.name, v.value)
		}
		return b.String(), nil
	}

	return "", fmt.Errorf("unsupported token format %q", format)
}

type variable struct {
	name  string
	value string
}

// variables flattens the set into prefixed names, grouped by category and
// sorted within each group.
func (s Set) variables() []variable {
	groups := []struct {
		prefix string
		values map[string]string
	}{
		{"color", s.Colors},
		{"font", s.Typography},
		{"spacing", s.Spacing},
		{"radius", s.Radii},
	}

	var out []variable
	for _, g := range groups {
		keys := make([]string, 0, len(g.values))
		for k := range g.values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			name := g.prefix + "-" + strings.TrimPrefix(k, g.prefix+"-")
			out = append(out, variable{name: name, value: g.values[k]})
		}
	}
	return out
}
