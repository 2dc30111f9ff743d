package tokens

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRender_JSON(t *testing.T) {
	out, err := Render(Mock(), JSON)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var got Set
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Colors["primary"] != "#0066FF" {
		t.Errorf("colors.primary = %q", got.Colors["primary"])
	}
}

func TestRender_YAML(t *testing.T) {
	out, err := Render(Mock(), YAML)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var got Set
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if got.Spacing["md"] != "16px" {
		t.Errorf("spacing.md = %q", got.Spacing["md"])
	}
}

func TestRender_CSS(t *testing.T) {
	out, err := Render(Mock(), CSS)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		":root {",
		"  --color-primary: #0066FF;",
		"  --font-family: Inter, sans-serif;",
		"  --font-size-md: 16px;",
		"  --spacing-md: 16px;",
		"  --radius-full: 9999px;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("CSS output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("CSS output not closed:\n%s", out)
	}
}

func TestRender_SCSS(t *testing.T) {
	out, err := Render(Mock(), SCSS)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "$color-error: #EF4444;") {
		t.Errorf("SCSS output missing color-error:\n%s", out)
	}
	if strings.Contains(out, ":root") {
		t.Error("SCSS output should not contain :root")
	}
}

func TestRender_Deterministic(t *testing.T) {
	for _, f := range Formats {
		first, err := Render(Mock(), f)
		if err != nil {
			t.Fatalf("Render(%s) error = %v", f, err)
		}
		for i := 0; i < 5; i++ {
			again, _ := Render(Mock(), f)
			if again != first {
				t.Fatalf("Render(%s) output changed between calls", f)
			}
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"json", "CSS", "scss", "yaml"} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", in, err)
		}
	}
	if _, err := ParseFormat("toml"); err == nil {
		t.Error("ParseFormat(toml) should fail")
	}
	if _, err := Render(Mock(), "toml"); err == nil {
		t.Error("Render(toml) should fail")
	}
}
