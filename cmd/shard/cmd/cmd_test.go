package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const swatch = `{
	"version": "1.0.0",
	"root": {
		"kind": "flexbox",
		"props": {
			"children": [
				{"kind": "solid-color", "props": {"background-color": "#ff0000"},
				 "layout": {"width": {"value": 40, "unit": "point"}, "height": {"value": 20, "unit": "point"}}}
			]
		}
	}
}`

const swatchYAML = `
kind: flexbox
props:
  children:
    - kind: solid-color
      layout:
        width: {value: 40, unit: point}
        height: {value: 20, unit: point}
`

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &buf, &buf
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return &buf
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseLayoutArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(layoutOptions) bool
	}{
		{"defaults", []string{"a.json"}, false, func(o layoutOptions) bool {
			return o.path == "a.json" && o.size.Width == 390 && o.size.Height == 844 && o.wait == 0
		}},
		{"size", []string{"--width", "320", "--height", "480", "a.json"}, false, func(o layoutOptions) bool {
			return o.size.Width == 320 && o.size.Height == 480
		}},
		{"wait", []string{"a.json", "--wait", "250ms", "--no-images"}, false, func(o layoutOptions) bool {
			return o.wait == 250*time.Millisecond && o.noImages
		}},
		{"missing path", nil, true, nil},
		{"two paths", []string{"a.json", "b.json"}, true, nil},
		{"bad width", []string{"--width", "-1", "a.json"}, true, nil},
		{"width without value", []string{"a.json", "--width"}, true, nil},
		{"bad wait", []string{"--wait", "soon", "a.json"}, true, nil},
		{"unknown flag", []string{"--depth", "a.json"}, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseLayoutArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLayoutArgs(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(opts) {
				t.Errorf("parseLayoutArgs(%q) = %+v", tt.args, opts)
			}
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "swatch.json", swatch)
	yamlPath := writeFile(t, dir, "swatch.yaml", swatchYAML)

	for _, path := range []string{jsonPath, yamlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			out := captureOutput(t)
			if err := Execute([]string{"layout", "--no-images", path}); err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(out.String(), "container (") {
				t.Errorf("output does not start with the root container:\n%s", out)
			}
			if !strings.Contains(out.String(), "view (0,0 40x20)") {
				t.Errorf("missing swatch frame:\n%s", out)
			}
		})
	}
}

func TestLayoutUsesDirectoryConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shard.yaml", "display:\n  density: 2\n")
	path := writeFile(t, dir, "swatch.json", swatch)

	out := captureOutput(t)
	if err := Execute([]string{"layout", "--no-images", path}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "view (0,0 80x40)") {
		t.Errorf("density not applied:\n%s", out)
	}
}

func TestLayoutErrors(t *testing.T) {
	dir := t.TempDir()
	unknown := writeFile(t, dir, "unknown.json", `{"kind": "flexbx", "props": {"children": []}}`)
	errDoc := writeFile(t, dir, "error.json", `{"error": "down for maintenance"}`)

	captureOutput(t)
	if err := Execute([]string{"layout", unknown}); err == nil || !strings.Contains(err.Error(), `"flexbox"`) {
		t.Errorf("unknown kind error = %v", err)
	}
	if err := Execute([]string{"layout", errDoc}); err == nil || !strings.Contains(err.Error(), "maintenance") {
		t.Errorf("document error = %v", err)
	}
	if err := Execute([]string{"layout", filepath.Join(dir, "absent.json")}); err == nil {
		t.Error("missing file laid out")
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", swatch)
	bad := writeFile(t, dir, "bad.json", `{"kind": "flexbox"}`)

	out := captureOutput(t)
	if err := Execute([]string{"validate", good}); err != nil {
		t.Fatalf("validate good: %v", err)
	}
	if !strings.Contains(out.String(), "ok   "+good) {
		t.Errorf("output = %q", out)
	}

	out.Reset()
	err := Execute([]string{"validate", good, bad})
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("err = %v", err)
	}
	if !strings.Contains(out.String(), "FAIL "+bad) || !strings.Contains(out.String(), "children") {
		t.Errorf("output = %q", out)
	}
}

func TestRootCommands(t *testing.T) {
	out := captureOutput(t)
	if err := Execute([]string{"--version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("version output = %q", out)
	}

	out.Reset()
	if err := Execute(nil); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"layout", "validate", "kinds"} {
		if !strings.Contains(out.String(), "  "+name) {
			t.Errorf("help does not list %s:\n%s", name, out)
		}
	}

	out.Reset()
	if err := Execute([]string{"layout", "--help"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "--wait DURATION") {
		t.Errorf("layout help = %q", out)
	}

	if err := Execute([]string{"paint"}); err == nil {
		t.Error("unknown command succeeded")
	}
}

func TestKindsCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	out := captureOutput(t)
	if err := Execute([]string{"kinds"}); err != nil {
		t.Fatal(err)
	}
	want := "flexbox\nimage\nscroll\nsolid-color\ntext\n"
	if out.String() != want {
		t.Errorf("kinds = %q, want %q", out, want)
	}
}
