package props

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/go-drift/shard/pkg/errors"
	"github.com/go-drift/shard/pkg/graphics"
	"github.com/google/go-cmp/cmp"
)

func mustJSON(t *testing.T, s string) Value {
	t.Helper()
	v, err := DecodeJSON([]byte(s))
	if err != nil {
		t.Fatalf("DecodeJSON(%s): %v", s, err)
	}
	return v
}

func TestAbsentKeyIsNull(t *testing.T) {
	v := mustJSON(t, `{"a": 1}`)
	if !v.Get("missing").IsNull() {
		t.Error("absent key should read as Null")
	}
	if !Number(3).Get("a").IsNull() {
		t.Error("Get on a non-object should read as Null")
	}
}

func TestDecodeJSONAndYAMLAgree(t *testing.T) {
	j := mustJSON(t, `{"kind":"text","props":{"text":"hi","max-lines":2,"spans":[true,null]}}`)
	y, err := DecodeYAML([]byte(`
kind: text
props:
  text: hi
  max-lines: 2
  spans: [true, null]
`))
	if err != nil {
		t.Fatal(err)
	}
	if !j.Equal(y) {
		t.Errorf("JSON %s != YAML %s", j, y)
	}
	if diff := cmp.Diff(j.Interface(), y.Interface()); diff != "" {
		t.Errorf("Interface() mismatch (-json +yaml):\n%s", diff)
	}
}

func TestValueString(t *testing.T) {
	v := ObjectOf(Object{
		"b": Array(Number(1.5), Bool(false)),
		"a": String("x"),
		"c": Null(),
	})
	want := `{"a":"x","b":[1.5,false],"c":null}`
	if got := v.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestFromInterfaceRejectsNonFinite(t *testing.T) {
	if _, err := FromInterface(math.Inf(1)); err == nil {
		t.Error("expected error for +Inf")
	}
	if _, err := FromInterface(struct{}{}); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestDimensionPixels(t *testing.T) {
	tests := []struct {
		dim     Dim
		density float64
		want    float64
	}{
		{Points(100), 2, 200},
		{Points(10), 2.625, 26},
		{Points(1.5), 1, 2},
		{Pixels(13.5), 3, 13.5},
	}
	for _, tt := range tests {
		got, ok := tt.dim.ToPixels(tt.density)
		if !ok || got != tt.want {
			t.Errorf("%+v.ToPixels(%v) = %v, %v; want %v", tt.dim, tt.density, got, ok, tt.want)
		}
	}
	if _, ok := Percent(50).ToPixels(2); ok {
		t.Error("percent should not resolve to pixels")
	}
}

func TestDimensionRoundingIsNearestInteger(t *testing.T) {
	for _, density := range []float64{1, 1.5, 2, 2.625, 3, 3.5} {
		for v := -20.0; v <= 20; v += 0.25 {
			got, _ := Points(v).ToPixels(density)
			if got != math.Round(v*density) {
				t.Fatalf("Points(%v) at %v = %v, want %v", v, density, got, math.Round(v*density))
			}
		}
	}
}

func TestReaderDimensionUnits(t *testing.T) {
	r := NewReader("flexbox", mustJSON(t, `{
		"a": {"value": 4, "unit": "point"},
		"b": {"value": 4, "unit": "points"},
		"c": {"value": 4, "unit": "pixels"},
		"d": {"value": 50, "unit": "percent"}
	}`))
	want := map[string]Dim{"a": Points(4), "b": Points(4), "c": Pixels(4), "d": Percent(50)}
	for key, w := range want {
		got, ok := r.Dimension(key)
		if !ok || got != w {
			t.Errorf("Dimension(%q) = %+v, %v; want %+v", key, got, ok, w)
		}
	}
	if err := r.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReaderSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		read func(r *Reader)
		key  string
	}{
		{"missing required", `{}`, func(r *Reader) { r.RequiredString("src") }, "src"},
		{"wrong type", `{"text": 3}`, func(r *Reader) { r.String("text") }, "text"},
		{"bad enum", `{"direction": "diagonal"}`, func(r *Reader) { r.Enum("direction", "vertical", "horizontal") }, "direction"},
		{"bad unit", `{"w": {"value": 1, "unit": "em"}}`, func(r *Reader) { r.Dimension("w") }, "w"},
		{"percent pixels", `{"w": {"value": 1, "unit": "percent"}}`, func(r *Reader) { r.Pixels("w", 2) }, "w"},
		{"bad color", `{"c": "#12"}`, func(r *Reader) { r.Color("c") }, "c"},
		{"nested", `{"layout": {"width": true}}`, func(r *Reader) {
			sub, _ := r.Sub("layout")
			sub.Dimension("width")
		}, "layout.width"},
		{"color spec default", `{"c": {"pressed": "#fff"}}`, func(r *Reader) { r.ColorSpec("c") }, "c.default"},
		{"fractional int", `{"n": 1.5}`, func(r *Reader) { r.Int("n") }, "n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader("kind-x", mustJSON(t, tt.doc))
			tt.read(r)
			var schema *errors.SchemaError
			if !stderrors.As(r.Err(), &schema) {
				t.Fatalf("Err() = %v, want SchemaError", r.Err())
			}
			if schema.Kind != "kind-x" || schema.Key != tt.key {
				t.Errorf("SchemaError kind/key = %q/%q, want kind-x/%q", schema.Kind, schema.Key, tt.key)
			}
		})
	}
}

func TestReaderNullMeansUnset(t *testing.T) {
	r := NewReader("text", mustJSON(t, `{"font-size": null, "text": null}`))
	if _, ok := r.Dimension("font-size"); ok {
		t.Error("null dimension should be unset")
	}
	if _, ok := r.String("text"); ok {
		t.Error("null string should be unset")
	}
	if err := r.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReaderFirstErrorWins(t *testing.T) {
	r := NewReader("image", mustJSON(t, `{"src": 1, "content-mode": 2}`))
	r.String("src")
	r.String("content-mode")
	var schema *errors.SchemaError
	if !stderrors.As(r.Err(), &schema) || schema.Key != "src" {
		t.Errorf("Err() = %v, want error for src", r.Err())
	}
}

func TestReaderNonObjectProps(t *testing.T) {
	r := NewReader("text", String("oops"))
	if r.Err() == nil {
		t.Error("string props should be a schema error")
	}
	if NewReader("text", Null()).Err() != nil {
		t.Error("null props should read as empty")
	}
}

func TestReaderColorSpec(t *testing.T) {
	r := NewReader("flexbox", mustJSON(t, `{
		"plain": "#ff0000",
		"pressable": {"default": "#000000", "pressed": "#FFFFFF"}
	}`))
	plain, ok := r.ColorSpec("plain")
	if !ok || plain.Default != graphics.ColorRed || plain.Pressed != nil {
		t.Errorf("plain = %+v, %v", plain, ok)
	}
	pressable, ok := r.ColorSpec("pressable")
	if !ok || pressable.Default != graphics.ColorBlack || pressable.Pressed == nil || *pressable.Pressed != graphics.ColorWhite {
		t.Errorf("pressable = %+v, %v", pressable, ok)
	}
	if err := r.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
