package props

import (
	"fmt"

	"github.com/go-drift/shard/pkg/errors"
	"github.com/go-drift/shard/pkg/graphics"
)

// Reader extracts typed props for one node kind. A Null or absent key is
// treated as "not set". The first mismatch is kept as a SchemaError and
// returned by Err; later reads still run but their results are unreliable.
//
//	r := props.NewReader("image", v)
//	src := r.RequiredString("src")
//	mode, _ := r.Enum("content-mode", "center", "cover", "contain")
//	if err := r.Err(); err != nil {
//		return err
//	}
type Reader struct {
	kind   string
	prefix string
	obj    Object
	err    *error
}

// NewReader reads v as the props object of kind. Null is an empty object;
// any other non-object value is a schema error.
func NewReader(kind string, v Value) *Reader {
	r := &Reader{kind: kind, err: new(error)}
	switch v.Type() {
	case TypeNull:
		r.obj = Object{}
	case TypeObject:
		r.obj, _ = v.AsObject()
	default:
		r.obj = Object{}
		r.fail("props", v, "want object")
	}
	return r
}

// Kind returns the node kind this reader reports errors for.
func (r *Reader) Kind() string { return r.kind }

// Err returns the first schema error encountered, or nil.
func (r *Reader) Err() error { return *r.err }

// Fail records a schema error for key unless one is already recorded.
func (r *Reader) Fail(key string, got Value, reason string) {
	r.fail(key, got, reason)
}

func (r *Reader) fail(key string, got Value, reason string) {
	if *r.err != nil {
		return
	}
	*r.err = &errors.SchemaError{Kind: r.kind, Key: r.prefix + key, Got: got.String(), Reason: reason}
}

func (r *Reader) missing(key string) {
	if *r.err != nil {
		return
	}
	*r.err = &errors.SchemaError{Kind: r.kind, Key: r.prefix + key, Missing: true}
}

// Value returns the raw value at key (Null when absent).
func (r *Reader) Value(key string) Value {
	return r.obj.Get(key)
}

// Has reports whether key is present and not Null.
func (r *Reader) Has(key string) bool {
	return !r.obj.Get(key).IsNull()
}

// Sub returns a reader over the object at key. Errors from the sub-reader
// are recorded on r and name the nested key ("layout.width").
func (r *Reader) Sub(key string) (*Reader, bool) {
	v := r.obj.Get(key)
	if v.IsNull() {
		return nil, false
	}
	obj, ok := v.AsObject()
	if !ok {
		r.fail(key, v, "want object")
		return nil, false
	}
	return &Reader{kind: r.kind, prefix: r.prefix + key + ".", obj: obj, err: r.err}, true
}

// Item returns a reader over the object at index i of the array at key.
// Errors name the element ("text[1].font-size").
func (r *Reader) Item(key string, i int) (*Reader, bool) {
	items, ok := r.obj.Get(key).AsArray()
	if !ok || i < 0 || i >= len(items) {
		return nil, false
	}
	v := items[i]
	path := fmt.Sprintf("%s[%d]", key, i)
	obj, ok := v.AsObject()
	if !ok {
		r.fail(path, v, "want object")
		return nil, false
	}
	return &Reader{kind: r.kind, prefix: r.prefix + path + ".", obj: obj, err: r.err}, true
}

// String reads an optional string.
func (r *Reader) String(key string) (string, bool) {
	v := r.obj.Get(key)
	if v.IsNull() {
		return "", false
	}
	s, ok := v.AsString()
	if !ok {
		r.fail(key, v, "want string")
		return "", false
	}
	return s, true
}

// Require records a missing-key error unless key is present.
func (r *Reader) Require(key string) bool {
	if r.Has(key) {
		return true
	}
	r.missing(key)
	return false
}

// RequiredString reads a string that must be present.
func (r *Reader) RequiredString(key string) string {
	if !r.Has(key) {
		r.missing(key)
		return ""
	}
	s, _ := r.String(key)
	return s
}

// Number reads an optional number.
func (r *Reader) Number(key string) (float64, bool) {
	v := r.obj.Get(key)
	if v.IsNull() {
		return 0, false
	}
	n, ok := v.AsNumber()
	if !ok {
		r.fail(key, v, "want number")
		return 0, false
	}
	return n, true
}

// Int reads an optional whole number.
func (r *Reader) Int(key string) (int, bool) {
	n, ok := r.Number(key)
	if !ok {
		return 0, false
	}
	if n != float64(int(n)) {
		r.fail(key, Number(n), "want integer")
		return 0, false
	}
	return int(n), true
}

// Bool reads an optional bool.
func (r *Reader) Bool(key string) (bool, bool) {
	v := r.obj.Get(key)
	if v.IsNull() {
		return false, false
	}
	b, ok := v.AsBool()
	if !ok {
		r.fail(key, v, "want bool")
		return false, false
	}
	return b, true
}

// Enum reads an optional string restricted to allowed.
func (r *Reader) Enum(key string, allowed ...string) (string, bool) {
	v := r.obj.Get(key)
	s, ok := r.String(key)
	if !ok {
		return "", false
	}
	for _, a := range allowed {
		if s == a {
			return s, true
		}
	}
	r.fail(key, v, fmt.Sprintf("want one of %v", allowed))
	return "", false
}

// RequiredEnum reads an enum that must be present.
func (r *Reader) RequiredEnum(key string, allowed ...string) string {
	if !r.Has(key) {
		r.missing(key)
		return ""
	}
	s, _ := r.Enum(key, allowed...)
	return s
}

// Dimension reads an optional {value, unit} length.
func (r *Reader) Dimension(key string) (Dim, bool) {
	v := r.obj.Get(key)
	if v.IsNull() {
		return Dim{}, false
	}
	d, ok := parseDim(v)
	if !ok {
		r.fail(key, v, "want {value, unit}")
		return Dim{}, false
	}
	return d, true
}

// Pixels reads an optional absolute dimension and resolves it at density.
// Percent values are rejected.
func (r *Reader) Pixels(key string, density float64) (float64, bool) {
	d, ok := r.Dimension(key)
	if !ok {
		return 0, false
	}
	px, ok := d.ToPixels(density)
	if !ok {
		r.fail(key, r.obj.Get(key), "percent not allowed")
		return 0, false
	}
	return px, true
}

func parseDim(v Value) (Dim, bool) {
	obj, ok := v.AsObject()
	if !ok {
		return Dim{}, false
	}
	n, ok := obj.Get("value").AsNumber()
	if !ok {
		return Dim{}, false
	}
	unitName, ok := obj.Get("unit").AsString()
	if !ok {
		return Dim{}, false
	}
	unit, ok := parseUnit(unitName)
	if !ok {
		return Dim{}, false
	}
	return Dim{Value: n, Unit: unit}, true
}

// Color reads an optional hex color string.
func (r *Reader) Color(key string) (graphics.Color, bool) {
	v := r.obj.Get(key)
	s, ok := r.String(key)
	if !ok {
		return 0, false
	}
	c, err := graphics.ParseHex(s)
	if err != nil {
		r.fail(key, v, "want hex color")
		return 0, false
	}
	return c, true
}

// ColorSpec reads either a hex color string or {default, pressed?}.
func (r *Reader) ColorSpec(key string) (graphics.ColorSpec, bool) {
	v := r.obj.Get(key)
	if v.IsNull() {
		return graphics.ColorSpec{}, false
	}
	if v.Type() == TypeString {
		c, ok := r.Color(key)
		return graphics.Uniform(c), ok
	}
	sub, ok := r.Sub(key)
	if !ok {
		return graphics.ColorSpec{}, false
	}
	if !sub.Has("default") {
		sub.missing("default")
		return graphics.ColorSpec{}, false
	}
	def, ok := sub.Color("default")
	if !ok {
		return graphics.ColorSpec{}, false
	}
	spec := graphics.ColorSpec{Default: def}
	if pressed, ok := sub.Color("pressed"); ok {
		spec.Pressed = &pressed
	}
	return spec, true
}

// Array reads an optional array.
func (r *Reader) Array(key string) ([]Value, bool) {
	v := r.obj.Get(key)
	if v.IsNull() {
		return nil, false
	}
	items, ok := v.AsArray()
	if !ok {
		r.fail(key, v, "want array")
		return nil, false
	}
	return items, true
}

// RequiredObject reads an object value that must be present.
func (r *Reader) RequiredObject(key string) Object {
	v := r.obj.Get(key)
	if v.IsNull() {
		r.missing(key)
		return nil
	}
	obj, ok := v.AsObject()
	if !ok {
		r.fail(key, v, "want object")
		return nil
	}
	return obj
}
