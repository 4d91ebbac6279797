// Package props holds the dynamically-typed property values carried by
// layout documents and the typed readers node kinds use to extract them.
//
// A Value is one of Null, Number, String, Bool, Object or Array. Reading
// a key that is absent from an Object yields Null, never an error.
package props

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Type identifies the variant held by a Value.
type Type int

const (
	TypeNull Type = iota
	TypeNumber
	TypeString
	TypeBool
	TypeObject
	TypeArray
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Value is an immutable tagged props value. The zero Value is Null.
type Value struct {
	typ Type
	num float64
	str string
	b   bool
	obj Object
	arr []Value
}

// Object maps keys to values.
type Object map[string]Value

// Get returns the value at key, or Null when the key is absent.
func (o Object) Get(key string) Value {
	return o[key]
}

// Keys returns the object's keys in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Null returns the Null value.
func Null() Value { return Value{} }

// Number wraps a float64.
func Number(n float64) Value { return Value{typ: TypeNumber, num: n} }

// String wraps a string.
func String(s string) Value { return Value{typ: TypeString, str: s} }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }

// ObjectOf wraps an Object. A nil object is still an (empty) Object value.
func ObjectOf(o Object) Value {
	if o == nil {
		o = Object{}
	}
	return Value{typ: TypeObject, obj: o}
}

// Array wraps a list of values.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{typ: TypeArray, arr: items}
}

// Type returns the variant held by v.
func (v Value) Type() Type { return v.typ }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.typ == TypeNull }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.num, v.typ == TypeNumber }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.str, v.typ == TypeString }

// AsBool returns the bool held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.typ == TypeBool }

// AsObject returns the object held by v.
func (v Value) AsObject() (Object, bool) { return v.obj, v.typ == TypeObject }

// AsArray returns the items held by v.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.typ == TypeArray }

// Get is shorthand for reading a key of an Object value. It returns Null
// when v is not an Object or the key is absent.
func (v Value) Get(key string) Value {
	if v.typ != TypeObject {
		return Value{}
	}
	return v.obj[key]
}

// Equal reports deep equality.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeNull:
		return true
	case TypeNumber:
		return v.num == other.num
	case TypeString:
		return v.str == other.str
	case TypeBool:
		return v.b == other.b
	case TypeObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, a := range v.obj {
			b, ok := other.obj[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	case TypeArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v compactly in JSON-like form, for messages and logs.
func (v Value) String() string {
	var sb strings.Builder
	v.render(&sb)
	return sb.String()
}

func (v Value) render(sb *strings.Builder) {
	switch v.typ {
	case TypeNull:
		sb.WriteString("null")
	case TypeNumber:
		sb.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
	case TypeString:
		sb.WriteString(strconv.Quote(v.str))
	case TypeBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case TypeObject:
		sb.WriteByte('{')
		for i, k := range v.obj.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			v.obj[k].render(sb)
		}
		sb.WriteByte('}')
	case TypeArray:
		sb.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.render(sb)
		}
		sb.WriteByte(']')
	}
}

// Interface converts v to plain Go values: nil, float64, string, bool,
// map[string]any and []any.
func (v Value) Interface() any {
	switch v.typ {
	case TypeNumber:
		return v.num
	case TypeString:
		return v.str
	case TypeBool:
		return v.b
	case TypeObject:
		m := make(map[string]any, len(v.obj))
		for k, item := range v.obj {
			m[k] = item.Interface()
		}
		return m
	case TypeArray:
		items := make([]any, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Interface()
		}
		return items
	default:
		return nil
	}
}

// FromInterface converts decoded JSON or YAML data into a Value.
func FromInterface(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return number(t)
	case float32:
		return number(float64(t))
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q", t.String())
		}
		return number(f)
	case map[string]any:
		obj := make(Object, len(t))
		for k, item := range t {
			v, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			obj[k] = v
		}
		return ObjectOf(obj), nil
	case map[any]any:
		obj := make(Object, len(t))
		for k, item := range t {
			key, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("non-string key %v", k)
			}
			v, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", key, err)
			}
			obj[key] = v
		}
		return ObjectOf(obj), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = v
		}
		return Array(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported props type %T", x)
	}
}

func number(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("non-finite number %v", f)
	}
	return Number(f), nil
}
