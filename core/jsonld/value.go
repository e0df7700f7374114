// Package jsonld wraps decoded JSON-LD payloads in a tagged value type.
// Publishers put strings, arrays and objects in the same field
// interchangeably, so callers switch on Kind instead of asserting types.
package jsonld

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Kind is the JSON shape held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a read-only view over one decoded JSON value.
// The zero Value is null; a missing object key also reads as null.
type Value struct {
	raw any
}

// Of wraps a value produced by a JSON decoder into map[string]any / []any.
func Of(raw any) Value {
	return Value{raw: raw}
}

// Parse decodes a single JSON document.
func Parse(text string) (Value, error) {
	var raw any
	if err := sonic.UnmarshalString(strings.TrimSpace(text), &raw); err != nil {
		return Value{}, fmt.Errorf("decoding JSON-LD: %w", err)
	}
	return Of(raw), nil
}

// Kind reports the shape of v.
func (v Value) Kind() Kind {
	switch v.raw.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case float64, int, int64:
		return KindNumber
	case bool:
		return KindBool
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindNull
	}
}

// IsNull reports whether v is null or absent.
func (v Value) IsNull() bool { return v.Kind() == KindNull }

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Scalar renders strings verbatim and numbers in their shortest form.
// Other kinds report false.
func (v Value) Scalar() (string, bool) {
	switch t := v.raw.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

// Items returns the elements of an array value.
func (v Value) Items() ([]Value, bool) {
	arr, ok := v.raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Value, len(arr))
	for i, item := range arr {
		out[i] = Of(item)
	}
	return out, true
}

// Get returns the member named key, or null when v is not an object
// or has no such member.
func (v Value) Get(key string) Value {
	obj, ok := v.raw.(map[string]any)
	if !ok {
		return Value{}
	}
	return Of(obj[key])
}

// Has reports whether v is an object carrying key, even if its value is null.
func (v Value) Has(key string) bool {
	obj, ok := v.raw.(map[string]any)
	if !ok {
		return false
	}
	_, ok = obj[key]
	return ok
}

// HasType reports whether the node's @type is name or an array containing name.
func (v Value) HasType(name string) bool {
	t := v.Get("@type")
	switch t.Kind() {
	case KindString:
		s, _ := t.Str()
		return s == name
	case KindArray:
		items, _ := t.Items()
		for _, item := range items {
			if s, ok := item.Str(); ok && s == name {
				return true
			}
		}
	}
	return false
}
