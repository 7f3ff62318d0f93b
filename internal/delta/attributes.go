package delta

import (
	"fmt"
	"sort"
	"strconv"
)

// ValueKind identifies the primitive type held by a Value.
type ValueKind uint8

const (
	// KindClear marks an explicitly cleared attribute. It is the zero kind.
	KindClear ValueKind = iota
	// KindString is a string value.
	KindString
	// KindNumber is a numeric value.
	KindNumber
	// KindBool is a boolean value.
	KindBool
)

// String returns a human-readable kind name.
func (k ValueKind) String() string {
	switch k {
	case KindClear:
		return "clear"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is an attribute value: a string, number, bool, or the clear marker.
// The zero Value is the clear marker.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

// Clear returns the marker that removes an attribute on merge.
func Clear() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// ValueOf converts a Go primitive into a Value.
// nil converts to Clear. Unsupported types return ErrUnsupportedValue.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Clear(), nil
	case Value:
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case float32:
		return Number(float64(x)), nil
	case float64:
		return Number(x), nil
	default:
		return Clear(), fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// Kind returns the kind of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsClear reports whether v is the clear marker.
func (v Value) IsClear() bool { return v.kind == KindClear }

// Str returns the string payload and whether v holds a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the numeric payload and whether v holds a number.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Truth returns the boolean payload and whether v holds a bool.
func (v Value) Truth() (bool, bool) { return v.b, v.kind == KindBool }

// Interface returns the value as a Go primitive, or nil for Clear.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	return v == other
}

// String formats the value for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "null"
	}
}

// LineType governs block-level rendering of a line.
type LineType string

// Known line types.
const (
	LineTypeNormal   LineType = "normal"
	LineTypeQuote    LineType = "quote"
	LineTypeListItem LineType = "list-item"
)

// AttrLineType is the attribute name under which a newline stores its line type.
const AttrLineType = "lineType"

// Attributes maps attribute names to values.
type Attributes map[string]Value

// Merge applies override on top of base and returns a new map.
// Keys in override replace keys in base; a Clear value in override deletes the
// key from the result instead of storing it. Neither input is modified.
func Merge(base, override Attributes) Attributes {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	result := make(Attributes, len(base)+len(override))
	for k, v := range base {
		if v.IsClear() {
			continue
		}
		result[k] = v
	}
	for k, v := range override {
		if v.IsClear() {
			delete(result, k)
			continue
		}
		result[k] = v
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// Compose combines two overrides applied in order into a single override.
// Unlike Merge, Clear markers are kept so that
// Merge(Merge(a, first), second) equals Merge(a, Compose(first, second)).
func Compose(first, second Attributes) Attributes {
	if len(first) == 0 && len(second) == 0 {
		return nil
	}
	result := make(Attributes, len(first)+len(second))
	for k, v := range first {
		result[k] = v
	}
	for k, v := range second {
		result[k] = v
	}
	return result
}

// Intersect returns the pairs present with equal values in both maps.
func Intersect(a, b Attributes) Attributes {
	var result Attributes
	for k, v := range a {
		if w, ok := b[k]; ok && v.Equal(w) {
			if result == nil {
				result = make(Attributes)
			}
			result[k] = v
		}
	}
	return result
}

// Clone returns a shallow copy of the map. Values are immutable.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	c := make(Attributes, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Equal reports whether both maps hold the same pairs. Nil and empty are equal.
func (a Attributes) Equal(other Attributes) bool {
	if len(a) != len(other) {
		return false
	}
	for k, v := range a {
		w, ok := other[k]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

// Get returns the value stored under name.
func (a Attributes) Get(name string) (Value, bool) {
	v, ok := a[name]
	return v, ok
}

// LineType returns the line type stored in the map, or LineTypeNormal.
func (a Attributes) LineType() LineType {
	if v, ok := a[AttrLineType]; ok {
		if s, ok := v.Str(); ok && s != "" {
			return LineType(s)
		}
	}
	return LineTypeNormal
}

// WithoutLineType returns the map minus the line type key.
func (a Attributes) WithoutLineType() Attributes {
	if _, ok := a[AttrLineType]; !ok {
		return a
	}
	c := a.Clone()
	delete(c, AttrLineType)
	if len(c) == 0 {
		return nil
	}
	return c
}

// Keys returns the attribute names in sorted order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
