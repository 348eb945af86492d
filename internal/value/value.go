// Package value provides the uniform, tagged representation of structured
// source data that flows into a BAF build: the output of a TOML or JSON
// loader, or the return value of a user setter.
package value

import (
	"fmt"
	"math/big"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindStr
	KindBytes
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindStr:
		return "Str"
	case KindBytes:
		return "Bytes"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	default:
		return "Unknown"
	}
}

// Value is the closed variant set described in spec.md §3. Integer width is
// unbounded at this layer; narrowing to a fixed-width codec happens in
// package codec.
type Value struct {
	kind  Kind
	i     *big.Int
	f     float64
	s     string
	b     []byte
	list  []Value
	mkeys []string
	mvals map[string]Value
}

// Null is the absent-value sentinel.
var Null = Value{kind: KindNull}

// Int wraps an arbitrary-precision integer.
func Int(i *big.Int) Value {
	return Value{kind: KindInt, i: new(big.Int).Set(i)}
}

// IntFromInt64 is a convenience constructor for the common case.
func IntFromInt64(i int64) Value {
	return Value{kind: KindInt, i: big.NewInt(i)}
}

// Float wraps a float64.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Str wraps a string.
func Str(s string) Value {
	return Value{kind: KindStr, s: s}
}

// Bytes wraps a raw byte sequence.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, b: append([]byte(nil), b...)}
}

// List wraps an ordered sequence of Values.
func List(items []Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

// NewMap builds an insertion-ordered mapping from string to Value.
func NewMap() *MapBuilder {
	return &MapBuilder{vals: map[string]Value{}}
}

// MapBuilder accumulates key/value pairs while preserving insertion order,
// then freezes into a Value via Build.
type MapBuilder struct {
	keys []string
	vals map[string]Value
}

// Set inserts or overwrites a key, appending it to the order the first time
// it's seen.
func (m *MapBuilder) Set(key string, v Value) *MapBuilder {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
	return m
}

// Build freezes the builder into a Map Value.
func (m *MapBuilder) Build() Value {
	vals := make(map[string]Value, len(m.vals))
	for k, v := range m.vals {
		vals[k] = v
	}
	return Value{
		kind:  KindMap,
		mkeys: append([]string(nil), m.keys...),
		mvals: vals,
	}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the Null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsInt returns the wrapped integer. ok is false if v is not an Int.
func (v Value) AsInt() (*big.Int, bool) {
	if v.kind != KindInt {
		return nil, false
	}
	return v.i, true
}

// AsFloat returns the wrapped float. ok is false if v is not a Float.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// AsStr returns the wrapped string. ok is false if v is not a Str.
func (v Value) AsStr() (string, bool) {
	if v.kind != KindStr {
		return "", false
	}
	return v.s, true
}

// AsBytes returns the wrapped byte sequence. ok is false if v is not Bytes.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return v.b, true
}

// AsList returns the wrapped sequence. ok is false if v is not a List.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// MapKeys returns the map's keys in insertion order. Empty if v is not a Map.
func (v Value) MapKeys() []string {
	if v.kind != KindMap {
		return nil
	}
	return v.mkeys
}

// MapGet looks up a key in an insertion-ordered Map.
func (v Value) MapGet(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	val, ok := v.mvals[key]
	return val, ok
}

// String renders a debug form; not used for byte output.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInt:
		return v.i.String()
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindStr:
		return fmt.Sprintf("%q", v.s)
	case KindBytes:
		return fmt.Sprintf("bytes[%d]", len(v.b))
	case KindList:
		return fmt.Sprintf("list[%d]", len(v.list))
	case KindMap:
		return fmt.Sprintf("map[%d]", len(v.mkeys))
	default:
		return "<invalid>"
	}
}
