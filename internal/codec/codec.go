// Package codec provides the fixed-width scalar encoders BAF uses to turn
// a value.Value into bytes (spec.md §4.2): U8/S8/U16/S16/U32/S32/U64/S64.
// The raw byte blob is model.BytesField, not a codec here. Byte order is
// configured globally per build and defaults to little-endian.
package codec

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"baf/internal/bferr"
	"baf/internal/value"
)

// Scalar is a fixed-width integer codec.
type Scalar struct {
	Name     string
	Width    int // bytes
	Signed   bool
	min, max *big.Int
}

// Accepts reports whether v is an Int within the codec's representable
// range, per spec.md §4.1 ("range violations are reported as TypeMismatch").
func (s Scalar) Accepts(v value.Value) error {
	i, ok := v.AsInt()
	if !ok {
		return bferr.New(bferr.KindTypeMismatch, "%s: expected Int, got %s", s.Name, v.Kind())
	}
	if i.Cmp(s.min) < 0 || i.Cmp(s.max) > 0 {
		return bferr.New(bferr.KindTypeMismatch, "%s: value %s out of range [%s, %s]", s.Name, i, s.min, s.max)
	}
	return nil
}

// Encode writes v's two's-complement representation using the given byte
// order. v is checked with Accepts first, and its error is returned if it
// fails.
func (s Scalar) Encode(v value.Value, order binary.ByteOrder) ([]byte, error) {
	if err := s.Accepts(v); err != nil {
		return nil, err
	}
	i, _ := v.AsInt()
	buf := make([]byte, s.Width)

	// Two's complement fixed-width encoding: take the low Width*8 bits of
	// i's value, treating negative numbers as i + 2^(Width*8).
	mod := new(big.Int).Lsh(big.NewInt(1), uint(s.Width*8))
	norm := new(big.Int).Mod(i, mod)
	normBytes := norm.Bytes() // big-endian, minimal length

	full := make([]byte, s.Width)
	copy(full[s.Width-len(normBytes):], normBytes)

	// A nil order means the caller didn't set one; fall back to the
	// documented little-endian default (spec.md §4.2) instead of silently
	// encoding big-endian.
	if order == nil {
		order = binary.LittleEndian
	}

	switch order {
	case binary.LittleEndian:
		for i, b := range full {
			buf[s.Width-1-i] = b
		}
	default:
		copy(buf, full)
	}
	return buf, nil
}

func unsignedRange(width int) (*big.Int, *big.Int) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width*8)), big.NewInt(1))
	return big.NewInt(0), max
}

func signedRange(width int) (*big.Int, *big.Int) {
	bits := uint(width*8 - 1)
	min := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), bits))
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
	return min, max
}

func newUnsigned(name string, width int) Scalar {
	min, max := unsignedRange(width)
	return Scalar{Name: name, Width: width, Signed: false, min: min, max: max}
}

func newSigned(name string, width int) Scalar {
	min, max := signedRange(width)
	return Scalar{Name: name, Width: width, Signed: true, min: min, max: max}
}

var (
	U8  = newUnsigned("U8", 1)
	S8  = newSigned("S8", 1)
	U16 = newUnsigned("U16", 2)
	S16 = newSigned("S16", 2)
	U32 = newUnsigned("U32", 4)
	S32 = newSigned("S32", 4)
	U64 = newUnsigned("U64", 8)
	S64 = newSigned("S64", 8)
)

// registryMu and registry let schema authors name a scalar codec by string
// (the "light declarative sugar" of spec.md §4.3), mirroring the teacher's
// dialect registry: a constructor keyed by name, guarded by a mutex.
var (
	registryMu sync.RWMutex
	registry   = map[string]Scalar{
		"u8": U8, "s8": S8,
		"u16": U16, "s16": S16,
		"u32": U32, "s32": S32,
		"u64": U64, "s64": S64,
	}
)

// RegisterCodec adds or replaces a named scalar codec in the registry.
func RegisterCodec(name string, s Scalar) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = s
}

// Lookup returns the named scalar codec.
func Lookup(name string) (Scalar, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[name]
	if !ok {
		return Scalar{}, fmt.Errorf("codec: %q is not registered", name)
	}
	return s, nil
}

// MustLookup panics if name is not registered; intended for schema-definition
// time where an unknown codec name is a programmer error, not a build error.
func MustLookup(name string) Scalar {
	s, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return s
}
