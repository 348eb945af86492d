package model

import (
	"baf/internal/codec"
	"baf/internal/value"
)

// ScalarField is a leaf Model wrapping a fixed-width integer codec
// (spec.md §4.2). It builds in a single step and has a static size.
type ScalarField struct {
	Codec codec.Scalar
}

// U8, S8, U16, S16, U32, S32, U64, S64 are the scalar models named in
// spec.md §2's C2 row.
var (
	U8  = ScalarField{Codec: codec.U8}
	S8  = ScalarField{Codec: codec.S8}
	U16 = ScalarField{Codec: codec.U16}
	S16 = ScalarField{Codec: codec.S16}
	U32 = ScalarField{Codec: codec.U32}
	S32 = ScalarField{Codec: codec.S32}
	U64 = ScalarField{Codec: codec.U64}
	S64 = ScalarField{Codec: codec.S64}
)

// ScalarByName resolves a scalar field by its registered codec name
// ("u8", "s16", ...) — the "light declarative sugar" of spec.md §4.3, for
// schemas that want to name a field's width/signedness as a string (e.g.
// when the width comes from config) instead of the U8/S16/... constants.
// Panics if name is not registered, matching MustLookup's schema-time
// contract: an unknown codec name here is a programmer error, not a build
// error to recover from at runtime.
func ScalarByName(name string) ScalarField {
	return ScalarField{Codec: codec.MustLookup(name)}
}

func (s ScalarField) TypeName() string { return s.Codec.Name }

func (s ScalarField) Instantiate(parent *Datum) *Datum {
	return newChild(s, parent, "")
}

func (s ScalarField) Preprocess(v value.Value) (value.Value, error) { return v, nil }

func (s ScalarField) Build(ctx *BuildContext, d *Datum, v value.Value) error {
	order := ctx.ByteOrder
	bytes, err := s.Codec.Encode(v, order)
	if err != nil {
		return err
	}
	d.Complete(bytes)
	return nil
}

func (s ScalarField) StaticSize() (int, bool) { return s.Codec.Width, true }
