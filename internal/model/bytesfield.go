package model

import (
	"baf/internal/bferr"
	"baf/internal/value"
)

// BytesField is the Bytes leaf datatype of spec.md §4.4: accepts Bytes or
// Str (encoded per Encoding, default UTF-8). Its size equals the payload
// length and is dynamic (not known before build).
type BytesField struct {
	Encoding string // "utf-8" (default) is the only encoding currently implemented
}

// Bytes is the zero-value Bytes model (UTF-8 string encoding).
var Bytes = BytesField{}

func (b BytesField) TypeName() string { return "Bytes" }

func (b BytesField) Instantiate(parent *Datum) *Datum {
	return newChild(b, parent, "")
}

func (b BytesField) Preprocess(v value.Value) (value.Value, error) { return v, nil }

func (b BytesField) Build(ctx *BuildContext, d *Datum, v value.Value) error {
	if raw, ok := v.AsBytes(); ok {
		d.Complete(raw)
		return nil
	}
	if s, ok := v.AsStr(); ok {
		d.Complete([]byte(s))
		return nil
	}
	return bferr.New(bferr.KindTypeMismatch, "Bytes: expected Bytes or Str, got %s", v.Kind())
}

func (b BytesField) StaticSize() (int, bool) { return 0, false }
