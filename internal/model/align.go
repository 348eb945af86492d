package model

import (
	"baf/internal/bferr"
	"baf/internal/value"
)

// Align is the padding datatype of spec.md §4.4: on build it computes its
// own offset and emits `(−offset) mod multiple` zero bytes. It accepts no
// input. Size is knowable only after offset is known, unless multiple==1
// (always zero padding, hence statically sized).
type Align struct {
	Multiple int
}

func (a Align) TypeName() string { return "Align" }

func (a Align) Instantiate(parent *Datum) *Datum {
	return newChild(a, parent, "")
}

func (a Align) Preprocess(v value.Value) (value.Value, error) { return v, nil }

func (a Align) Build(ctx *BuildContext, d *Datum, _ value.Value) error {
	if a.Multiple <= 0 {
		return bferr.New(bferr.KindValidationError, "Align: multiple must be positive, got %d", a.Multiple)
	}
	offset, err := d.Offset()
	if err != nil {
		return err
	}
	pad := (a.Multiple - offset%a.Multiple) % a.Multiple
	d.Complete(make([]byte, pad))
	return nil
}

func (a Align) StaticSize() (int, bool) {
	if a.Multiple == 1 {
		return 0, true
	}
	return 0, false
}
