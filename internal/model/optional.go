package model

import (
	"baf/internal/bferr"
	"baf/internal/value"
)

// Optional is the composite datatype of spec.md §4.4: accepts any Value or
// Null. A Null input (or an Absent setter result, normalized to Null by
// the scheduler before Prepare runs) builds to zero-length bytes; any
// other input delegates to Inner.
type Optional struct {
	Inner Model
}

func (o Optional) TypeName() string { return "Optional<" + o.Inner.TypeName() + ">" }

func (o Optional) Instantiate(parent *Datum) *Datum {
	return newChild(o, parent, "")
}

func (o Optional) Preprocess(v value.Value) (value.Value, error) { return v, nil }

// Build runs once every present child (0 or 1) is Complete: it assembles
// the concatenation, which for Optional is either empty or the one
// child's bytes.
func (o Optional) Build(ctx *BuildContext, d *Datum, _ value.Value) error {
	bytes, err := concatChildren(d.Children())
	if err != nil {
		return err
	}
	d.Complete(bytes)
	return nil
}

func (o Optional) StaticSize() (int, bool) { return 0, false }

func (o Optional) Prepare(d *Datum) error {
	if d.Prepared() {
		return nil
	}
	res, ok := d.InputResult()
	if !ok {
		return &Pending{Target: d}
	}
	if res.Kind != ResultValue {
		return bferr.New(bferr.KindTypeMismatch, "Optional: unexpected setter result kind")
	}
	if res.Value.IsNull() {
		d.setChildren(nil)
		d.SetPrepared()
		return nil
	}
	child := o.Inner.Instantiate(d)
	child.SetName("(value)")
	child.SetInputResult(FromValue(res.Value))
	d.setChildren([]*Datum{child})
	d.SetPrepared()
	return nil
}

func (o Optional) ChildCount(d *Datum) int { return len(d.Children()) }

func (o Optional) DeriveChildInput(_ *BuildContext, d *Datum, i int) (SetterResult, error) {
	// The single child's input was already derived in Prepare.
	r, _ := d.Children()[i].InputResult()
	return r, nil
}

func (o Optional) ChildName(i int) string { return "(value)" }

var _ Container = Optional{}
