package model

import (
	"fmt"

	"baf/internal/bferr"
	"baf/internal/value"
)

// Array is the composite datatype of spec.md §4.4: Array(element_model,
// count). Accepts a List; if Count is non-nil the length must match
// exactly, otherwise any length >= 0 is allowed. When Element is an
// abstract bound (see Abstract), entries must instead arrive as a
// ResultAltEntries (a setter-produced heterogeneous tuple list, spec.md
// §4.5).
type Array struct {
	Element Model
	Count   *int
}

func (a Array) TypeName() string { return "Array<" + a.Element.TypeName() + ">" }

func (a Array) Instantiate(parent *Datum) *Datum {
	return newChild(a, parent, "")
}

func (a Array) Preprocess(v value.Value) (value.Value, error) { return v, nil }

func (a Array) Build(ctx *BuildContext, d *Datum, _ value.Value) error {
	bytes, err := concatChildren(d.Children())
	if err != nil {
		return err
	}
	d.Complete(bytes)
	return nil
}

func (a Array) StaticSize() (int, bool) {
	if a.Count == nil {
		return 0, false
	}
	elemSize, ok := a.Element.StaticSize()
	if !ok {
		return 0, false
	}
	return *a.Count * elemSize, true
}

func (a Array) Prepare(d *Datum) error {
	if d.Prepared() {
		return nil
	}
	res, ok := d.InputResult()
	if !ok {
		return &Pending{Target: d}
	}

	switch res.Kind {
	case ResultAltEntries:
		if a.Count != nil && len(res.AltEntries) != *a.Count {
			return bferr.New(bferr.KindArrayLengthMismatch, "Array: expected %d elements, got %d", *a.Count, len(res.AltEntries))
		}
		children := make([]*Datum, len(res.AltEntries))
		for i, e := range res.AltEntries {
			child := e.Model.Instantiate(d)
			child.SetName(fmt.Sprintf("[%d]", i))
			child.SetInputResult(FromValue(e.Value))
			children[i] = child
		}
		d.setChildren(children)
	case ResultValue:
		items, ok := res.Value.AsList()
		if !ok {
			return bferr.New(bferr.KindTypeMismatch, "Array: expected List, got %s", res.Value.Kind())
		}
		if a.Count != nil && len(items) != *a.Count {
			return bferr.New(bferr.KindArrayLengthMismatch, "Array: expected %d elements, got %d", *a.Count, len(items))
		}
		children := make([]*Datum, len(items))
		for i, item := range items {
			child := a.Element.Instantiate(d)
			child.SetName(fmt.Sprintf("[%d]", i))
			child.SetInputResult(FromValue(item))
			children[i] = child
		}
		d.setChildren(children)
	default:
		return bferr.New(bferr.KindTypeMismatch, "Array: unexpected setter result kind for array input")
	}
	d.SetPrepared()
	return nil
}

func (a Array) ChildCount(d *Datum) int { return len(d.Children()) }

func (a Array) DeriveChildInput(_ *BuildContext, d *Datum, i int) (SetterResult, error) {
	r, _ := d.Children()[i].InputResult()
	return r, nil
}

func (a Array) ChildName(i int) string { return fmt.Sprintf("[%d]", i) }

var _ Container = Array{}

// FixedCount is a convenience constructor for Array's Count field.
func FixedCount(n int) *int { return &n }
