package model

import (
	"fmt"
)

// Datum is the per-build instance of a Model (spec.md §3). It is owned
// exclusively by its parent; the parent link is a non-owning back-reference
// used only for lookup (sibling access, offset computation).
type Datum struct {
	model  Model
	parent *Datum
	name   string

	children []*Datum

	input     *SetterResult
	pendingOn *Datum
	prepared  bool

	built bool
	bytes []byte
}

// Prepared reports whether a Container's Prepare has already run for d.
func (d *Datum) Prepared() bool { return d.prepared }

// SetPrepared marks d as prepared (children instantiated).
func (d *Datum) SetPrepared() { d.prepared = true }

// newChild is used by composite models to instantiate a child under parent.
func newChild(m Model, parent *Datum, name string) *Datum {
	return &Datum{model: m, parent: parent, name: name}
}

// Model returns d's originating model.
func (d *Datum) Model() Model { return d.model }

// Parent returns d's parent, or nil at the root.
func (d *Datum) Parent() *Datum { return d.parent }

// SetParent reparents d — used only when a setter inserts an already-built
// datum assembled out of band (spec.md §9's Open Question, resolved: the
// scheduler rewrites the parent and offsets recompute lazily since Offset()
// always walks current state).
func (d *Datum) SetParent(p *Datum) { d.parent = p }

// Name returns d's declared field name (Block) or synthetic element label
// (Array/Optional), or "$root" at the root.
func (d *Datum) Name() string { return d.name }

// SetName overrides d's label; used when a polymorphic setter swaps in an
// alternate-model datum into a named slot.
func (d *Datum) SetName(name string) { d.name = name }

// TypeName returns d.model's type name.
func (d *Datum) TypeName() string {
	if d.model == nil {
		return "<nil>"
	}
	return d.model.TypeName()
}

// Children returns d's current child datums in declaration order. Empty
// for leaves, or for Array/Optional before Prepare has run.
func (d *Datum) Children() []*Datum { return d.children }

// setChildren installs d's children wholesale; used by Container.Prepare
// implementations.
func (d *Datum) setChildren(children []*Datum) { d.children = children }

// ReplaceChild swaps d.children[i], used by the scheduler to install a
// polymorphic (alternate-model) or already-built-datum setter result into
// a declared slot (spec.md §4.3/§4.5).
func (d *Datum) ReplaceChild(i int, child *Datum) { d.children[i] = child }

// InputResult returns the derived (but not necessarily preprocessed) input
// for d, if derivation has happened yet.
func (d *Datum) InputResult() (SetterResult, bool) {
	if d.input == nil {
		return SetterResult{}, false
	}
	return *d.input, true
}

// SetInputResult records d's derived input.
func (d *Datum) SetInputResult(r SetterResult) { d.input = &r }

// HasInput reports whether derivation has happened for d.
func (d *Datum) HasInput() bool { return d.input != nil }

// IsBuilt reports whether d has completed (spec.md's "Complete" state).
func (d *Datum) IsBuilt() bool { return d.built }

// complete marks d Complete with the given bytes. Called by every Model's
// Build on success, or by the scheduler when assembling a Container's
// bytes from its now-Complete children.
func (d *Datum) complete(bytes []byte) {
	d.bytes = bytes
	d.built = true
	d.pendingOn = nil
}

// Complete is the exported form of complete, for use by Model
// implementations living outside this package's Build methods... In
// practice all Models are defined in this package, but the method is kept
// exported since Build is part of the public Model contract implementers
// may satisfy from elsewhere.
func (d *Datum) Complete(bytes []byte) { d.complete(bytes) }

// Bytes returns d's encoded bytes. Valid only once Complete.
func (d *Datum) Bytes() ([]byte, error) {
	if !d.built {
		return nil, &Pending{Target: d}
	}
	return d.bytes, nil
}

// Size returns d's size: len(bytes) once Complete, the model's static size
// if it has one, or Pending otherwise — spec.md §4.7.
func (d *Datum) Size() (int, error) {
	if d.built {
		return len(d.bytes), nil
	}
	if ss, ok := d.model.StaticSize(); ok {
		return ss, nil
	}
	return 0, &Pending{Target: d}
}

// Offset returns d's position within the root's concatenated bytes: the
// sum of all preceding siblings' sizes plus the parent's offset, or 0 at
// the root — spec.md §4.7. It is recomputed from current state on every
// call (no cache to invalidate): sizes either come from Complete bytes or
// a model's constant StaticSize, both of which are always consistent, so
// there is nothing to invalidate in this design — see DESIGN.md.
func (d *Datum) Offset() (int, error) {
	if d.parent == nil {
		return 0, nil
	}
	base, err := d.parent.Offset()
	if err != nil {
		return 0, err
	}
	for _, sib := range d.parent.children {
		if sib == d {
			return base, nil
		}
		sz, err := sib.Size()
		if err != nil {
			return 0, err
		}
		base += sz
	}
	return 0, fmt.Errorf("model: datum %s is not a child of its recorded parent", d.Path())
}

// PendingOn returns the datum d is currently deferred on, or nil.
func (d *Datum) PendingOn() *Datum { return d.pendingOn }

// SetPendingOn records d's current dependency target for cycle reporting.
func (d *Datum) SetPendingOn(target *Datum) { d.pendingOn = target }

// Path renders a dotted path from the root to d, for diagnostics.
func (d *Datum) Path() string {
	if d.parent == nil {
		return d.name
	}
	return d.parent.Path() + "." + d.name
}
