// Package model implements the schema/datum split of spec.md §3–§4: the
// polymorphic Datatype trait (Model), its composite implementations
// (Block, Array, Optional, Align, File, plus the scalar and bytes leaves),
// and the per-build Datum instances the scheduler in package build walks.
package model

import (
	"encoding/binary"
	"errors"
	"fmt"

	"baf/internal/bferr"
	"baf/internal/value"
)

// ByteOrder is the build-wide scalar byte order, configurable per schema
// (spec.md §4.2); defaults to little-endian.
type ByteOrder = binary.ByteOrder

// Model is the declarative, reusable schema node — spec.md's "Datatype
// trait" (C3). A single Model may be instantiated many times.
type Model interface {
	// TypeName is used in breadcrumbs and the tree visualizer.
	TypeName() string

	// Instantiate produces an owned child Datum for this model under parent
	// (nil for the root).
	Instantiate(parent *Datum) *Datum

	// Preprocess transforms the incoming Value before Build sees it. The
	// default (for types with no hook) is identity.
	Preprocess(v value.Value) (value.Value, error)

	// Build consumes v and produces d's bytes via d.Complete(bytes). It may
	// return a *Pending to defer, any *bferr.Error to fail, or nil only
	// after calling d.Complete. ctx carries build-wide state (byte order,
	// root path) and the sibling/force-dependency API.
	Build(ctx *BuildContext, d *Datum, v value.Value) error

	// StaticSize reports the model's size before build, if and only if it
	// never depends on runtime input (spec.md §7: scalars, Align{1}, and a
	// fixed-count Array of statically sized elements).
	StaticSize() (int, bool)
}

// Container is implemented by the composite models whose datum owns an
// ordered sequence of children that the scheduler itself builds field by
// field: Block, Array, Optional.
type Container interface {
	Model

	// Prepare (idempotent) ensures d's children are instantiated from d's
	// already-derived input. Called once per pass until it succeeds.
	Prepare(d *Datum) error

	// ChildCount reports how many children currently exist. Zero before
	// Prepare has run for Array/Optional.
	ChildCount(d *Datum) int

	// DeriveChildInput derives (but does not preprocess) child i's input:
	// by setter, by map lookup, by default, or by direct indexing — the
	// concrete rule is type-specific (spec.md §4.4).
	DeriveChildInput(ctx *BuildContext, d *Datum, i int) (SetterResult, error)

	// ChildName returns child i's declared field/element name, for
	// breadcrumbs and the visualizer.
	ChildName(i int) string
}

// Pending signals that a Build, Size, or Offset call is blocked on another
// datum that is not yet Complete (spec.md §4.6/§4.7). It is a first-class
// control-flow value, not a failure.
type Pending struct {
	Target *Datum
}

func (p *Pending) Error() string {
	return fmt.Sprintf("pending on %s", p.Target.Path())
}

// AsPending reports whether err is (or wraps) a *Pending.
func AsPending(err error) (*Pending, bool) {
	var p *Pending
	ok := errors.As(err, &p)
	return p, ok
}

// ResultKind tags the variant of a SetterResult.
type ResultKind int

const (
	// ResultValue carries a concrete Value, built by the field's declared
	// model normally.
	ResultValue ResultKind = iota
	// ResultAbsent means the setter returned None: allowed only for
	// Optional, equivalent to a Null input.
	ResultAbsent
	// ResultDatum carries an already-built datum, inserted as-is.
	ResultDatum
	// ResultAlt carries (alternate_model, value): instantiate the
	// alternate model instead of the declared field's model.
	ResultAlt
	// ResultAltEntries carries a full set of heterogeneous (model, value)
	// entries for a polymorphic array field (spec.md §4.5).
	ResultAltEntries
)

// AltEntry is one heterogeneous entry of a polymorphic array.
type AltEntry struct {
	Model Model
	Value value.Value
}

// SetterResult is the tagged return of a user setter (spec.md §4.3) or of
// a Container's own child-input derivation.
type SetterResult struct {
	Kind       ResultKind
	Value      value.Value
	Datum      *Datum
	AltModel   Model
	AltValue   value.Value
	AltEntries []AltEntry
}

// FromValue builds a plain-value SetterResult.
func FromValue(v value.Value) SetterResult { return SetterResult{Kind: ResultValue, Value: v} }

// Absent builds the "None" SetterResult.
func Absent() SetterResult { return SetterResult{Kind: ResultAbsent} }

// FromDatum builds an already-built-datum SetterResult.
func FromDatum(d *Datum) SetterResult { return SetterResult{Kind: ResultDatum, Datum: d} }

// FromAlt builds a polymorphic single-entry SetterResult.
func FromAlt(m Model, v value.Value) SetterResult {
	return SetterResult{Kind: ResultAlt, AltModel: m, AltValue: v}
}

// FromAltEntries builds a polymorphic-array SetterResult.
func FromAltEntries(entries []AltEntry) SetterResult {
	return SetterResult{Kind: ResultAltEntries, AltEntries: entries}
}

// SetterFunc is a user callback attached to a Block field via OnBuild. It
// may perform arbitrary (including blocking) work; any panic-free error it
// returns that isn't *Pending is wrapped as SetterError by the caller.
type SetterFunc func(ctx *BuildContext) (SetterResult, error)

// BuildContext is what setters and Preprocess hooks receive: a handle on
// the field's own datum plus build-wide read-only state (spec.md §5's
// "root path is a read-only property of the build context").
type BuildContext struct {
	Datum     *Datum
	RootPath  string
	ByteOrder ByteOrder
}

// WithDatum returns a shallow copy of ctx pointed at a different datum,
// used when the scheduler descends into a child.
func (ctx *BuildContext) WithDatum(d *Datum) *BuildContext {
	cp := *ctx
	cp.Datum = d
	return &cp
}

// Sibling looks up a named sibling of ctx.Datum within the common parent
// block. Returns nil if there is no such sibling (e.g. wrong name, or the
// parent isn't a Block).
func (ctx *BuildContext) Sibling(name string) *Datum {
	if ctx.Datum == nil || ctx.Datum.parent == nil {
		return nil
	}
	cont, ok := ctx.Datum.parent.model.(Container)
	if !ok {
		return nil
	}
	for i := 0; i < cont.ChildCount(ctx.Datum.parent); i++ {
		if cont.ChildName(i) == name {
			return ctx.Datum.parent.children[i]
		}
	}
	return nil
}

// ForceDependency reports whether target is already Complete. If not, it
// returns a *Pending error naming target, which the caller must propagate
// immediately — before doing any further work — so that a setter defers on
// a declared dependency without paying for any of its own expensive work
// first (spec.md §4.6 "Force dependency... enables failing fast before
// expensive setter work"). A nil target (e.g. a misspelled Sibling name)
// is a schema error, not a pending build, and is reported as such rather
// than dereferenced.
func (ctx *BuildContext) ForceDependency(target *Datum) error {
	if target == nil {
		return bferr.New(bferr.KindMissingField, "ForceDependency: target datum is nil")
	}
	if !target.IsBuilt() {
		return &Pending{Target: target}
	}
	return nil
}
