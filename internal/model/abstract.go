package model

import (
	"baf/internal/bferr"
	"baf/internal/value"
)

// Abstract is a declared-but-never-built model used purely as a type bound
// for polymorphic fields (spec.md §4.5): a block field or array element
// declared with an Abstract model must always be resolved, at build time,
// to a concrete model via a setter's ResultAlt/ResultAltEntries. Building
// one directly is a schema-authoring bug.
type Abstract struct {
	Bound string // e.g. "Block" — documents what concrete models must satisfy
}

func (a Abstract) TypeName() string { return "Abstract<" + a.Bound + ">" }

func (a Abstract) Instantiate(parent *Datum) *Datum {
	return newChild(a, parent, "")
}

func (a Abstract) Preprocess(v value.Value) (value.Value, error) { return v, nil }

func (a Abstract) Build(_ *BuildContext, _ *Datum, _ value.Value) error {
	return bferr.New(bferr.KindValidationError, "Abstract<%s>: no setter resolved a concrete model for this field", a.Bound)
}

func (a Abstract) StaticSize() (int, bool) { return 0, false }
