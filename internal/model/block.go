package model

import (
	"baf/internal/bferr"
	"baf/internal/value"
)

// Field declares one named child of a Block model, in the order it will be
// built, byte-concatenated, and offset-computed (spec.md §3's "canonical
// order").
type Field struct {
	Name    string
	Model   Model
	Default *value.Value
}

// Block is the composite datatype of spec.md §4.4: an ordered, named
// grouping of child fields. It accepts a Map. Setters attach by name via
// OnBuild, the explicit-schema-construction replacement for the source's
// metaclass-driven declaration (spec.md §9).
type Block struct {
	typeName string
	fields   []Field
	setters  map[string]SetterFunc
}

// NewBlock starts a Block model declaration.
func NewBlock(typeName string) *Block {
	return &Block{typeName: typeName, setters: map[string]SetterFunc{}}
}

// Field appends a required field in declaration order.
func (b *Block) Field(name string, m Model) *Block {
	b.fields = append(b.fields, Field{Name: name, Model: m})
	return b
}

// FieldDefault appends a field with a fallback value used when no input,
// setter, nor mapping entry supplies one.
func (b *Block) FieldDefault(name string, m Model, def value.Value) *Block {
	b.fields = append(b.fields, Field{Name: name, Model: m, Default: &def})
	return b
}

// OnBuild registers a setter for a declared field, replacing the default
// "read from the input mapping" behavior for that field (spec.md §4.3).
func (b *Block) OnBuild(name string, fn SetterFunc) *Block {
	b.setters[name] = fn
	return b
}

func (b *Block) TypeName() string { return b.typeName }

// Instantiate eagerly creates one child datum per declared field — a
// Block's shape never depends on runtime input, unlike Array/Optional, so
// there is nothing to defer here (it is marked Prepared immediately).
func (b *Block) Instantiate(parent *Datum) *Datum {
	d := newChild(b, parent, "")
	children := make([]*Datum, len(b.fields))
	for i, f := range b.fields {
		child := f.Model.Instantiate(d)
		child.SetName(f.Name)
		children[i] = child
	}
	d.setChildren(children)
	d.SetPrepared()
	return d
}

func (b *Block) Preprocess(v value.Value) (value.Value, error) { return v, nil }

func (b *Block) Build(ctx *BuildContext, d *Datum, _ value.Value) error {
	bytes, err := concatChildren(d.Children())
	if err != nil {
		return err
	}
	d.Complete(bytes)
	return nil
}

func (b *Block) StaticSize() (int, bool) { return 0, false }

func (b *Block) Prepare(d *Datum) error { return nil } // done eagerly in Instantiate

func (b *Block) ChildCount(d *Datum) int { return len(d.Children()) }

func (b *Block) ChildName(i int) string { return b.fields[i].Name }

// DeriveChildInput derives child i's input following spec.md §4.6 step 1:
// setter, else input mapping, else default, else (for a no-input Align
// field, or a missing Optional field) Null, else MissingField.
func (b *Block) DeriveChildInput(ctx *BuildContext, d *Datum, i int) (SetterResult, error) {
	field := b.fields[i]
	child := d.Children()[i]

	if setter, ok := b.setters[field.Name]; ok {
		// ctx already arrives bound to child (the scheduler calls
		// DeriveChildInput via bctx.WithDatum(child)); reuse it directly.
		res, err := setter(ctx)
		if err != nil {
			if _, ok := AsPending(err); ok {
				return SetterResult{}, err
			}
			return SetterResult{}, bferr.Wrap(bferr.KindSetterError, err, "setter %q failed", field.Name)
		}
		return res, nil
	}

	own, ok := d.InputResult()
	if ok && own.Kind == ResultValue {
		if v, found := own.Value.MapGet(field.Name); found {
			return FromValue(v), nil
		}
	}

	if field.Default != nil {
		return FromValue(*field.Default), nil
	}

	// Align accepts no input; a missing Optional field means "absent",
	// not an error (spec.md §4.4's "Null ... signals absent for Optional").
	switch child.Model().(type) {
	case Align:
		return FromValue(value.Null), nil
	case Optional:
		return FromValue(value.Null), nil
	}

	return SetterResult{}, bferr.New(bferr.KindMissingField, "field %q has no input, no setter result, and no default", field.Name)
}

var _ Container = (*Block)(nil)
