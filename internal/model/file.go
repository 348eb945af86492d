package model

import (
	"os"
	"path/filepath"

	"baf/internal/bferr"
	"baf/internal/value"
)

// File is the datatype of spec.md §4.4 that reads an external file's bytes
// verbatim. It accepts a Str path, resolved against the build's root path
// when relative.
type File struct{}

func (f File) TypeName() string { return "File" }

func (f File) Instantiate(parent *Datum) *Datum {
	return newChild(f, parent, "")
}

func (f File) Preprocess(v value.Value) (value.Value, error) { return v, nil }

func (f File) Build(ctx *BuildContext, d *Datum, v value.Value) error {
	path, ok := v.AsStr()
	if !ok {
		return bferr.New(bferr.KindTypeMismatch, "File: expected Str path, got %s", v.Kind())
	}
	if !filepath.IsAbs(path) && ctx.RootPath != "" {
		path = filepath.Join(ctx.RootPath, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return bferr.Wrap(bferr.KindFileNotFound, err, "File: %s not found", path)
		}
		return bferr.Wrap(bferr.KindIOError, err, "File: could not read %s", path)
	}
	d.Complete(data)
	return nil
}

func (f File) StaticSize() (int, bool) { return 0, false }
