package build

import (
	"context"
	"path/filepath"

	"baf/internal/loader/jsonsrc"
	"baf/internal/loader/tomlsrc"
	"baf/internal/model"
)

func dirOf(path string) string { return filepath.Dir(path) }

// BuildTOML loads path as TOML source data and builds it against rootModel,
// per spec.md §6's `build_toml(root_model, path, root_path)`. root_path
// resolves File fields' relative paths (spec.md §4.4); if empty, it
// defaults to path's containing directory, so File fields are naturally
// relative to the schema's own input data by default.
func BuildTOML(ctx context.Context, rootModel model.Model, path string, opts Options) (*model.Datum, error) {
	input, err := tomlsrc.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.RootPath == "" {
		opts.RootPath = dirOf(path)
	}
	return Build(ctx, rootModel, input, opts)
}

// BuildJSON loads path as JSON source data and builds it against rootModel,
// per spec.md §6's `build_json`.
func BuildJSON(ctx context.Context, rootModel model.Model, path string, opts Options) (*model.Datum, error) {
	input, err := jsonsrc.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.RootPath == "" {
		opts.RootPath = dirOf(path)
	}
	return Build(ctx, rootModel, input, opts)
}
