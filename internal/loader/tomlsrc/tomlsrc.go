// Package tomlsrc is BAF's TOML front-end loader: it reads a .toml file and
// converts it verbatim into a value.Value tree (spec.md §6's
// `build_toml`), the way the teacher's internal/parser/toml package reads
// a schema file and converts it into the core.Database tree the rest of
// the toolchain operates on.
package tomlsrc

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"baf/internal/bferr"
	"baf/internal/value"
)

// Load opens path and parses it as TOML source data, returning the
// corresponding value.Value Map.
func Load(path string) (value.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return value.Null, bferr.Wrap(bferr.KindParseError, err, "toml: open file %q", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses TOML content from r.
func Decode(r io.Reader) (value.Value, error) {
	var raw map[string]any
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return value.Null, bferr.Wrap(bferr.KindParseError, err, "toml: decode error")
	}
	return convert(raw), nil
}

// convert maps the generic tree produced by BurntSushi/toml onto BAF's
// Value variants: TOML tables -> Map, arrays -> List, integers -> Int,
// floats -> Float (spec.md §6's "Input formats").
//
// Key order within a Map is not preserved here (BurntSushi's generic
// interface{} decode target loses it) — this is harmless for build
// correctness, since Block fields are always read by name in the model's
// own declaration order (spec.md §3's "canonical order" is independent of
// input map order).
func convert(v any) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Null
	case bool:
		if t {
			return value.IntFromInt64(1)
		}
		return value.IntFromInt64(0)
	case int64:
		return value.IntFromInt64(t)
	case int:
		return value.IntFromInt64(int64(t))
	case float64:
		return value.Float(t)
	case string:
		return value.Str(t)
	case []byte:
		return value.Bytes(t)
	case []any:
		items := make([]value.Value, len(t))
		for i, e := range t {
			items[i] = convert(e)
		}
		return value.List(items)
	case []map[string]any:
		items := make([]value.Value, len(t))
		for i, e := range t {
			items[i] = convert(e)
		}
		return value.List(items)
	case map[string]any:
		m := value.NewMap()
		for k, e := range t {
			m.Set(k, convert(e))
		}
		return m.Build()
	default:
		return value.Str(fmt.Sprintf("%v", t))
	}
}
