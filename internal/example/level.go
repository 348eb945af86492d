// Package example provides a runnable schema for the CLI: a small game
// level file format built out of the composite datatypes in package
// model. It exercises scalars, a length-prefixed string, a forward offset
// reference, a variable-length array, an optional field and an alignment
// pad in one schema, so `cmd/baf` has something real to build and
// visualize.
package example

import (
	"baf/internal/model"
	"baf/internal/value"
)

// LevelHeader holds per-level metadata, including a length-prefixed name:
// name_length is never supplied by the caller, only computed from name's
// own built size once name has been built.
func levelHeader() *model.Block {
	b := model.NewBlock("LevelHeader")
	// world_num is named by string to show schemas can resolve a scalar
	// codec from config rather than only the U8/S16/... constants.
	b.Field("world_num", model.ScalarByName("u8"))
	b.Field("level_num", model.U8)
	b.Field("setting", model.U8)
	b.Field("bgm_id", model.U8)
	b.Field("name_length", model.U8)
	b.Field("name", model.Bytes)

	b.OnBuild("name_length", func(ctx *model.BuildContext) (model.SetterResult, error) {
		sibling := ctx.Sibling("name")
		size, err := sibling.Size()
		if err != nil {
			return model.SetterResult{}, err
		}
		return model.FromValue(value.IntFromInt64(int64(size))), nil
	})
	return b
}

// LevelData holds the level's fixed-size geometry block.
func levelData() *model.Block {
	b := model.NewBlock("LevelData")
	b.Field("width", model.U16)
	b.Field("height", model.U16)
	b.Field("spawn_x", model.U16)
	b.Field("spawn_y", model.U16)
	return b
}

// Level is the root schema: a 4-byte version tag, a forward-referencing
// offset to the data block, the variable-size header, the fixed-size
// data block, a variable checkpoint array, an optional music override,
// and a 4-byte alignment pad closing the file.
func Level() *model.Block {
	b := model.NewBlock("Level")
	b.FieldDefault("version", model.Bytes, value.Str("LV01"))
	b.Field("data_offset", model.U16)
	b.Field("header", levelHeader())
	b.Field("data", levelData())
	b.Field("checkpoints", model.Array{Element: model.U16})
	b.Field("bgm_override", model.Optional{Inner: model.U16})
	b.Field("pad", model.Align{Multiple: 4})

	b.OnBuild("data_offset", func(ctx *model.BuildContext) (model.SetterResult, error) {
		// data's offset is the sum of its preceding siblings' sizes, and
		// header (dynamically sized, via its own name_length/name chain) is
		// the one that isn't known until header itself is Complete. Declare
		// that dependency up front so a pass where header is still pending
		// defers here without first walking data's own (in general
		// arbitrarily expensive) offset computation.
		header := ctx.Sibling("header")
		if err := ctx.ForceDependency(header); err != nil {
			return model.SetterResult{}, err
		}
		offset, err := ctx.Sibling("data").Offset()
		if err != nil {
			return model.SetterResult{}, err
		}
		return model.FromValue(value.IntFromInt64(int64(offset))), nil
	})
	return b
}
