package example

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baf/internal/build"
	"baf/internal/value"
)

func TestLevelSchemaBuildsEndToEnd(t *testing.T) {
	schema := Level()

	header := value.NewMap().
		Set("world_num", value.IntFromInt64(2)).
		Set("level_num", value.IntFromInt64(1)).
		Set("setting", value.IntFromInt64(0)).
		Set("bgm_id", value.IntFromInt64(7)).
		Set("name", value.Str("Example Level")).
		Build()

	data := value.NewMap().
		Set("width", value.IntFromInt64(1024)).
		Set("height", value.IntFromInt64(400)).
		Set("spawn_x", value.IntFromInt64(16)).
		Set("spawn_y", value.IntFromInt64(16)).
		Build()

	input := value.NewMap().
		Set("header", header).
		Set("data", data).
		Set("checkpoints", value.List([]value.Value{
			value.IntFromInt64(60), value.IntFromInt64(180),
		})).
		Build()

	root, err := build.Build(context.Background(), schema, input, build.Options{})
	require.NoError(t, err)

	bytes, err := root.Bytes()
	require.NoError(t, err)

	// version (4) + data_offset (2) + header (5+13) + data (8) + checkpoints (4) + bgm_override (0) + pad (?)
	assert.Equal(t, byte('L'), bytes[0])
	assert.Equal(t, byte('V'), bytes[1])
	assert.True(t, len(bytes)%4 == 0, "Align(4) must leave the file a multiple of 4 bytes")
}

func TestLevelSchemaWithoutCheckpointsOrMusic(t *testing.T) {
	schema := Level()

	header := value.NewMap().
		Set("world_num", value.IntFromInt64(1)).
		Set("level_num", value.IntFromInt64(1)).
		Set("setting", value.IntFromInt64(0)).
		Set("bgm_id", value.IntFromInt64(0)).
		Set("name", value.Str("A")).
		Build()
	data := value.NewMap().
		Set("width", value.IntFromInt64(1)).
		Set("height", value.IntFromInt64(1)).
		Set("spawn_x", value.IntFromInt64(0)).
		Set("spawn_y", value.IntFromInt64(0)).
		Build()
	input := value.NewMap().
		Set("header", header).
		Set("data", data).
		Set("checkpoints", value.List(nil)).
		Build()

	root, err := build.Build(context.Background(), schema, input, build.Options{})
	require.NoError(t, err)
	_, err = root.Bytes()
	require.NoError(t, err)
}
