package tomlsrc

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baf/internal/value"
)

func TestDecodeScalarsAndNesting(t *testing.T) {
	src := `
world_num = 2
name = "Example Level"
checkpoints = [60, 180, 320, 400]

[data]
width = 1024
height = 400
`
	v, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, value.KindMap, v.Kind())

	world, ok := mustGet(t, v, "world_num").AsInt()
	require.True(t, ok)
	assert.Equal(t, big.NewInt(2), world)

	name, ok := mustGet(t, v, "name").AsStr()
	require.True(t, ok)
	assert.Equal(t, "Example Level", name)

	data := mustGet(t, v, "data")
	width, ok := mustGet(t, data, "width").AsInt()
	require.True(t, ok)
	assert.Equal(t, big.NewInt(1024), width)

	items, ok := mustGet(t, v, "checkpoints").AsList()
	require.True(t, ok)
	require.Len(t, items, 4)
	last, _ := items[3].AsInt()
	assert.Equal(t, big.NewInt(400), last)
}

func TestDecodeMalformedTOML(t *testing.T) {
	_, err := Decode(strings.NewReader("this is not = = toml"))
	assert.Error(t, err)
}

func mustGet(t *testing.T, m value.Value, key string) value.Value {
	t.Helper()
	got, ok := m.MapGet(key)
	require.True(t, ok, "key %q not found", key)
	return got
}
