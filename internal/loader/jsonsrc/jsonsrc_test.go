package jsonsrc

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baf/internal/value"
)

func TestDecodeDistinguishesIntFromFloat(t *testing.T) {
	v, err := Decode(strings.NewReader(`{"count": 3, "ratio": 3.5, "name": "lvl", "tag": null}`))
	require.NoError(t, err)

	count, ok := mustGet(t, v, "count").AsInt()
	require.True(t, ok)
	assert.Equal(t, big.NewInt(3), count)

	ratio, ok := mustGet(t, v, "ratio").AsFloat()
	require.True(t, ok)
	assert.Equal(t, 3.5, ratio)

	name, ok := mustGet(t, v, "name").AsStr()
	require.True(t, ok)
	assert.Equal(t, "lvl", name)

	assert.True(t, mustGet(t, v, "tag").IsNull())
}

func TestDecodePreservesObjectKeyOrder(t *testing.T) {
	v, err := Decode(strings.NewReader(`{"z": 1, "a": 2, "m": 3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, v.MapKeys())
}

func TestDecodeArraysAndNesting(t *testing.T) {
	v, err := Decode(strings.NewReader(`{"checkpoints": [60, 180, 320, 400], "data": {"width": 1024}}`))
	require.NoError(t, err)

	items, ok := mustGet(t, v, "checkpoints").AsList()
	require.True(t, ok)
	require.Len(t, items, 4)
	first, _ := items[0].AsInt()
	assert.Equal(t, big.NewInt(60), first)

	width, ok := mustGet(t, mustGet(t, v, "data"), "width").AsInt()
	require.True(t, ok)
	assert.Equal(t, big.NewInt(1024), width)
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"a": `))
	assert.Error(t, err)
}

func mustGet(t *testing.T, m value.Value, key string) value.Value {
	t.Helper()
	got, ok := m.MapGet(key)
	require.True(t, ok, "key %q not found", key)
	return got
}
