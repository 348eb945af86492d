package value

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarConstructors(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		v := IntFromInt64(42)
		i, ok := v.AsInt()
		require.True(t, ok)
		assert.Equal(t, big.NewInt(42), i)
	})

	t.Run("float", func(t *testing.T) {
		v := Float(3.5)
		f, ok := v.AsFloat()
		require.True(t, ok)
		assert.Equal(t, 3.5, f)
	})

	t.Run("str", func(t *testing.T) {
		v := Str("hello")
		s, ok := v.AsStr()
		require.True(t, ok)
		assert.Equal(t, "hello", s)
	})

	t.Run("null", func(t *testing.T) {
		assert.True(t, Null.IsNull())
		assert.False(t, IntFromInt64(0).IsNull())
	})
}

func TestWrongAccessorReturnsFalse(t *testing.T) {
	v := IntFromInt64(1)
	_, ok := v.AsStr()
	assert.False(t, ok)
	_, ok = v.AsFloat()
	assert.False(t, ok)
}

func TestListPreservesOrder(t *testing.T) {
	v := List([]Value{IntFromInt64(1), IntFromInt64(2), IntFromInt64(3)})
	items, ok := v.AsList()
	require.True(t, ok)
	require.Len(t, items, 3)
	for i, want := range []int64{1, 2, 3} {
		got, _ := items[i].AsInt()
		assert.Equal(t, big.NewInt(want), got)
	}
}

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap().Set("z", IntFromInt64(1)).Set("a", IntFromInt64(2)).Set("z", IntFromInt64(3))
	v := m.Build()

	assert.Equal(t, []string{"z", "a"}, v.MapKeys())

	got, ok := v.MapGet("z")
	require.True(t, ok)
	i, _ := got.AsInt()
	assert.Equal(t, big.NewInt(3), i) // last Set wins, first position kept

	_, ok = v.MapGet("missing")
	assert.False(t, ok)
}

func TestMapGetOnNonMapIsFalse(t *testing.T) {
	_, ok := IntFromInt64(1).MapGet("x")
	assert.False(t, ok)
}
