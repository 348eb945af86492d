package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baf/internal/bferr"
	"baf/internal/value"
)

// A minimal BuildContext good enough to exercise a single leaf model
// directly, bypassing the scheduler.
func leafCtx(d *Datum) *BuildContext {
	return &BuildContext{Datum: d, ByteOrder: nil}
}

func TestAlignPadsToNextMultiple(t *testing.T) {
	// A 3-byte leading field followed by an Align(4): offset after the
	// leading field is 3, so padding must be 1 byte (spec.md §8 invariant 4).
	parent := &Datum{}
	leading := newChild(BytesField{}, parent, "leading")
	leading.Complete([]byte{1, 2, 3})
	align := newChild(Align{Multiple: 4}, parent, "pad")
	parent.setChildren([]*Datum{leading, align})

	err := Align{Multiple: 4}.Build(leafCtx(align), align, value.Null)
	require.NoError(t, err)

	bytes, err := align.Bytes()
	require.NoError(t, err)
	assert.Len(t, bytes, 1)

	offset, err := align.Offset()
	require.NoError(t, err)
	size, err := align.Size()
	require.NoError(t, err)
	assert.Equal(t, 0, (offset+size)%4)
}

func TestAlignRejectsNonPositiveMultiple(t *testing.T) {
	d := newChild(Align{Multiple: 0}, nil, "pad")
	err := Align{Multiple: 0}.Build(leafCtx(d), d, value.Null)
	assert.Error(t, err)
}

func TestFileReadsRelativeToRootPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "payload.bin"), []byte("hello"), 0o644))

	d := newChild(File{}, nil, "blob")
	ctx := &BuildContext{Datum: d, RootPath: dir}
	err := File{}.Build(ctx, d, value.Str("payload.bin"))
	require.NoError(t, err)

	bytes, err := d.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), bytes)
}

func TestFileNotFoundError(t *testing.T) {
	d := newChild(File{}, nil, "blob")
	ctx := &BuildContext{Datum: d, RootPath: t.TempDir()}
	err := File{}.Build(ctx, d, value.Str("does-not-exist.bin"))
	require.Error(t, err)
	var be *bferr.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, bferr.KindFileNotFound, be.Kind)
}

func TestAbstractAlwaysFailsBuild(t *testing.T) {
	d := newChild(Abstract{Bound: "Block"}, nil, "payload")
	err := Abstract{Bound: "Block"}.Build(leafCtx(d), d, value.Null)
	require.Error(t, err)
	var be *bferr.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, bferr.KindValidationError, be.Kind)
}

func TestScalarByNameResolvesRegisteredCodec(t *testing.T) {
	field := ScalarByName("u16")
	assert.Equal(t, "U16", field.TypeName())

	d := newChild(field, nil, "width")
	err := field.Build(leafCtx(d), d, value.IntFromInt64(300))
	require.NoError(t, err)
	bytes, err := d.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x2c, 0x01}, bytes)
}

func TestScalarByNamePanicsOnUnknownCodec(t *testing.T) {
	assert.Panics(t, func() { ScalarByName("nope") })
}

func TestForceDependencyOnNilTargetReturnsError(t *testing.T) {
	// ctx.Sibling returns nil for an unknown field name (e.g. a typo);
	// ForceDependency must report that as an error, not panic.
	ctx := &BuildContext{}
	err := ctx.ForceDependency(nil)
	require.Error(t, err)
	var be *bferr.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, bferr.KindMissingField, be.Kind)
}

func TestPendingErrorMessage(t *testing.T) {
	target := newChild(U8, nil, "x")
	p := &Pending{Target: target}
	assert.Contains(t, p.Error(), "x")

	got, ok := AsPending(p)
	require.True(t, ok)
	assert.Same(t, target, got.Target)
}
