package bferr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageFormat(t *testing.T) {
	err := New(KindMissingField, "field %q has no input", "foo")
	assert.Equal(t, `MissingField: field "foo" has no input`, err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(KindIOError, cause, "reading file")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
}

func TestIsMatchesOnKindOnly(t *testing.T) {
	a := New(KindTypeMismatch, "one message")
	b := New(KindTypeMismatch, "a different message")
	c := New(KindValidationError, "one message")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestWithBreadcrumbPrependsOutermostFirst(t *testing.T) {
	err := New(KindTypeMismatch, "bad value")
	err1 := WithBreadcrumb(err, "Level -> data: LevelData")
	err2 := WithBreadcrumb(err1, "Root -> level: Level")

	var be *Error
	require.ErrorAs(t, err2, &be)
	assert.Equal(t, []string{"Root -> level: Level", "Level -> data: LevelData"}, be.Breadcrumb)
}

func TestWithBreadcrumbWrapsForeignError(t *testing.T) {
	foreign := fmt.Errorf("not a bferr error")
	wrapped := WithBreadcrumb(foreign, "Root -> x: U8")

	var be *Error
	require.ErrorAs(t, wrapped, &be)
	assert.Equal(t, KindSetterError, be.Kind)
	assert.Equal(t, []string{"Root -> x: U8"}, be.Breadcrumb)
}

func TestBreadcrumbFormatters(t *testing.T) {
	assert.Equal(t, "Level -> name: Bytes", BlockFieldCrumb("Level", "name", "Bytes"))
	assert.Equal(t, "Array[U16] -> (element 2)", ArrayElementCrumb("U16", 2))
}
