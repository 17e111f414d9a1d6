package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))

	err := Wrap(ErrRelaxation, "relax Cu(100)")
	assert.EqualError(t, err, "relax Cu(100): relaxation failed")
	assert.ErrorIs(t, err, ErrRelaxation)
}

func TestWrapf(t *testing.T) {
	assert.Nil(t, Wrapf(nil, "task %s", "task-1"))

	err := Wrapf(ErrTaskNotFound, "task %s", "task-20260115-093002-a1b2")
	assert.EqualError(t, err, "task task-20260115-093002-a1b2: task not found")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestWrap_PreservesChain(t *testing.T) {
	inner := Wrap(ErrUnsupportedSurface, "build")
	outer := Wrapf(inner, "submit %s", "Fe(100)")

	assert.ErrorIs(t, outer, ErrUnsupportedSurface)
	assert.True(t, stderrors.Is(outer, inner))
}
