package errors_test

import (
	"fmt"
	"testing"

	"github.com/nkazakov/rotorfeistel/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotate(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		var err error
		err = errors.Annotate(err, "annotation: %w")

		require.NoError(t, err)
	})

	t.Run("actual error", func(t *testing.T) {
		err := fmt.Errorf("minus vibe")
		err = errors.Annotate(err, "annotation with format %d %s: %w", 5, "aboba")
		require.Error(t, err)

		assert.Errorf(t, err, "annotation with format 5 aboba: minus vibe")
	})
}

func TestConstErrorIsComparable(t *testing.T) {
	err := errors.ErrInvalidSize
	assert.ErrorIs(t, err, errors.ErrInvalidSize)
	assert.NotErrorIs(t, err, errors.ErrInvalidKey)
}
