package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/partsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestMissingNameError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := pkgerrors.NewMissingNameError("csv", 4)
		assert.Equal(t, "csv record 4 has no name", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrMissingName))
		assert.True(t, pkgerrors.IsMissingName(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("projecting: %w", pkgerrors.NewMissingNameError("library", 0))
		assert.True(t, pkgerrors.IsMissingName(wrapped))

		var target *pkgerrors.MissingNameError
		require.True(t, errors.As(wrapped, &target))
		assert.Equal(t, "library", target.Source)
	})
}

func TestFormatError(t *testing.T) {
	t.Run("without line", func(t *testing.T) {
		err := pkgerrors.NewFormatError("parts.txt", "not a library file")
		assert.Equal(t, "format error in parts.txt: not a library file", err.Error())
		assert.True(t, pkgerrors.IsFormatError(err))
	})

	t.Run("with line", func(t *testing.T) {
		err := &pkgerrors.FormatError{Path: "parts.lib", Line: 12, Message: "unexpected ENDDEF"}
		assert.Contains(t, err.Error(), "line 12")
		assert.Contains(t, err.Error(), "unexpected ENDDEF")
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("bad quote")
		err := &pkgerrors.FormatError{Path: "parts.csv", Message: "header", Err: base}
		assert.Equal(t, base, err.Unwrap())
	})
}

func TestLookupError(t *testing.T) {
	t.Run("component", func(t *testing.T) {
		err := pkgerrors.NewLookupError("component", "R1")
		assert.Equal(t, "component R1 not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("field", func(t *testing.T) {
		err := pkgerrors.NewFieldLookupError("rev", "R1")
		assert.Equal(t, "field rev not found in R1", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})
}

func TestMissingTemplateError(t *testing.T) {
	err := pkgerrors.NewMissingTemplateError([]string{"C1", "C2"})
	assert.Contains(t, err.Error(), "2 pending additions")
	assert.Contains(t, err.Error(), "C1")
	assert.True(t, pkgerrors.IsMissingTemplate(err))
	assert.False(t, pkgerrors.IsNotFound(err))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "reference",
			Message: "cannot be cleared",
		}
		assert.Equal(t, "validation failed for field reference: cannot be cleared", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid configuration",
		}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("sink", "redis address cannot be empty", nil)
	assert.Contains(t, err.Error(), "sink")
	assert.Contains(t, err.Error(), "cannot be empty")
	assert.Nil(t, err.Unwrap())
}

func TestIOError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.IOError{
			Operation: "read",
			Path:      "/tmp/parts.lib",
			Message:   "permission denied",
			Err:       errors.New("permission denied"),
		}
		assert.Contains(t, err.Error(), "read")
		assert.Contains(t, err.Error(), "/tmp/parts.lib")
	})

	t.Run("wrap helper", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.WrapIO("write", "/data/parts.csv", baseErr)
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "write", ioErr.Operation)
		assert.Equal(t, baseErr, ioErr.Unwrap())
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("write", "x", nil))
	})
}

func TestResourceError(t *testing.T) {
	err := pkgerrors.WrapResource("delete", "component", "R9", pkgerrors.NewLookupError("component", "R9"))
	resErr, ok := err.(*pkgerrors.ResourceError)
	require.True(t, ok)
	assert.Equal(t, "delete", resErr.Operation)
	assert.Contains(t, err.Error(), "R9")
	assert.True(t, pkgerrors.IsNotFound(err))
}
