package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarterErrorFormatting(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewIOError(ErrCodeRemoveFailed, "could not remove directory", cause).WithPath(".venv")

	assert.Equal(t, "[ERR_REMOVE_FAILED] .venv: could not remove directory: permission denied", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestStarterErrorIs(t *testing.T) {
	a := NewValidationError(ErrCodeInvalidName, "first")
	b := NewValidationError(ErrCodeInvalidName, "second")
	c := NewValidationError(ErrCodeInvalidPath, "third")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", a), b))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		validation bool
		cancelled  bool
		execution  bool
	}{
		{name: "nil", err: nil},
		{name: "plain", err: errors.New("boom")},
		{name: "validation", err: NewValidationError(ErrCodeInvalidName, "bad"), validation: true},
		{name: "field validation", err: NewFieldValidationError("project name", "X", "bad"), validation: true},
		{name: "cancelled", err: ErrCancelled(), cancelled: true},
		{name: "context cancelled", err: fmt.Errorf("prompt: %w", context.Canceled), cancelled: true},
		{name: "execution", err: NewExecutionError(ErrCodeCommandFailed, "exit 1", nil), execution: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.cancelled, IsCancelled(tt.err))
			assert.Equal(t, tt.execution, IsExecution(tt.err))
		})
	}
}

func TestFieldValidationErrorConversion(t *testing.T) {
	fve := NewFieldValidationError("project name", "My App", "must be lowercase", "try 'my-app'")
	se := fve.ToStarterError(ErrCodeInvalidName)

	assert.Equal(t, ErrorTypeValidation, se.Type)
	assert.Equal(t, ErrCodeInvalidName, se.Code)
	assert.Equal(t, []string{"try 'my-app'"}, se.Suggestions)
	assert.Equal(t, "project name", se.Context["field"])
	assert.Contains(t, se.Error(), `"My App"`)
}

func TestFormatErrorWithSuggestions(t *testing.T) {
	err := ErrTaskNotFound("tset", "Did you mean 'test'?")
	out := FormatErrorWithSuggestions(err)

	assert.Contains(t, out, "unknown task: tset")
	assert.Contains(t, out, "Suggestions:")
	assert.Contains(t, out, "• Did you mean 'test'?")

	assert.Equal(t, "", FormatErrorWithSuggestions(nil))
	assert.Equal(t, "plain", FormatErrorWithSuggestions(errors.New("plain")))
}

func TestClosestMatch(t *testing.T) {
	candidates := []string{"install", "migrate", "test", "lint"}

	assert.Equal(t, "test", ClosestMatch("tset", candidates, 2))
	assert.Equal(t, "migrate", ClosestMatch("migrte", candidates, 2))
	assert.Equal(t, "", ClosestMatch("deploy", candidates, 2))
}

func TestNewErrorCollector(t *testing.T) {
	collector := NewErrorCollector()

	assert.NotNil(t, collector)
	assert.Empty(t, collector.Failures())
	assert.False(t, collector.HasErrors())
	assert.NoError(t, collector.Err())
}

func TestErrorCollectorAdd(t *testing.T) {
	collector := NewErrorCollector()

	before := time.Now()
	collector.Add(StepFailure{
		Step: "remove virtual environment",
		Path: ".venv",
		Err:  errors.New("permission denied"),
	})
	collector.Add(StepFailure{Step: "ignored", Err: nil})

	require.True(t, collector.HasErrors())
	failures := collector.Failures()
	require.Len(t, failures, 1)

	assert.Equal(t, "remove virtual environment", failures[0].Step)
	assert.False(t, failures[0].Timestamp.Before(before))
	assert.Contains(t, failures[0].Error(), ".venv")
	assert.Equal(t, "remove virtual environment (.venv): permission denied", failures[0].Error())

	err := collector.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 step(s) failed")
	assert.True(t, IsType(err, ErrorTypeIO))
}

func TestHasCode(t *testing.T) {
	err := NewIOError(ErrCodeRemoveFailed, "cannot remove", nil)
	assert.True(t, HasCode(err, ErrCodeRemoveFailed))
	assert.True(t, HasCode(fmt.Errorf("step: %w", err), ErrCodeRemoveFailed))
	assert.False(t, HasCode(err, ErrCodeWriteFailed))
	assert.False(t, HasCode(fmt.Errorf("plain"), ErrCodeRemoveFailed))

	collector := NewErrorCollector()
	collector.Add(StepFailure{Step: "readme", Err: err})
	assert.True(t, HasCode(collector.Err(), ErrCodeIncomplete))
}
