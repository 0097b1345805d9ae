package cmd

import (
	stderrors "errors"

	"github.com/conneroisu/starter/internal/errors"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitIncomplete = 3
	ExitCancelled  = 130
)

// ExitCode maps an error returned by Execute to the process exit status.
// A failed task command passes its child's exit status through.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsCancelled(err):
		return ExitCancelled
	case errors.HasCode(err, errors.ErrCodeIncomplete):
		return ExitIncomplete
	}

	var se *errors.StarterError
	if stderrors.As(err, &se) && se.Type == errors.ErrorTypeExecution {
		if code, ok := se.Context["exit_code"].(int); ok && code > 0 && code < 126 {
			return code
		}
	}

	return ExitError
}
