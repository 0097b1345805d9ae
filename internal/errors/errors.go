package errors

import (
	"fmt"
	"strings"
	"time"
)

// StepFailure records one pipeline step that could not complete.
type StepFailure struct {
	Step      string
	Path      string
	Err       error
	Timestamp time.Time
}

// Error implements the error interface
func (sf *StepFailure) Error() string {
	if sf.Path == "" {
		return fmt.Sprintf("%s: %v", sf.Step, sf.Err)
	}
	return fmt.Sprintf("%s (%s): %v", sf.Step, sf.Path, sf.Err)
}

// Unwrap returns the underlying error
func (sf *StepFailure) Unwrap() error {
	return sf.Err
}

// ErrorCollector collects step failures so a run can continue past them.
// It is not safe for concurrent use.
type ErrorCollector struct {
	failures []StepFailure
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		failures: make([]StepFailure, 0),
	}
}

// Add adds a step failure to the collector
func (ec *ErrorCollector) Add(failure StepFailure) {
	if failure.Err == nil {
		return
	}
	if failure.Timestamp.IsZero() {
		failure.Timestamp = time.Now()
	}
	ec.failures = append(ec.failures, failure)
}

// Failures returns a copy of all collected failures
func (ec *ErrorCollector) Failures() []StepFailure {
	result := make([]StepFailure, len(ec.failures))
	copy(result, ec.failures)
	return result
}

// HasErrors returns true if there are any failures
func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.failures) > 0
}

// Err folds the collected failures into a single error, or nil.
func (ec *ErrorCollector) Err() error {
	failures := ec.Failures()
	if len(failures) == 0 {
		return nil
	}

	steps := make([]string, 0, len(failures))
	for _, f := range failures {
		steps = append(steps, f.Step)
	}

	err := NewIOError(
		ErrCodeIncomplete,
		fmt.Sprintf("%d step(s) failed: %s", len(failures), strings.Join(steps, ", ")),
		&failures[0],
	)
	err.WithContext("failed_steps", steps)

	return err
}
