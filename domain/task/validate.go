package task

import (
	"errors"
	"strings"
	"time"
)

// Validation causes for a rejected task submission.
var (
	// ErrEmptyText is returned when the task text is blank.
	ErrEmptyText = errors.New("please enter a task")

	// ErrEndNotAfterStart is returned when the end time does not follow the start time.
	ErrEndNotAfterStart = errors.New("end time must be after start time")

	// ErrMalformedTime is returned when a date or time field cannot be parsed.
	ErrMalformedTime = errors.New("invalid date or time")
)

// ValidationError reports a submission rejected before anything is persisted.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks a new task's text and time window.
func Validate(text string, start, end time.Time) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Err: ErrEmptyText}
	}
	if !end.After(start) {
		return &ValidationError{Field: "end_time", Err: ErrEndNotAfterStart}
	}
	return nil
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
