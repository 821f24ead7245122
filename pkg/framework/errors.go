package framework

import "strings"

// AggregatedError collects errors from operations which continue past
// individual failures.
type AggregatedError struct {
	Errors []error
}

// Error implements error.
func (e *AggregatedError) Error() string {
	switch len(e.Errors) {
	case 0:
		return ""
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, 0, len(e.Errors)+1)
	msgs = append(msgs, "multiple errors:")
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n  ")
}

// Unwrap allows errors.Is and errors.As to match any collected error.
func (e *AggregatedError) Unwrap() []error {
	return e.Errors
}

// Add collects errors, nil values are skipped.
func (e *AggregatedError) Add(errs ...error) *AggregatedError {
	for _, err := range errs {
		if err != nil {
			e.Errors = append(e.Errors, err)
		}
	}
	return e
}

// Aggregate returns nil if nothing was collected.
func (e *AggregatedError) Aggregate() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
