package eval

import "fmt"

// GradingError indicates the grading model's output could not be validated.
// It aborts evaluation of a single batch item, never the whole batch.
type GradingError struct {
	Message string
	Cause   error
}

func (e *GradingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("grading error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("grading error: %s", e.Message)
}

func (e *GradingError) Unwrap() error {
	return e.Cause
}
