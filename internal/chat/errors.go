package chat

import "fmt"

// ModelInvocationError represents a transport or timeout failure from the
// external model. The turn fails but the session stays usable.
type ModelInvocationError struct {
	Message string
	Cause   error
}

func (e *ModelInvocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model invocation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model invocation failed: %s", e.Message)
}

func (e *ModelInvocationError) Unwrap() error {
	return e.Cause
}

// SchemaValidationError indicates the model's raw output could not be
// coerced into a StructuredReply.
type SchemaValidationError struct {
	Message string
	Cause   error
}

func (e *SchemaValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema validation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("schema validation failed: %s", e.Message)
}

func (e *SchemaValidationError) Unwrap() error {
	return e.Cause
}
