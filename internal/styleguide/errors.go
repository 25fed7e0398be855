package styleguide

import "fmt"

// LoadError represents a failure to read, parse, or validate the style guide.
// It is fatal at startup: the bot cannot run without its brand ruleset.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("style guide error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("style guide error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
