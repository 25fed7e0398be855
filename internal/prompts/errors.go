package prompts

import "fmt"

// CatalogError represents a failure to read or parse the prompt catalog file.
type CatalogError struct {
	Message string
	Cause   error
}

func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("prompt catalog error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("prompt catalog error: %s", e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// VersionNotFoundError indicates a requested prompt version is absent from
// the catalog. Composition is fatal at startup, so this aborts the session.
type VersionNotFoundError struct {
	Version string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("prompt version %q not found in catalog", e.Version)
}

// NoPromptContentError indicates a version exists but carries neither a
// system nor a user template, so nothing can be composed from it.
type NoPromptContentError struct {
	Version string
}

func (e *NoPromptContentError) Error() string {
	return fmt.Sprintf("prompt version %q has neither system nor user template", e.Version)
}
