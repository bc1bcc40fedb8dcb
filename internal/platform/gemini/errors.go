package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyPrompt is returned when a prompt template renders to nothing.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
