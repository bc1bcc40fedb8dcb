package analysis

import "errors"

// Common errors returned by Processor implementations
var (
	// ErrIO is returned when the document bytes could not be read or handed
	// over to the analyzer. Callers treat it as a processing failure of the
	// uploaded file rather than of the analysis itself.
	ErrIO = errors.New("document I/O failure")

	// ErrEmptyDocument is returned when a document has no content
	ErrEmptyDocument = errors.New("document is empty")

	// ErrUnsupportedMode is returned for an analysis mode the processor does not know
	ErrUnsupportedMode = errors.New("unsupported analysis type")

	// ErrInvalidResponse is returned when the model response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned when the upstream model stayed unavailable
	ErrTransientFailure = errors.New("transient error during CV analysis")

	// ErrInvalidConfig is returned when the processor configuration is invalid
	ErrInvalidConfig = errors.New("invalid analyzer configuration")
)
