package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/careerbooster/cv-api/internal/analysis"
	"github.com/careerbooster/cv-api/internal/api/shared"
	"github.com/careerbooster/cv-api/internal/platform/metrics"
	"github.com/careerbooster/cv-api/internal/redact"
)

// ErrorEnvelope is the JSON error body returned by the upload endpoint.
type ErrorEnvelope = shared.ErrorEnvelope

// ErrorKind is the closed set of failure classes the upload endpoint reports.
type ErrorKind int

const (
	// KindInvalidRequest covers caller mistakes such as missing, empty or non-PDF files.
	KindInvalidRequest ErrorKind = iota
	// KindUnauthenticated means no caller identity could be resolved.
	KindUnauthenticated
	// KindProcessing covers I/O failures while handling the uploaded file.
	KindProcessing
	// KindUnexpected covers every other failure, including those of the processor.
	KindUnexpected
	// KindTooLarge means the file exceeds the upload size limit.
	KindTooLarge
)

// Status returns the HTTP status code for the kind.
func (k ErrorKind) Status() int {
	switch k {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindProcessing:
		return "processing_error"
	case KindTooLarge:
		return "file_too_large"
	default:
		return "unexpected_error"
	}
}

// Outcome returns the metrics outcome label for the kind.
func (k ErrorKind) Outcome() string {
	switch k {
	case KindInvalidRequest, KindTooLarge:
		return metrics.OutcomeInvalidRequest
	case KindUnauthenticated:
		return metrics.OutcomeUnauthenticated
	case KindProcessing:
		return metrics.OutcomeProcessingError
	default:
		return metrics.OutcomeUnexpectedError
	}
}

// Classification tags reported in the "type" field of unexpected errors.
const (
	TypeContentBlocked          = "content_blocked"
	TypeInvalidResponse         = "invalid_response"
	TypeUpstreamUnavailable     = "upstream_unavailable"
	TypeUnsupportedAnalysisType = "unsupported_analysis_type"
	TypeCanceled                = "canceled"
	TypeInternal                = "internal"
)

// UploadError is the typed failure of an upload request.
type UploadError struct {
	Kind    ErrorKind
	Title   string
	Message string
	// Fields are extra envelope entries such as receivedType or type.
	Fields map[string]string
	Err    error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Title, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Title)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// ErrorType is the kind, followed by the classification tag when one is set.
// It is logged as error_type.
func (e *UploadError) ErrorType() string {
	if tag := e.Fields["type"]; tag != "" {
		return e.Kind.String() + "/" + tag
	}
	return e.Kind.String()
}

// Envelope renders the error as the JSON body sent to the client.
func (e *UploadError) Envelope() ErrorEnvelope {
	env := shared.NewErrorEnvelope(e.Title, e.Message)
	for k, v := range e.Fields {
		env = env.With(k, v)
	}
	return env
}

func errNoFile(err error) *UploadError {
	return &UploadError{
		Kind:    KindInvalidRequest,
		Title:   "No file uploaded",
		Message: "Please select a PDF file to upload",
		Err:     err,
	}
}

func errInvalidFileType(received string) *UploadError {
	return &UploadError{
		Kind:    KindInvalidRequest,
		Title:   "Invalid file type",
		Message: "Only PDF files are allowed",
		Fields:  map[string]string{"receivedType": received},
	}
}

func errFileTooLarge(limit int64, err error) *UploadError {
	return &UploadError{
		Kind:    KindTooLarge,
		Title:   "File too large",
		Message: fmt.Sprintf("The uploaded file exceeds the maximum size of %d bytes", limit),
		Err:     err,
	}
}

func errUnauthenticated() *UploadError {
	return &UploadError{
		Kind:    KindUnauthenticated,
		Title:   "Unauthenticated",
		Message: "Authentication required",
	}
}

func errProcessing(err error) *UploadError {
	return &UploadError{
		Kind:    KindProcessing,
		Title:   "Error processing CV",
		Message: safeMessage(err),
		Err:     err,
	}
}

func errUnexpected(err error) *UploadError {
	return &UploadError{
		Kind:    KindUnexpected,
		Title:   "Unexpected error",
		Message: safeMessage(err),
		Fields:  map[string]string{"type": classificationTag(err)},
		Err:     err,
	}
}

// classifyProcessorError maps a processor failure onto the closed error set.
func classifyProcessorError(err error) *UploadError {
	switch {
	case errors.Is(err, analysis.ErrIO),
		errors.Is(err, analysis.ErrEmptyDocument),
		errors.Is(err, io.ErrUnexpectedEOF):
		return errProcessing(err)
	default:
		return errUnexpected(err)
	}
}

func classificationTag(err error) string {
	switch {
	case errors.Is(err, analysis.ErrContentBlocked):
		return TypeContentBlocked
	case errors.Is(err, analysis.ErrInvalidResponse):
		return TypeInvalidResponse
	case errors.Is(err, analysis.ErrTransientFailure):
		return TypeUpstreamUnavailable
	case errors.Is(err, analysis.ErrUnsupportedMode):
		return TypeUnsupportedAnalysisType
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return TypeCanceled
	default:
		return TypeInternal
	}
}

func safeMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}
	return redact.Error(err)
}
