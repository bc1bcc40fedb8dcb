package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/careerbooster/cv-api/internal/platform/logger"
	"github.com/careerbooster/cv-api/internal/redact"
)

// ErrorEnvelope is the JSON body of every error response. It always carries
// "error" and "message"; handlers may add fields such as "receivedType".
type ErrorEnvelope map[string]string

// NewErrorEnvelope builds an envelope with the given error title and message.
func NewErrorEnvelope(errTitle, message string) ErrorEnvelope {
	return ErrorEnvelope{
		"error":   errTitle,
		"message": message,
	}
}

// With returns the envelope with key set to value.
func (e ErrorEnvelope) With(key, value string) ErrorEnvelope {
	e[key] = value
	return e
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error envelope with the given status code.
// The trace ID from the request context is added when present.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, envelope ErrorEnvelope) {
	traceID := GetTraceID(r.Context())
	body := withTraceID(envelope, traceID)

	logger.FromContext(r.Context()).Debug("sending error response",
		"status_code", status,
		"error_title", envelope["error"],
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, body)
}

// RespondWithErrorAndLog writes a JSON error envelope and also logs the detailed
// error. The raw error never reaches the response body; the log gets a redacted
// rendering of it.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 4xx errors: By default logged at DEBUG level
// - 4xx errors with WithElevatedLogLevel: WARN level
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	envelope ErrorEnvelope,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())
	body := withTraceID(envelope, traceID)

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error_title", envelope["error"]),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", errorType(err)),
		)
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if responseOpts.elevateLogLevel && status >= http.StatusBadRequest {
		logLevel = slog.LevelWarn
	}

	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, body)
}

// typedError is implemented by errors that classify themselves.
type typedError interface {
	ErrorType() string
}

// errorType returns the self-reported classification of err, or its Go type.
func errorType(err error) string {
	var typed typedError
	if errors.As(err, &typed) {
		return typed.ErrorType()
	}
	return fmt.Sprintf("%T", err)
}

// withTraceID copies the envelope so callers can reuse a shared envelope value.
func withTraceID(envelope ErrorEnvelope, traceID string) ErrorEnvelope {
	body := make(ErrorEnvelope, len(envelope)+1)
	for k, v := range envelope {
		body[k] = v
	}
	if traceID != "" {
		body["trace_id"] = traceID
	}
	return body
}
