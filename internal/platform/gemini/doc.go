// Package gemini provides an implementation of the analysis.Processor interface
// that uses Google's Gemini API to review uploaded CVs.
//
// This package is an infrastructure adapter: it translates an analysis request
// into a Gemini generateContent call and the model's answer back into an
// analysis.Report, without exposing the external service to the HTTP layer.
//
// Key components:
//
// 1. Analyzer:
//   - Implements the analysis.Processor interface
//   - Sends the PDF inline together with a prompt chosen by analysis type
//   - Requests a JSON response and validates it before returning
//
// 2. Prompt Management:
//   - One text/template per supported analysis type
//   - general_analysis is used when no type is given
//
// 3. Error Handling:
//   - Retries transient failures (HTTP 429, 5xx, network errors, attempt
//     timeouts) with exponential backoff and jitter
//   - Maps safety blocks and malformed answers onto analysis sentinel errors
//     without retrying
package gemini
