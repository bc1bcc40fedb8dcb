// Package api handles incoming HTTP requests for the CV upload endpoint:
// multipart validation, caller identity lookup, delegation to the analysis
// processor and response formatting. Failures are expressed as UploadError
// values whose ErrorKind maps to exactly one status code.
package api
