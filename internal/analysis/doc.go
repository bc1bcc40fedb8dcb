// Package analysis defines the boundary between the HTTP layer and the
// services that analyze uploaded CVs. The upload endpoint depends only on the
// Processor interface and the sentinel errors declared here; the Gemini
// adapter in platform/gemini is the production implementation.
package analysis
