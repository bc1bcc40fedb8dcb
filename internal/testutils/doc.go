// Package testutils provides shared helpers for HTTP-level tests: building
// multipart CV uploads, issuing bearer tokens signed with a test secret and
// asserting on JSON error envelopes.
//
// It is imported only from _test.go files.
package testutils
