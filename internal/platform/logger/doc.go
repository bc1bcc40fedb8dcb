// Package logger configures the service's JSON slog output and carries
// request-scoped loggers (with trace and request IDs) through context.Context.
package logger
