// Package logging wraps log/slog with typed attribute helpers and a small
// set of constructors used across podpull.
//
// Loggers are built from configuration (level, format, optional log file) and
// passed explicitly to components; there is no package-level logger. Use
// NewComponentLogger to tag a logger with the owning component so ingestion
// and export output can be filtered per concern.
package logging
