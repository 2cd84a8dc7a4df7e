// Package logging builds the slog loggers used across napi.
//
// It offers a console handler for terminal output, JSON output for log files
// and scripting, multi-destination fan-out, and typed attribute helpers with
// stable field names so the fetch pipeline and history journal log uniformly.
package logging
