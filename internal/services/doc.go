// Package services defines shared utilities consumed by the download pipeline
// and the service clients.
//
// Key responsibilities:
//   - Context helpers that stamp batch identifiers and input names for logging
//     correlation.
//   - Structured error markers plus the Wrap helper that classify failures into
//     the categories the batch report and exit code depend on (invalid input,
//     not found, network, protocol, extraction).
//
// Use these helpers when wiring new lookup logic so error handling and
// observability stay uniform across both subtitle services.
package services
