// Package download runs the per-input subtitle pipeline: digest resolution,
// the NAPI-PROJEKT lookup with NAPISY24 fallback, archive extraction, encoding
// normalization, and the on-disk write with skip/backup semantics.
package download
