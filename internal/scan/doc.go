// Package scan discovers video files for a batch: it expands directory
// arguments, filters by container extension, and keeps digest literals as-is.
package scan
