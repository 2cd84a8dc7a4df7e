// Package batch dispatches subtitle lookups across a bounded worker pool and
// collects one result per input, ordered by input index regardless of
// completion time. The report drives the process exit code.
package batch
