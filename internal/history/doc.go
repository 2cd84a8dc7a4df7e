// Package history journals finished batches in SQLite so `napi history` can
// show what was downloaded, when, and from which service.
//
// The journal is an append-only record, not a cache: nothing consults it
// before a lookup. Appends take a file lock beside the database so concurrent
// napi invocations serialize cleanly. Schema changes bump the version in
// schema.go; users delete the database to adopt the new schema.
package history
