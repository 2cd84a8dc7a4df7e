// Package testsupport provides shared fixtures for napi tests: temp-dir
// seeded configurations and synthetic video files.
package testsupport
