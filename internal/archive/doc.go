// Package archive unpacks the ZIP payloads NAPISY24 returns around its
// subtitle files.
package archive
