// Package subtext normalizes downloaded subtitle text to UTF-8. The services
// predate Unicode adoption and mostly serve windows-1250; modern players
// expect UTF-8.
package subtext
