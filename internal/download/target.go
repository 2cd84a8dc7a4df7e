package download

import (
	"path/filepath"
	"strings"

	"napi/internal/digest"
)

const subtitleExt = ".txt"

// TargetPath resolves where the subtitle for an input belongs: the input path
// with its container extension replaced by ".txt", or "<digest>.txt" for
// literals. When destDir is set the file is relocated there, keeping only the
// base name.
func TargetPath(input, destDir string) string {
	var target string
	if digest.IsLiteral(input) {
		value := strings.ToLower(strings.TrimPrefix(input, digest.LiteralPrefix))
		target = value + subtitleExt
	} else if ext := filepath.Ext(input); ext != "" {
		target = strings.TrimSuffix(input, ext) + subtitleExt
	} else {
		target = input + subtitleExt
	}
	if destDir != "" {
		target = filepath.Join(destDir, filepath.Base(target))
	}
	return target
}
