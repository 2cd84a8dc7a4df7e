package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"napi/internal/digest"
)

// Discover expands the raw command-line arguments into the ordered list of
// batch inputs. Directory arguments are walked recursively and filtered by the
// configured video extensions; file arguments must carry a video extension;
// digest literals pass through untouched. The result is sorted so batch order
// is stable across runs, with literals ahead of paths.
func Discover(args []string, extensions []string) ([]string, error) {
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}

	var files []string
	var literals []string
	for _, arg := range args {
		if digest.IsLiteral(arg) {
			literals = append(literals, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			found, err := walkDir(arg, extSet)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		if isVideo(arg, extSet) {
			files = append(files, arg)
		}
	}

	sort.Strings(literals)
	sort.Strings(files)
	return append(literals, files...), nil
}

func walkDir(root string, extSet map[string]struct{}) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if isVideo(path, extSet) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func isVideo(path string, extSet map[string]struct{}) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	_, ok := extSet[ext]
	return ok
}
