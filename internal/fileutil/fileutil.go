package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// BackupSuffix is appended to a subtitle file when it is set aside before an
// update overwrites it.
const BackupSuffix = "-bak"

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Backup renames path to path+BackupSuffix and returns the backup location.
// An existing backup is replaced.
func Backup(path string) (string, error) {
	backupPath := path + BackupSuffix
	if err := os.Rename(path, backupPath); err != nil {
		return "", fmt.Errorf("back up %s: %w", path, err)
	}
	return backupPath, nil
}

// WriteFile writes data to path with default permissions (0o644), truncating
// any existing file.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// CopyFile streams src to dst using io.Copy with default permissions (0o644).
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode streams src to dst, setting the given file mode on dst.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// RemoveIfExists deletes path, ignoring a missing file.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
