package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBackupRenames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.txt")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	backupPath, err := Backup(path)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if backupPath != path+BackupSuffix {
		t.Fatalf("backup path = %q", backupPath)
	}
	if Exists(path) {
		t.Fatal("original should be gone after backup")
	}
	data, err := os.ReadFile(backupPath)
	if err != nil || string(data) != "old" {
		t.Fatalf("backup content = %q, err %v", data, err)
	}
}

func TestBackupMissingFile(t *testing.T) {
	if _, err := Backup(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error backing up missing file")
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movie.txt")
	if err := WriteFile(path, []byte("first")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(path, []byte("second")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Fatalf("content = %q", data)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	if err := os.WriteFile(src, []byte("payload"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "payload" {
		t.Fatalf("content = %q", data)
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "victim.txt")
	if err := RemoveIfExists(path); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := RemoveIfExists(path); err != nil {
		t.Fatalf("RemoveIfExists: %v", err)
	}
	if Exists(path) {
		t.Fatal("file should be removed")
	}
}
