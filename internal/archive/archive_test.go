package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"napi/internal/services"
)

func buildZip(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for name, content := range members {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatalf("create zip member: %v", err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("write zip member: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractFirstReturnsSubtitle(t *testing.T) {
	want := "1\n00:00:01,000 --> 00:00:02,000\nHello\n"
	data := buildZip(t, map[string]string{"movie.srt": want})

	got, err := ExtractFirst(data)
	if err != nil {
		t.Fatalf("ExtractFirst: %v", err)
	}
	if string(got) != want {
		t.Fatalf("ExtractFirst = %q, want %q", got, want)
	}
}

func TestExtractFirstCorruptArchive(t *testing.T) {
	_, err := ExtractFirst([]byte("definitely not a zip"))
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
}

func TestExtractFirstEmptyArchive(t *testing.T) {
	data := buildZip(t, nil)
	_, err := ExtractFirst(data)
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction error for empty archive, got %v", err)
	}
}

func TestExtractFirstEmptyMember(t *testing.T) {
	data := buildZip(t, map[string]string{"movie.srt": ""})
	_, err := ExtractFirst(data)
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction error for empty member, got %v", err)
	}
}
