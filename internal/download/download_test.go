package download

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"napi/internal/services"
	"napi/internal/services/napiprojekt"
	"napi/internal/services/napisy24"
)

type fakeNapiprojekt struct {
	result napiprojekt.Result
	err    error
	calls  int
	last   napiprojekt.Request
}

func (f *fakeNapiprojekt) Download(_ context.Context, req napiprojekt.Request) (napiprojekt.Result, error) {
	f.calls++
	f.last = req
	return f.result, f.err
}

type fakeNapisy24 struct {
	result napisy24.Result
	err    error
	calls  int
	last   napisy24.Request
}

func (f *fakeNapisy24) Download(_ context.Context, req napisy24.Request) (napisy24.Result, error) {
	f.calls++
	f.last = req
	return f.result, f.err
}

func zipPayload(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	member, err := writer.Create("movie.srt")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if _, err := member.Write([]byte(content)); err != nil {
		t.Fatalf("write member: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func writeVideo(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}
	return path
}

func notFoundErr(component string) error {
	return services.Wrap(services.ErrNotFound, component, "download", "", nil)
}

func TestTargetPath(t *testing.T) {
	cases := []struct {
		input, destDir, want string
	}{
		{"movie.mkv", "", "movie.txt"},
		{filepath.Join("dir", "movie.mkv"), "", filepath.Join("dir", "movie.txt")},
		{"noext", "", "noext.txt"},
		{"napiprojekt:0123456789abcdef0123456789abcdef", "", "0123456789abcdef0123456789abcdef.txt"},
		{filepath.Join("dir", "movie.mkv"), "subs", filepath.Join("subs", "movie.txt")},
	}
	for _, tc := range cases {
		if got := TargetPath(tc.input, tc.destDir); got != tc.want {
			t.Errorf("TargetPath(%q, %q) = %q, want %q", tc.input, tc.destDir, got, tc.want)
		}
	}
}

func TestFetchStoresFromNapiprojekt(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir, "movie.mkv", 1024)
	np := &fakeNapiprojekt{result: napiprojekt.Result{Data: []byte("subtitle")}}
	n24 := &fakeNapisy24{}
	d := NewWithClients(np, n24, Options{Language: "pl", Backup: true}, nil)

	result := d.Fetch(context.Background(), video)
	if result.Outcome != OutcomeStored {
		t.Fatalf("outcome = %v, err = %v", result.Outcome, result.Err)
	}
	if result.Service != ServiceNapiprojekt || result.Bytes != len("subtitle") {
		t.Fatalf("result = %+v", result)
	}
	if np.last.Language != "PL" {
		t.Fatalf("napiprojekt language token = %q", np.last.Language)
	}
	if n24.calls != 0 {
		t.Fatal("napisy24 should not be queried when napiprojekt answers")
	}
	data, err := os.ReadFile(filepath.Join(dir, "movie.txt"))
	if err != nil || string(data) != "subtitle" {
		t.Fatalf("stored subtitle = %q, err %v", data, err)
	}
}

func TestFetchSkipsExistingTarget(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir, "movie.mkv", 1024)
	if err := os.WriteFile(filepath.Join(dir, "movie.txt"), []byte("old"), 0o644); err != nil {
		t.Fatalf("write existing subtitle: %v", err)
	}
	np := &fakeNapiprojekt{}
	d := NewWithClients(np, nil, Options{Language: "pl"}, nil)

	result := d.Fetch(context.Background(), video)
	if result.Outcome != OutcomeSkipped {
		t.Fatalf("outcome = %v", result.Outcome)
	}
	if np.calls != 0 {
		t.Fatal("skip must not reach the network")
	}
}

func TestFetchUpdateBacksUpExisting(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir, "movie.mkv", 1024)
	target := filepath.Join(dir, "movie.txt")
	if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
		t.Fatalf("write existing subtitle: %v", err)
	}
	np := &fakeNapiprojekt{result: napiprojekt.Result{Data: []byte("new")}}
	d := NewWithClients(np, nil, Options{Language: "pl", Update: true, Backup: true}, nil)

	result := d.Fetch(context.Background(), video)
	if result.Outcome != OutcomeStored {
		t.Fatalf("outcome = %v, err = %v", result.Outcome, result.Err)
	}
	backup, err := os.ReadFile(target + "-bak")
	if err != nil || string(backup) != "old" {
		t.Fatalf("backup = %q, err %v", backup, err)
	}
	current, _ := os.ReadFile(target)
	if string(current) != "new" {
		t.Fatalf("target = %q", current)
	}
}

func TestFetchFallsBackToNapisy24(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir, "movie.avi", 128<<10)
	np := &fakeNapiprojekt{err: notFoundErr("napiprojekt")}
	n24 := &fakeNapisy24{result: napisy24.Result{Archive: zipPayload(t, "fallback subtitle")}}
	d := NewWithClients(np, n24, Options{Language: "pl"}, nil)

	result := d.Fetch(context.Background(), video)
	if result.Outcome != OutcomeStored || result.Service != ServiceNapisy24 {
		t.Fatalf("result = %+v, err = %v", result, result.Err)
	}
	if n24.last.FileHash != "0000000000020000" {
		t.Fatalf("napisy24 hash = %q", n24.last.FileHash)
	}
	if n24.last.FileSize != 128<<10 {
		t.Fatalf("napisy24 size = %d", n24.last.FileSize)
	}
	if n24.last.Language != "pl" {
		t.Fatalf("napisy24 language token = %q", n24.last.Language)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "movie.txt"))
	if string(data) != "fallback subtitle" {
		t.Fatalf("stored subtitle = %q", data)
	}
}

func TestFetchLiteralSkipsFallback(t *testing.T) {
	dest := t.TempDir()
	np := &fakeNapiprojekt{err: notFoundErr("napiprojekt")}
	n24 := &fakeNapisy24{}
	d := NewWithClients(np, n24, Options{Language: "pl", DestDir: dest}, nil)

	result := d.Fetch(context.Background(), "napiprojekt:0123456789abcdef0123456789abcdef")
	if result.Outcome != OutcomeNotFound {
		t.Fatalf("outcome = %v", result.Outcome)
	}
	if n24.calls != 0 {
		t.Fatal("literal inputs cannot be hashed for napisy24")
	}
}

func TestFetchSmallFileKeepsNapiprojektVerdict(t *testing.T) {
	dir := t.TempDir()
	// Too small for the napisy24 hash, so the fallback is unusable.
	video := writeVideo(t, dir, "short.mkv", 1024)
	np := &fakeNapiprojekt{err: notFoundErr("napiprojekt")}
	n24 := &fakeNapisy24{}
	d := NewWithClients(np, n24, Options{Language: "pl"}, nil)

	result := d.Fetch(context.Background(), video)
	if result.Outcome != OutcomeNotFound {
		t.Fatalf("outcome = %v, err = %v", result.Outcome, result.Err)
	}
	if n24.calls != 0 {
		t.Fatal("undersized file must not reach napisy24")
	}
}

func TestFetchBothServicesMiss(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir, "movie.avi", 128<<10)
	np := &fakeNapiprojekt{err: notFoundErr("napiprojekt")}
	n24 := &fakeNapisy24{err: notFoundErr("napisy24")}
	d := NewWithClients(np, n24, Options{Language: "pl"}, nil)

	result := d.Fetch(context.Background(), video)
	if result.Outcome != OutcomeNotFound {
		t.Fatalf("outcome = %v", result.Outcome)
	}
	if !errors.Is(result.Err, services.ErrNotFound) {
		t.Fatalf("err = %v", result.Err)
	}
}

func TestFetchInvalidLiteral(t *testing.T) {
	np := &fakeNapiprojekt{}
	d := NewWithClients(np, nil, Options{Language: "pl", DestDir: t.TempDir()}, nil)

	result := d.Fetch(context.Background(), "napiprojekt:nothex")
	if result.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %v", result.Outcome)
	}
	if !errors.Is(result.Err, services.ErrInvalidInput) {
		t.Fatalf("err = %v", result.Err)
	}
	if np.calls != 0 {
		t.Fatal("malformed literal must not reach the network")
	}
}

func TestFetchConvertsEncoding(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir, "movie.mkv", 1024)
	// "ża" in windows-1250.
	np := &fakeNapiprojekt{result: napiprojekt.Result{Data: []byte{0xBF, 0x61}}}
	d := NewWithClients(np, nil, Options{Language: "pl", ConvertEncoding: true}, nil)

	result := d.Fetch(context.Background(), video)
	if result.Outcome != OutcomeStored {
		t.Fatalf("outcome = %v, err = %v", result.Outcome, result.Err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "movie.txt"))
	if string(data) != "ża" {
		t.Fatalf("stored subtitle = %q", data)
	}
}
