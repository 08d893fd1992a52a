package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ReadsWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.py")
	content := "import sys\nsys.exit(0)\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != content {
		t.Errorf("Load = %q, want %q", got, content)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.py")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "" {
		t.Errorf("Load = %q, want empty", got)
	}
}

func TestLoad_MissingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.py")

	got, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing path")
	}
	if got != "" {
		t.Errorf("Load returned partial content %q, want empty", got)
	}

	var accessErr *AccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("error = %T, want *AccessError", err)
	}
	if accessErr.Path != path {
		t.Errorf("AccessError.Path = %q, want %q", accessErr.Path, path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error does not unwrap to os.ErrNotExist: %v", err)
	}
}
