package runtimepath

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDir_UsesXDGRuntimeDir(t *testing.T) {
	want := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", want)

	got, err := Dir()
	if err != nil {
		t.Fatalf("dir: %v", err)
	}
	if got != want {
		t.Errorf("dir = %q, want %q", got, want)
	}
}

func TestSocketPath_UnderRuntimeDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)

	got, err := SocketPath()
	if err != nil {
		t.Fatalf("socket path: %v", err)
	}
	if filepath.Dir(got) != dir {
		t.Errorf("socket path %q not under %q", got, dir)
	}
	if !strings.HasSuffix(got, "paneld.sock") {
		t.Errorf("socket path %q missing paneld.sock suffix", got)
	}
}
