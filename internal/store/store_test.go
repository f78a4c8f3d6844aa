package store

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "layouts.yaml"))

	panels := []PanelGeometry{
		{X: 100, Y: 100, Width: 400, Height: 300},
		{X: 520, Y: 100, Width: 400, Height: 300},
	}
	if err := s.Save("side-by-side", panels); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load("side-by-side")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[1].X != 520 {
		t.Errorf("load = %+v, want %+v", got, panels)
	}
}

func TestLoad_UnknownLayout(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "layouts.yaml"))
	if _, err := s.Load("missing"); err == nil {
		t.Error("expected error for unknown layout")
	}
}

func TestList_SortedNames(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "layouts.yaml"))
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Save(name, []PanelGeometry{{Width: 400, Height: 300}}); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("list = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("list = %v, want %v", names, want)
		}
	}
}

func TestDelete(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "layouts.yaml"))
	if err := s.Save("gone", []PanelGeometry{{Width: 1, Height: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete("gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load("gone"); err == nil {
		t.Error("expected load to fail after delete")
	}
	if err := s.Delete("gone"); err == nil {
		t.Error("expected second delete to fail")
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"grid", false},
		{"side-by-side", false},
		{"", true},
		{"  ", true},
		{"a/b", true},
		{"..", true},
	}
	for _, tt := range tests {
		err := ValidateName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
