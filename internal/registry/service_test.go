package registry

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/paneld/internal/host"
)

func TestCreate_AppendsAndAnnounces(t *testing.T) {
	fh := host.NewFake()
	svc := NewService(fh)

	id, err := svc.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(id, IDPrefix) {
		t.Errorf("id %q missing prefix %q", id, IDPrefix)
	}
	if got := svc.List(); len(got) != 1 || got[0] != id {
		t.Errorf("list = %v, want [%s]", got, id)
	}
	events := fh.Events()
	if len(events) != 1 {
		t.Fatalf("expected one announcement event, got %v", events)
	}
	want := id + "/" + EventWindowType + "/" + PayloadFloating
	if events[0] != want {
		t.Errorf("event = %q, want %q", events[0], want)
	}
}

func TestCreate_HostFailureLeavesRegistryUnchanged(t *testing.T) {
	fh := host.NewFake()
	fh.FailCreate = true
	svc := NewService(fh)

	if _, err := svc.Create(); !errors.Is(err, ErrCreateFailed) {
		t.Fatalf("expected ErrCreateFailed, got %v", err)
	}
	if got := svc.List(); len(got) != 0 {
		t.Errorf("registry should be empty after failed create, got %v", got)
	}
}

func TestCreate_DefaultGeometry(t *testing.T) {
	fh := host.NewFake()
	svc := NewService(fh)

	id, err := svc.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	rect, err := svc.Geometry(id)
	if err != nil {
		t.Fatalf("geometry: %v", err)
	}
	want := host.Rect{X: 100, Y: 100, Width: 400, Height: 300}
	if rect != want {
		t.Errorf("geometry = %+v, want %+v", rect, want)
	}
}

func TestClose_RemovesFromRegistry(t *testing.T) {
	fh := host.NewFake()
	svc := NewService(fh)

	id, err := svc.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Close(id); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := svc.List(); len(got) != 0 {
		t.Errorf("list after close = %v, want empty", got)
	}
}

func TestClose_ChecksHostNotRegistry(t *testing.T) {
	fh := host.NewFake()
	svc := NewService(fh)

	id, err := svc.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The user closed the window via the WM: gone from the host, still
	// present in the registry.
	fh.ForgetWindow(host.WindowID(id))

	if err := svc.Close(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for host-absent window, got %v", err)
	}
	if got := svc.List(); len(got) != 1 {
		t.Errorf("registry should still track the id, got %v", got)
	}
}

func TestClose_HostFailureKeepsEntry(t *testing.T) {
	fh := host.NewFake()
	svc := NewService(fh)

	id, err := svc.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	fh.FailClose = true

	if err := svc.Close(id); !errors.Is(err, ErrCloseFailed) {
		t.Fatalf("expected ErrCloseFailed, got %v", err)
	}
	if got := svc.List(); len(got) != 1 || got[0] != id {
		t.Errorf("registry should be unchanged after failed close, got %v", got)
	}
}

func TestUnknownIDOperations(t *testing.T) {
	fh := host.NewFake()
	svc := NewService(fh)

	if _, err := svc.Create(); err != nil {
		t.Fatalf("create: %v", err)
	}
	before := svc.List()

	tests := []struct {
		name string
		op   func() error
	}{
		{"close", func() error { return svc.Close("floating-nonexistent") }},
		{"reposition", func() error { return svc.Reposition("floating-nonexistent", 10, 20) }},
		{"resize", func() error { return svc.Resize("floating-nonexistent", 640, 480) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op(); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}

	after := svc.List()
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("registry changed by failed ops: before %v, after %v", before, after)
	}
}

func TestList_PreservesCreationOrder(t *testing.T) {
	fh := host.NewFake()
	svc := NewService(fh)

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := svc.Create()
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	// Close an interior and the first entry; order of the rest must hold.
	if err := svc.Close(ids[2]); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := svc.Close(ids[0]); err != nil {
		t.Fatalf("close: %v", err)
	}

	want := []string{ids[1], ids[3], ids[4]}
	got := svc.List()
	if len(got) != len(want) {
		t.Fatalf("list = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("list = %v, want %v", got, want)
		}
	}
}

func TestReposition_UpdatesHostOnly(t *testing.T) {
	fh := host.NewFake()
	svc := NewService(fh)

	id, err := svc.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Reposition(id, 250, 75); err != nil {
		t.Fatalf("reposition: %v", err)
	}
	rect, err := svc.Geometry(id)
	if err != nil {
		t.Fatalf("geometry: %v", err)
	}
	if rect.X != 250 || rect.Y != 75 {
		t.Errorf("position = (%d,%d), want (250,75)", rect.X, rect.Y)
	}
	if got := svc.List(); len(got) != 1 {
		t.Errorf("registry length changed by reposition: %v", got)
	}
}

func TestResize_HostFailure(t *testing.T) {
	fh := host.NewFake()
	svc := NewService(fh)

	id, err := svc.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	fh.FailUpdate = true

	if err := svc.Resize(id, 800, 600); !errors.Is(err, ErrUpdateFailed) {
		t.Fatalf("expected ErrUpdateFailed, got %v", err)
	}
}

func TestCreate_ConcurrentNoLostUpdates(t *testing.T) {
	fh := host.NewFake()
	svc := NewService(fh)

	const n = 50
	var wg sync.WaitGroup
	ids := make([]string, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = svc.Create()
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("create %d: %v", i, errs[i])
		}
		if seen[ids[i]] {
			t.Fatalf("duplicate id %s", ids[i])
		}
		seen[ids[i]] = true
	}
	if got := svc.Registry().Len(); got != n {
		t.Errorf("registry length = %d, want %d", got, n)
	}
	if got := fh.WindowCount(); got != n {
		t.Errorf("host window count = %d, want %d", got, n)
	}
}

func TestIDGenerator_MonotonicWithinMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	g := &IDGenerator{now: func() time.Time { return fixed }}

	first := g.Next()
	if first != "floating-1700000000000" {
		t.Fatalf("first id = %q, want floating-1700000000000", first)
	}
	second := g.Next()
	if second != "floating-1700000000001" {
		t.Fatalf("second id = %q, want floating-1700000000001", second)
	}
}

func TestGreet(t *testing.T) {
	got := Greet("Ferris")
	if got != "Hello, Ferris! You've been greeted from Go!" {
		t.Errorf("greet = %q", got)
	}
}
