package mcp

import (
	"math"
	"strings"
	"testing"

	"github.com/1broseidon/paneld/internal/host"
	"github.com/1broseidon/paneld/internal/registry"
)

// panelClientFake implements PanelClient over an in-process service instead
// of the daemon socket.
type panelClientFake struct {
	svc *registry.Service
}

func (c *panelClientFake) Greet(name string) (string, error) {
	return registry.Greet(name), nil
}

func (c *panelClientFake) CreatePanel() (string, error) {
	return c.svc.Create()
}

func (c *panelClientFake) ClosePanel(windowID string) error {
	return c.svc.Close(windowID)
}

func (c *panelClientFake) ListPanels() ([]string, error) {
	return c.svc.List(), nil
}

func (c *panelClientFake) SetPosition(windowID string, x, y float64) error {
	return c.svc.Reposition(windowID, int(math.Round(x)), int(math.Round(y)))
}

func (c *panelClientFake) SetSize(windowID string, width, height float64) error {
	return c.svc.Resize(windowID, int(math.Round(width)), int(math.Round(height)))
}

func newTestServer() (*Server, *host.Fake) {
	fake := host.NewFake()
	svc := registry.NewService(fake)
	return NewServer(&panelClientFake{svc: svc}), fake
}

func TestHandleGreet(t *testing.T) {
	s, _ := newTestServer()

	_, out, err := s.handleGreet(nil, nil, GreetInput{Name: "Ada"})
	if err != nil {
		t.Fatalf("handleGreet failed: %v", err)
	}
	if out.Greeting != "Hello, Ada! You've been greeted from Go!" {
		t.Errorf("unexpected greeting: %q", out.Greeting)
	}
}

func TestHandleGreet_RequiresName(t *testing.T) {
	s, _ := newTestServer()

	_, _, err := s.handleGreet(nil, nil, GreetInput{Name: "  "})
	if err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestHandleCreateAndListPanels(t *testing.T) {
	s, _ := newTestServer()

	_, created, err := s.handleCreatePanel(nil, nil, CreatePanelInput{})
	if err != nil {
		t.Fatalf("handleCreatePanel failed: %v", err)
	}
	if !strings.HasPrefix(created.WindowID, "floating-") {
		t.Errorf("window id %q missing floating- prefix", created.WindowID)
	}

	_, listed, err := s.handleListPanels(nil, nil, ListPanelsInput{})
	if err != nil {
		t.Fatalf("handleListPanels failed: %v", err)
	}
	if len(listed.Windows) != 1 || listed.Windows[0] != created.WindowID {
		t.Errorf("list = %v, want [%s]", listed.Windows, created.WindowID)
	}
}

func TestHandleListPanels_EmptyIsNotNil(t *testing.T) {
	s, _ := newTestServer()

	_, out, err := s.handleListPanels(nil, nil, ListPanelsInput{})
	if err != nil {
		t.Fatalf("handleListPanels failed: %v", err)
	}
	if out.Windows == nil {
		t.Error("Windows should be an empty slice, not nil")
	}
}

func TestHandleClosePanel(t *testing.T) {
	s, _ := newTestServer()

	_, created, err := s.handleCreatePanel(nil, nil, CreatePanelInput{})
	if err != nil {
		t.Fatalf("handleCreatePanel failed: %v", err)
	}

	_, out, err := s.handleClosePanel(nil, nil, ClosePanelInput{WindowID: created.WindowID})
	if err != nil {
		t.Fatalf("handleClosePanel failed: %v", err)
	}
	if !out.Closed {
		t.Error("Closed should be true")
	}

	_, listed, _ := s.handleListPanels(nil, nil, ListPanelsInput{})
	if len(listed.Windows) != 0 {
		t.Errorf("list after close = %v, want empty", listed.Windows)
	}
}

func TestHandleClosePanel_UnknownWindow(t *testing.T) {
	s, _ := newTestServer()

	_, out, err := s.handleClosePanel(nil, nil, ClosePanelInput{WindowID: "floating-404"})
	if err == nil {
		t.Fatal("expected error for unknown window")
	}
	if out.Closed {
		t.Error("Closed should be false on error")
	}
	if !strings.Contains(err.Error(), "window not found") {
		t.Errorf("error %q should mention window not found", err)
	}
}

func TestHandleMovePanel_RoundsCoordinates(t *testing.T) {
	s, fake := newTestServer()

	_, created, err := s.handleCreatePanel(nil, nil, CreatePanelInput{})
	if err != nil {
		t.Fatalf("handleCreatePanel failed: %v", err)
	}

	_, out, err := s.handleMovePanel(nil, nil, MovePanelInput{
		WindowID: created.WindowID,
		X:        250.4,
		Y:        74.6,
	})
	if err != nil {
		t.Fatalf("handleMovePanel failed: %v", err)
	}
	if !out.Moved {
		t.Error("Moved should be true")
	}

	rect, err := fake.Geometry(host.WindowID(created.WindowID))
	if err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	if rect.X != 250 || rect.Y != 75 {
		t.Errorf("position = (%d, %d), want (250, 75)", rect.X, rect.Y)
	}
}

func TestHandleResizePanel(t *testing.T) {
	s, fake := newTestServer()

	_, created, err := s.handleCreatePanel(nil, nil, CreatePanelInput{})
	if err != nil {
		t.Fatalf("handleCreatePanel failed: %v", err)
	}

	_, out, err := s.handleResizePanel(nil, nil, ResizePanelInput{
		WindowID: created.WindowID,
		Width:    640,
		Height:   480,
	})
	if err != nil {
		t.Fatalf("handleResizePanel failed: %v", err)
	}
	if !out.Resized {
		t.Error("Resized should be true")
	}

	rect, err := fake.Geometry(host.WindowID(created.WindowID))
	if err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	if rect.Width != 640 || rect.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", rect.Width, rect.Height)
	}
}

func TestHandleResizePanel_RejectsNonPositive(t *testing.T) {
	s, _ := newTestServer()

	_, created, err := s.handleCreatePanel(nil, nil, CreatePanelInput{})
	if err != nil {
		t.Fatalf("handleCreatePanel failed: %v", err)
	}

	for _, tc := range []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 100},
		{"zero height", 100, 0},
		{"negative", -10, -10},
	} {
		_, _, err := s.handleResizePanel(nil, nil, ResizePanelInput{
			WindowID: created.WindowID,
			Width:    tc.w,
			Height:   tc.h,
		})
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
