package ipc

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/paneld/internal/host"
	"github.com/1broseidon/paneld/internal/oplog"
	"github.com/1broseidon/paneld/internal/registry"
	"github.com/1broseidon/paneld/internal/store"
)

func newTestServer(t *testing.T) (*Server, *host.Fake) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	fh := host.NewFake()
	svc := registry.NewService(fh)
	layouts := store.New(filepath.Join(t.TempDir(), "layouts.yaml"))
	actions, err := oplog.New(oplog.Config{Enabled: false})
	if err != nil {
		t.Fatalf("oplog: %v", err)
	}

	srv, err := NewServer(svc, fh, layouts, actions, make(chan struct{}, 1))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, fh
}

func mustPayload(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return data
}

func TestHandleGreet(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := srv.handleCommand(&Request{
		Command: CommandGreet,
		Payload: mustPayload(t, GreetPayload{Name: "World"}),
	})
	if resp.Status != "OK" {
		t.Fatalf("status = %s, error = %s", resp.Status, resp.Error)
	}

	var data GreetData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if data.Greeting != "Hello, World! You've been greeted from Go!" {
		t.Errorf("greeting = %q", data.Greeting)
	}
}

func TestCreateListCloseCycle(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := srv.handleCommand(&Request{Command: CommandCreatePanel})
	if resp.Status != "OK" {
		t.Fatalf("create: %s", resp.Error)
	}
	var created CreatePanelData
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.HasPrefix(created.WindowID, "floating-") {
		t.Errorf("window id = %q, want floating- prefix", created.WindowID)
	}

	resp = srv.handleCommand(&Request{Command: CommandListPanels})
	if resp.Status != "OK" {
		t.Fatalf("list: %s", resp.Error)
	}
	var panels PanelsData
	if err := json.Unmarshal(resp.Data, &panels); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(panels.Windows) != 1 || panels.Windows[0] != created.WindowID {
		t.Errorf("panels = %v, want [%s]", panels.Windows, created.WindowID)
	}

	resp = srv.handleCommand(&Request{
		Command: CommandClosePanel,
		Payload: mustPayload(t, ClosePanelPayload{WindowID: created.WindowID}),
	})
	if resp.Status != "OK" {
		t.Fatalf("close: %s", resp.Error)
	}

	resp = srv.handleCommand(&Request{Command: CommandListPanels})
	if err := json.Unmarshal(resp.Data, &panels); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(panels.Windows) != 0 {
		t.Errorf("panels after close = %v, want empty", panels.Windows)
	}
}

func TestClose_UnknownWindowIsError(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := srv.handleCommand(&Request{
		Command: CommandClosePanel,
		Payload: mustPayload(t, ClosePanelPayload{WindowID: "floating-nonexistent"}),
	})
	if resp.Status != "ERROR" {
		t.Fatal("expected error response")
	}
	if !strings.Contains(resp.Error, "window not found") {
		t.Errorf("error = %q, want window not found", resp.Error)
	}
}

func TestSetPositionAndSize(t *testing.T) {
	srv, fh := newTestServer(t)

	resp := srv.handleCommand(&Request{Command: CommandCreatePanel})
	var created CreatePanelData
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	resp = srv.handleCommand(&Request{
		Command: CommandSetPosition,
		Payload: mustPayload(t, SetPositionPayload{WindowID: created.WindowID, X: 250.4, Y: 74.6}),
	})
	if resp.Status != "OK" {
		t.Fatalf("set position: %s", resp.Error)
	}

	resp = srv.handleCommand(&Request{
		Command: CommandSetSize,
		Payload: mustPayload(t, SetSizePayload{WindowID: created.WindowID, Width: 800, Height: 600}),
	})
	if resp.Status != "OK" {
		t.Fatalf("set size: %s", resp.Error)
	}

	rect, err := fh.Geometry(host.WindowID(created.WindowID))
	if err != nil {
		t.Fatalf("geometry: %v", err)
	}
	// Logical floats round to the nearest pixel.
	if rect.X != 250 || rect.Y != 75 {
		t.Errorf("position = (%d,%d), want (250,75)", rect.X, rect.Y)
	}
	if rect.Width != 800 || rect.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", rect.Width, rect.Height)
	}
}

func TestSetSize_RejectsNonPositive(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := srv.handleCommand(&Request{
		Command: CommandSetSize,
		Payload: mustPayload(t, SetSizePayload{WindowID: "floating-1", Width: 0, Height: 300}),
	})
	if resp.Status != "ERROR" {
		t.Fatal("expected error for zero width")
	}
}

func TestGetGeometry(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := srv.handleCommand(&Request{Command: CommandCreatePanel})
	if resp.Status != "OK" {
		t.Fatalf("create: %s", resp.Error)
	}
	var created CreatePanelData
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	resp = srv.handleCommand(&Request{
		Command: CommandGetGeometry,
		Payload: mustPayload(t, GetGeometryPayload{WindowID: created.WindowID}),
	})
	if resp.Status != "OK" {
		t.Fatalf("geometry: %s", resp.Error)
	}
	var geom GeometryData
	if err := json.Unmarshal(resp.Data, &geom); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if geom.X != 100 || geom.Y != 100 || geom.Width != 400 || geom.Height != 300 {
		t.Errorf("geometry = %+v, want 100,100 400x300", geom)
	}

	resp = srv.handleCommand(&Request{
		Command: CommandGetGeometry,
		Payload: mustPayload(t, GetGeometryPayload{WindowID: "floating-404"}),
	})
	if resp.Status != "ERROR" {
		t.Fatal("expected error for unknown window")
	}
}

func TestGetStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	srv.handleCommand(&Request{Command: CommandCreatePanel})
	srv.handleCommand(&Request{Command: CommandCreatePanel})

	resp := srv.handleCommand(&Request{Command: CommandGetStatus})
	if resp.Status != "OK" {
		t.Fatalf("status: %s", resp.Error)
	}
	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if status.PanelCount != 2 {
		t.Errorf("panel count = %d, want 2", status.PanelCount)
	}
	if !status.DaemonRunning {
		t.Error("daemon_running should be true")
	}
	if len(status.Displays) != 1 || status.Displays[0].Width != 1920 {
		t.Errorf("displays = %+v", status.Displays)
	}
}

func TestLayoutSaveAndLoad(t *testing.T) {
	srv, _ := newTestServer(t)

	srv.handleCommand(&Request{Command: CommandCreatePanel})
	srv.handleCommand(&Request{Command: CommandCreatePanel})

	resp := srv.handleCommand(&Request{
		Command: CommandSaveLayout,
		Payload: mustPayload(t, LayoutNamePayload{Name: "pair"}),
	})
	if resp.Status != "OK" {
		t.Fatalf("save layout: %s", resp.Error)
	}

	resp = srv.handleCommand(&Request{
		Command: CommandLoadLayout,
		Payload: mustPayload(t, LayoutNamePayload{Name: "pair"}),
	})
	if resp.Status != "OK" {
		t.Fatalf("load layout: %s", resp.Error)
	}
	var loaded LoadLayoutData
	if err := json.Unmarshal(resp.Data, &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(loaded.Windows) != 2 {
		t.Errorf("loaded %d panels, want 2", len(loaded.Windows))
	}

	// Two original panels plus two recreated ones.
	resp = srv.handleCommand(&Request{Command: CommandListPanels})
	var panels PanelsData
	if err := json.Unmarshal(resp.Data, &panels); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(panels.Windows) != 4 {
		t.Errorf("panel count = %d, want 4", len(panels.Windows))
	}
}

func TestUnknownCommand(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := srv.handleCommand(&Request{Command: "EXPLODE"})
	if resp.Status != "ERROR" || !strings.Contains(resp.Error, "Unknown command") {
		t.Errorf("resp = %+v", resp)
	}
}

func TestServerClientRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer srv.Stop()

	client := NewClient()

	greeting, err := client.Greet("IPC")
	if err != nil {
		t.Fatalf("greet: %v", err)
	}
	if !strings.Contains(greeting, "IPC") {
		t.Errorf("greeting = %q", greeting)
	}

	id, err := client.CreatePanel()
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	windows, err := client.ListPanels()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(windows) != 1 || windows[0] != id {
		t.Errorf("windows = %v, want [%s]", windows, id)
	}

	if err := client.SetPosition(id, 10, 20); err != nil {
		t.Fatalf("set position: %v", err)
	}
	if err := client.ClosePanel(id); err != nil {
		t.Fatalf("close: %v", err)
	}

	if err := client.ClosePanel("floating-nonexistent"); err == nil {
		t.Error("expected error for unknown window")
	}
}
