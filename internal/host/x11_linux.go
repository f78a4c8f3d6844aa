//go:build linux

package host

import (
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/paneld/internal/x11"
)

// X11Host implements Host on top of an X11 connection. It keeps a table
// mapping panel ids to X window ids; liveness is always re-checked against
// the server so windows closed behind our back are reported as absent.
type X11Host struct {
	conn *x11.Connection

	mu      sync.Mutex
	windows map[WindowID]xproto.Window
}

var _ Host = (*X11Host)(nil)

// NewX11Host opens a fresh X11 connection for panel management. display and
// xauthority may be empty to use the session environment.
func NewX11Host(display, xauthority string) (Host, error) {
	conn, err := x11.NewConnection(display, xauthority)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &X11Host{
		conn:    conn,
		windows: make(map[WindowID]xproto.Window),
	}, nil
}

// Disconnect closes the underlying X11 connection.
func (h *X11Host) Disconnect() {
	if h != nil && h.conn != nil {
		h.conn.Close()
	}
}

// EventLoop runs the X event loop, blocking until the connection closes.
func (h *X11Host) EventLoop() {
	h.conn.EventLoop()
}

// Create builds and maps a panel window under the given id.
func (h *X11Host) Create(id WindowID, opts Options) error {
	xid, err := h.conn.CreatePanelWindow(x11.PanelConfig{
		Title:       opts.Title,
		X:           opts.X,
		Y:           opts.Y,
		Width:       opts.Width,
		Height:      opts.Height,
		Resizable:   opts.Resizable,
		Decorated:   opts.Decorated,
		AlwaysOnTop: opts.AlwaysOnTop,
		SkipTaskbar: opts.SkipTaskbar,
	})
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.windows[id] = xid
	h.mu.Unlock()
	return nil
}

// Exists reports whether the panel's X window is still alive.
func (h *X11Host) Exists(id WindowID) bool {
	xid, ok := h.lookup(id)
	if !ok {
		return false
	}
	if !h.conn.WindowExists(xid) {
		// The server already destroyed it; drop the stale table entry.
		h.mu.Lock()
		delete(h.windows, id)
		h.mu.Unlock()
		return false
	}
	return true
}

// Close asks the window manager to close the panel gracefully.
func (h *X11Host) Close(id WindowID) error {
	xid, ok := h.lookup(id)
	if !ok {
		return fmt.Errorf("unknown window %s", id)
	}
	if err := h.conn.CloseWindow(xid); err != nil {
		return err
	}
	h.mu.Lock()
	delete(h.windows, id)
	h.mu.Unlock()
	return nil
}

// SetPosition moves the panel's top-left corner.
func (h *X11Host) SetPosition(id WindowID, x, y int) error {
	xid, ok := h.lookup(id)
	if !ok {
		return fmt.Errorf("unknown window %s", id)
	}
	return h.conn.MoveWindow(xid, x, y)
}

// SetSize resizes the panel.
func (h *X11Host) SetSize(id WindowID, width, height int) error {
	xid, ok := h.lookup(id)
	if !ok {
		return fmt.Errorf("unknown window %s", id)
	}
	return h.conn.ResizeWindow(xid, width, height)
}

// Geometry returns the panel's current root-relative geometry.
func (h *X11Host) Geometry(id WindowID) (Rect, error) {
	xid, ok := h.lookup(id)
	if !ok {
		return Rect{}, fmt.Errorf("unknown window %s", id)
	}
	geom, err := h.conn.GetGeometry(xid)
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: geom.X, Y: geom.Y, Width: geom.Width, Height: geom.Height}, nil
}

// Emit writes the event as a UTF-8 property on the panel window, where the
// front end inside it can pick it up.
func (h *X11Host) Emit(id WindowID, event, payload string) error {
	xid, ok := h.lookup(id)
	if !ok {
		return fmt.Errorf("unknown window %s", id)
	}
	return h.conn.SetEventProperty(xid, eventPropertyName(event), payload)
}

// Displays lists the active displays, for status reporting.
func (h *X11Host) Displays() ([]Display, error) {
	monitors, err := h.conn.GetMonitors()
	if err != nil {
		return nil, err
	}
	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, Display{
			ID:     m.ID,
			Name:   m.Name,
			Bounds: Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
		})
	}
	return displays, nil
}

func (h *X11Host) lookup(id WindowID) (xproto.Window, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	xid, ok := h.windows[id]
	return xid, ok
}

// eventPropertyName maps an event name like "window-type" to the X property
// "_PANELD_WINDOW_TYPE".
func eventPropertyName(event string) string {
	name := strings.ToUpper(strings.ReplaceAll(event, "-", "_"))
	return "_PANELD_" + name
}
