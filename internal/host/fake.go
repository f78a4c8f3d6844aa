package host

import (
	"errors"
	"fmt"
	"sync"
)

// Fake is an in-memory Host for tests. Failure switches let callers simulate
// host-level errors; ForgetWindow simulates a window closed behind our back.
type Fake struct {
	mu      sync.Mutex
	windows map[WindowID]Rect
	events  []string // "id/event/payload"

	FailCreate bool
	FailClose  bool
	FailUpdate bool
}

var _ Host = (*Fake)(nil)

// NewFake creates an empty fake host.
func NewFake() *Fake {
	return &Fake{windows: make(map[WindowID]Rect)}
}

func (f *Fake) Create(id WindowID, opts Options) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailCreate {
		return errors.New("host out of resources")
	}
	f.windows[id] = Rect{X: opts.X, Y: opts.Y, Width: opts.Width, Height: opts.Height}
	return nil
}

func (f *Fake) Exists(id WindowID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.windows[id]
	return ok
}

func (f *Fake) Close(id WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailClose {
		return errors.New("host refused close")
	}
	delete(f.windows, id)
	return nil
}

func (f *Fake) SetPosition(id WindowID, x, y int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailUpdate {
		return errors.New("host refused move")
	}
	r := f.windows[id]
	r.X, r.Y = x, y
	f.windows[id] = r
	return nil
}

func (f *Fake) SetSize(id WindowID, width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailUpdate {
		return errors.New("host refused resize")
	}
	r := f.windows[id]
	r.Width, r.Height = width, height
	f.windows[id] = r
	return nil
}

func (f *Fake) Geometry(id WindowID) (Rect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.windows[id]
	if !ok {
		return Rect{}, errors.New("no such window")
	}
	return r, nil
}

func (f *Fake) Emit(id WindowID, event, payload string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, fmt.Sprintf("%s/%s/%s", id, event, payload))
	return nil
}

func (f *Fake) Displays() ([]Display, error) {
	return []Display{{ID: 0, Name: "fake", Bounds: Rect{Width: 1920, Height: 1080}}}, nil
}

// ForgetWindow drops a window from the fake's live set without going through
// Close, as if the user dismissed it via the window manager.
func (f *Fake) ForgetWindow(id WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.windows, id)
}

// Events returns the emitted events as "id/event/payload" strings.
func (f *Fake) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	copy(out, f.events)
	return out
}

// WindowCount returns the number of live fake windows.
func (f *Fake) WindowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.windows)
}
