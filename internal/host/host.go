package host

// WindowID is the identifier a panel window is known by, both to the host
// window system and to the registry.
type WindowID string

// Rect describes a window's geometry in logical screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display known to the host.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
}

// Options describes the window to create.
type Options struct {
	Title       string
	X           int
	Y           int
	Width       int
	Height      int
	Resizable   bool
	Decorated   bool
	AlwaysOnTop bool
	SkipTaskbar bool
}

// DefaultOptions returns the stock floating-panel geometry and flags.
func DefaultOptions() Options {
	return Options{
		Title:       "Floating Panel",
		X:           100,
		Y:           100,
		Width:       400,
		Height:      300,
		Resizable:   true,
		Decorated:   true,
		AlwaysOnTop: true,
		SkipTaskbar: false,
	}
}

// Host abstracts window-system operations behind a small capability surface.
// Exists consults the host's live window set, not any bookkeeping layer above
// it, so callers can detect windows that disappeared out from under them.
type Host interface {
	Create(id WindowID, opts Options) error
	Exists(id WindowID) bool
	Close(id WindowID) error
	SetPosition(id WindowID, x, y int) error
	SetSize(id WindowID, width, height int) error
	Geometry(id WindowID) (Rect, error)
	Emit(id WindowID, event, payload string) error
	Displays() ([]Display, error)
}
