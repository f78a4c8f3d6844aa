package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/1broseidon/paneld/internal/host"
)

// Sentinel errors for the panel operations. Transports flatten these to
// descriptive strings; in-process callers can match them with errors.Is.
var (
	ErrNotFound     = errors.New("window not found")
	ErrCreateFailed = errors.New("failed to create window")
	ErrCloseFailed  = errors.New("failed to close window")
	ErrUpdateFailed = errors.New("failed to update window")
)

// EventWindowType is the one-shot event sent to a freshly created panel so
// the front end inside it can self-configure.
const (
	EventWindowType = "window-type"
	PayloadFloating = "floating-panel"
)

// Service tracks the panels this process created and forwards the actual
// window work to the host. The registry lock is never held across a host
// call; concurrent creates may race on the host side but their registry
// appends serialize cleanly.
type Service struct {
	host  host.Host
	reg   *Registry
	idgen *IDGenerator

	optsMu sync.RWMutex
	opts   host.Options
}

// NewService creates a panel service over the given host using the stock
// panel geometry.
func NewService(h host.Host) *Service {
	return NewServiceWithOptions(h, host.DefaultOptions())
}

// NewServiceWithOptions creates a panel service with explicit defaults for
// newly created panels.
func NewServiceWithOptions(h host.Host, opts host.Options) *Service {
	return &Service{
		host:  h,
		reg:   NewRegistry(),
		idgen: NewIDGenerator(),
		opts:  opts,
	}
}

// Registry exposes the underlying registry, primarily for the reconciler.
func (s *Service) Registry() *Registry {
	return s.reg
}

// Defaults returns the options applied to newly created panels.
func (s *Service) Defaults() host.Options {
	s.optsMu.RLock()
	defer s.optsMu.RUnlock()
	return s.opts
}

// SetDefaults swaps the options applied to newly created panels, e.g. after
// a config reload.
func (s *Service) SetDefaults(opts host.Options) {
	s.optsMu.Lock()
	defer s.optsMu.Unlock()
	s.opts = opts
}

// Create builds a new floating panel and returns its id. On host failure the
// registry is left unchanged.
func (s *Service) Create() (string, error) {
	id := s.idgen.Next()

	if err := s.host.Create(host.WindowID(id), s.Defaults()); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	s.reg.Append(id)

	// Best-effort role announcement to the new window; creation already
	// succeeded, so an emit failure is not surfaced.
	_ = s.host.Emit(host.WindowID(id), EventWindowType, PayloadFloating)

	return id, nil
}

// Close closes the panel with the given id. Existence is checked against the
// host's live window set, not the registry.
func (s *Service) Close(id string) error {
	if !s.host.Exists(host.WindowID(id)) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.host.Close(host.WindowID(id)); err != nil {
		return fmt.Errorf("%w: %v", ErrCloseFailed, err)
	}
	s.reg.Remove(id)
	return nil
}

// List returns the tracked panel ids in creation order.
func (s *Service) List() []string {
	return s.reg.Snapshot()
}

// Reposition moves the panel's top-left corner to (x, y) in logical
// coordinates. The registry is not touched.
func (s *Service) Reposition(id string, x, y int) error {
	if !s.host.Exists(host.WindowID(id)) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.host.SetPosition(host.WindowID(id), x, y); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return nil
}

// Resize sets the panel's logical width and height. The registry is not
// touched.
func (s *Service) Resize(id string, width, height int) error {
	if !s.host.Exists(host.WindowID(id)) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.host.SetSize(host.WindowID(id), width, height); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return nil
}

// Geometry reports the panel's current host-side geometry.
func (s *Service) Geometry(id string) (host.Rect, error) {
	if !s.host.Exists(host.WindowID(id)) {
		return host.Rect{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	rect, err := s.host.Geometry(host.WindowID(id))
	if err != nil {
		return host.Rect{}, fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return rect, nil
}

// Greet returns the demo greeting for name.
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}
