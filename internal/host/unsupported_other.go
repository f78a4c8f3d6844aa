//go:build !linux

package host

import "fmt"

// NewX11Host is unavailable off Linux; the daemon refuses to start rather
// than pretending windows exist.
func NewX11Host(display, xauthority string) (Host, error) {
	return nil, fmt.Errorf("paneld requires an X11 window system; this platform is not supported")
}
