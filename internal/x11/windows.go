package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Geometry describes a window's root-relative geometry.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// WindowExists reports whether the X server still knows the window. A
// destroyed window makes the attributes request fail.
func (c *Connection) WindowExists(windowID xproto.Window) bool {
	_, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	return err == nil
}

// MoveWindow moves a window's top-left corner to (x, y).
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) error {
	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveWindow(c.XUtil, windowID, x, y)
	if err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).Move(x, y)
	}
	return nil
}

// ResizeWindow sets a window's width and height.
func (c *Connection) ResizeWindow(windowID xproto.Window, width, height int) error {
	err := ewmh.ResizeWindow(c.XUtil, windowID, width, height)
	if err != nil {
		xwindow.New(c.XUtil, windowID).Resize(width, height)
	}
	return nil
}

// CloseWindow requests graceful window close via WM_DELETE_WINDOW.
func (c *Connection) CloseWindow(windowID xproto.Window) error {
	deleteReply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len("WM_DELETE_WINDOW")), "WM_DELETE_WINDOW").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern WM_DELETE_WINDOW: %w", err)
	}
	protocolsReply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len("WM_PROTOCOLS")), "WM_PROTOCOLS").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern WM_PROTOCOLS: %w", err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   protocolsReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteReply.Atom), 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		windowID,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

// GetGeometry returns the window's geometry translated to root coordinates.
func (c *Connection) GetGeometry(windowID xproto.Window) (Geometry, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to get geometry: %w", err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to translate coordinates: %w", err)
	}

	return Geometry{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// SetEventProperty writes a UTF-8 string property on the window. The front
// end running inside the window reads it as a one-shot event channel.
func (c *Connection) SetEventProperty(windowID xproto.Window, name, value string) error {
	if err := xprop.ChangeProp(c.XUtil, windowID, 8, name, "UTF8_STRING", []byte(value)); err != nil {
		return fmt.Errorf("failed to set property %s: %w", name, err)
	}
	return nil
}
