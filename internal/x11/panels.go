package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// PanelConfig describes a panel window to create.
type PanelConfig struct {
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

// CreatePanelWindow creates and maps a top-level panel window, returning its
// X window ID. EWMH hints are applied before mapping so the window manager
// sees them on the initial map request.
func (c *Connection) CreatePanelWindow(cfg PanelConfig) (xproto.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate window id: %w", err)
	}

	err = win.CreateChecked(
		c.Root,
		cfg.X, cfg.Y, cfg.Width, cfg.Height,
		xproto.CwBackPixel|xproto.CwEventMask,
		uint32(0xffffff),
		uint32(xproto.EventMaskStructureNotify),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create window: %w", err)
	}

	if err := ewmh.WmNameSet(c.XUtil, win.Id, cfg.Title); err != nil {
		// Title is cosmetic; the window is still usable without one.
	}

	_ = ewmh.WmWindowTypeSet(c.XUtil, win.Id, []string{"_NET_WM_WINDOW_TYPE_NORMAL"})

	// Advertise WM_DELETE_WINDOW so graceful close requests reach us.
	if err := icccm.WmProtocolsSet(c.XUtil, win.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		win.Destroy()
		return 0, fmt.Errorf("failed to set WM protocols: %w", err)
	}

	var states []string
	if cfg.AlwaysOnTop {
		states = append(states, "_NET_WM_STATE_ABOVE")
	}
	if cfg.SkipTaskbar {
		states = append(states, "_NET_WM_STATE_SKIP_TASKBAR")
	}
	if len(states) > 0 {
		_ = ewmh.WmStateSet(c.XUtil, win.Id, states)
	}

	if !cfg.Resizable {
		hints := icccm.NormalHints{
			Flags:     icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
			MinWidth:  uint(cfg.Width),
			MinHeight: uint(cfg.Height),
			MaxWidth:  uint(cfg.Width),
			MaxHeight: uint(cfg.Height),
		}
		_ = icccm.WmNormalHintsSet(c.XUtil, win.Id, &hints)
	}

	if !cfg.Decorated {
		_ = motif.WmHintsSet(c.XUtil, win.Id, &motif.Hints{
			Flags:      motif.HintDecorations,
			Decoration: motif.DecorationNone,
		})
	}

	win.Map()

	// Some window managers only honor position hints post-map; move
	// explicitly so the panel ends up where it was asked for.
	win.Move(cfg.X, cfg.Y)

	return win.Id, nil
}
