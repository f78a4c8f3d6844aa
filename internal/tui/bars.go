package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/paneld/internal/ipc"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	connectedDot    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	disconnectedDot = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
)

// renderStatusBar renders the daemon connection status bar.
func renderStatusBar(connected bool, status *ipc.StatusData, width int) string {
	var text string
	if connected && status != nil {
		parts := []string{connectedDot + " daemon connected"}
		parts = append(parts, fmt.Sprintf("panels:%d", status.PanelCount))
		parts = append(parts, fmt.Sprintf("up:%s", formatUptime(status.UptimeSeconds)))
		if len(status.Displays) > 0 {
			parts = append(parts, fmt.Sprintf("displays:%d", len(status.Displays)))
		}
		text = strings.Join(parts, "  ")
	} else {
		text = disconnectedDot + " daemon not running"
	}
	return barStyle.Width(width).Render(text)
}

// renderHelpBar renders the bottom help/keybinding bar.
func renderHelpBar(width int) string {
	help := "j/k: select  n: new  c: new with geometry  d: close  shift-arrows: move  +/-: resize  r: refresh  q: quit"
	return helpStyle.Width(width).Render(help)
}

func formatUptime(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%dh%dm", seconds/3600, (seconds%3600)/60)
}
