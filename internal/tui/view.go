package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(1, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)
)

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.creating && m.form != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New Panel"),
			m.form.View(),
		)
	}

	statusBar := renderStatusBar(m.connected, m.status, m.width)
	helpBar := renderHelpBar(m.width)

	var rows []string
	if len(m.panels) == 0 {
		rows = append(rows, emptyStyle.Render("no panels. press n to create one"))
	} else {
		for i, p := range m.panels {
			label := fmt.Sprintf("%-24s %4dx%-4d at (%d, %d)",
				p.id, p.geom.Width, p.geom.Height, p.geom.X, p.geom.Y)
			if i == m.selected {
				rows = append(rows, selectedRowStyle.Render("▸ "+label))
			} else {
				rows = append(rows, rowStyle.Render("  "+label))
			}
		}
	}
	list := strings.Join(rows, "\n")

	sections := []string{statusBar, list}
	if m.lastError != "" {
		sections = append(sections, errorStyle.Render("error: "+m.lastError))
	}
	sections = append(sections, helpBar)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
