package tui

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/1broseidon/paneld/internal/host"
	"github.com/1broseidon/paneld/internal/ipc"
)

const refreshInterval = 2 * time.Second

// panelItem is one row in the panel list.
type panelItem struct {
	id   string
	geom ipc.GeometryData
}

// refreshMsg triggers a daemon poll.
type refreshMsg struct{}

// model is the root bubbletea model for the panel manager.
type model struct {
	client *ipc.Client

	// Daemon state
	connected bool
	status    *ipc.StatusData
	panels    []panelItem

	// UI state
	selected  int
	lastError string

	// Create form
	creating bool
	form     *huh.Form
	fX       string
	fY       string
	fWidth   string
	fHeight  string

	// Terminal dimensions
	width  int
	height int
}

func newModel(client *ipc.Client) model {
	m := model{client: client}
	m.refresh()
	return m
}

// Run starts the interactive panel manager, blocking until the user quits.
func Run() error {
	p := tea.NewProgram(newModel(ipc.NewClient()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// refresh polls the daemon for status and panel geometry.
func (m *model) refresh() {
	status, err := m.client.GetStatus()
	if err != nil {
		m.connected = false
		m.status = nil
		m.panels = nil
		return
	}
	m.connected = true
	m.status = status

	ids, err := m.client.ListPanels()
	if err != nil {
		m.lastError = err.Error()
		return
	}

	panels := make([]panelItem, 0, len(ids))
	for _, id := range ids {
		item := panelItem{id: id}
		if geom, err := m.client.GetGeometry(id); err == nil {
			item.geom = *geom
		}
		panels = append(panels, item)
	}
	m.panels = panels

	if m.selected >= len(m.panels) {
		m.selected = len(m.panels) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *model) selectedPanel() *panelItem {
	if len(m.panels) == 0 || m.selected < 0 || m.selected >= len(m.panels) {
		return nil
	}
	return &m.panels[m.selected]
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return scheduleRefresh()
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The create form captures all input while active.
	if m.creating {
		return m.updateCreating(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshMsg:
		m.refresh()
		return m, scheduleRefresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.panels)-1 {
			m.selected++
		}

	case "n":
		if _, err := m.client.CreatePanel(); err != nil {
			m.lastError = err.Error()
		} else {
			m.lastError = ""
		}
		m.refresh()

	case "c":
		m.startCreateForm()
		return m, m.form.Init()

	case "d", "x":
		if p := m.selectedPanel(); p != nil {
			if err := m.client.ClosePanel(p.id); err != nil {
				m.lastError = err.Error()
			} else {
				m.lastError = ""
			}
			m.refresh()
		}

	case "shift+left":
		m.nudge(-nudgeStep, 0)
	case "shift+right":
		m.nudge(nudgeStep, 0)
	case "shift+up":
		m.nudge(0, -nudgeStep)
	case "shift+down":
		m.nudge(0, nudgeStep)

	case "+", "=":
		m.grow(resizeStep)
	case "-":
		m.grow(-resizeStep)

	case "r":
		m.refresh()
	}

	return m, nil
}

const (
	nudgeStep  = 10
	resizeStep = 20
)

// nudge moves the selected panel by (dx, dy) pixels.
func (m *model) nudge(dx, dy int) {
	p := m.selectedPanel()
	if p == nil {
		return
	}
	x := p.geom.X + dx
	y := p.geom.Y + dy
	if err := m.client.SetPosition(p.id, float64(x), float64(y)); err != nil {
		m.lastError = err.Error()
		return
	}
	m.lastError = ""
	p.geom.X = x
	p.geom.Y = y
}

// grow resizes the selected panel by delta pixels in both dimensions.
func (m *model) grow(delta int) {
	p := m.selectedPanel()
	if p == nil {
		return
	}
	w := p.geom.Width + delta
	h := p.geom.Height + delta
	if w < minPanelDim {
		w = minPanelDim
	}
	if h < minPanelDim {
		h = minPanelDim
	}
	if err := m.client.SetSize(p.id, float64(w), float64(h)); err != nil {
		m.lastError = err.Error()
		return
	}
	m.lastError = ""
	p.geom.Width = w
	p.geom.Height = h
}

const minPanelDim = 50

func (m *model) startCreateForm() {
	defaults := host.DefaultOptions()
	m.fX = strconv.Itoa(defaults.X)
	m.fY = strconv.Itoa(defaults.Y)
	m.fWidth = strconv.Itoa(defaults.Width)
	m.fHeight = strconv.Itoa(defaults.Height)

	w := m.width - 4
	if w < 40 {
		w = 40
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("x").
				Title("X").
				Description("Left edge in pixels").
				Validate(validateInt).
				Value(&m.fX),

			huh.NewInput().
				Key("y").
				Title("Y").
				Description("Top edge in pixels").
				Validate(validateInt).
				Value(&m.fY),

			huh.NewInput().
				Key("width").
				Title("Width").
				Description("Panel width in pixels").
				Validate(validatePositiveInt).
				Value(&m.fWidth),

			huh.NewInput().
				Key("height").
				Title("Height").
				Description("Panel height in pixels").
				Validate(validatePositiveInt).
				Value(&m.fHeight),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	m.creating = true
}

func (m model) updateCreating(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.creating = false
			m.form = nil
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case refreshMsg:
		// Keep the poll loop alive while the form is open.
		return m, scheduleRefresh()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.submitCreateForm()
		m.creating = false
		m.form = nil
		return m, nil
	}

	return m, cmd
}

// submitCreateForm creates a panel at the form's geometry. The form inputs
// are validated before completion, so the conversions cannot fail.
func (m *model) submitCreateForm() {
	x, _ := strconv.Atoi(m.fX)
	y, _ := strconv.Atoi(m.fY)
	w, _ := strconv.Atoi(m.fWidth)
	h, _ := strconv.Atoi(m.fHeight)

	id, err := m.client.CreatePanel()
	if err != nil {
		m.lastError = err.Error()
		return
	}
	if err := m.client.SetPosition(id, float64(x), float64(y)); err != nil {
		m.lastError = err.Error()
	}
	if err := m.client.SetSize(id, float64(w), float64(h)); err != nil {
		m.lastError = err.Error()
	}
	m.refresh()
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("must be an integer")
	}
	return nil
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be an integer")
	}
	if v <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}
