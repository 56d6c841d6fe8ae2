package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/helix/internal/config"
	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/host"
	"github.com/vovakirdan/helix/internal/platform/session"
	"github.com/vovakirdan/helix/internal/render/soft"
)

// footerLines is the number of rows below the rendered scene.
const footerLines = 1

// holdMillis is how long a key press stays held without a repeat.
const holdMillis = 150

// Model is the Bubble Tea model driving one session.
type Model struct {
	session  *session.Session
	device   *soft.Device
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	input    *Input
	stats    bool
	err      error
	quitting bool
}

// NewScreen creates the render target for a terminal of the given size.
func NewScreen(cfg core.RuntimeConfig) *core.Screen {
	return core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerLines, 0))
}

// SceneConfig returns cfg reduced to the area the scene is drawn in.
func SceneConfig(cfg core.RuntimeConfig) core.RuntimeConfig {
	cfg.ScreenH = max(cfg.ScreenH-footerLines, 0)
	return cfg
}

// NewModel creates a model for a session whose device draws into dev.
// The session must already be started.
func NewModel(s *session.Session, dev *soft.Device, cfg core.RuntimeConfig) Model {
	return Model{
		session: s,
		device:  dev,
		screen:  dev.Screen(),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		input:   NewInput(max(cfg.TickRate*holdMillis/1000, 1)),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Apply(msg, m.input) {
	case ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case ActionReload:
		if err := m.session.Host.Reload(); err != nil {
			return m.fail(err)
		}
	case ActionScreenshot:
		m.saveScreenshot()
	case ActionStats:
		m.stats = !m.stats
	case ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleResize rebuilds the projection by reloading the module with the new
// aspect ratio. The simulation state carries over.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerLines, 0))
	m.help.Width = msg.Width

	h := m.session.Host
	h.SetAspect(SceneConfig(m.config).Aspect())
	if h.Phase() == host.Running {
		if err := h.Reload(); err != nil {
			return m.fail(err)
		}
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	keys := m.input.Next()
	if err := m.session.Host.Frame(keys, m.config.FrameMillis()); err != nil {
		return m.fail(err)
	}
	if m.stats {
		m.drawStats()
	}
	return m, tickCmd(m.config.TickRate)
}

// drawStats overlays the rasterizer counters in the top-left corner of the
// scene. It is skipped when the scene is too small to hold the box.
func (m Model) drawStats() {
	drawn, culled := m.device.Stats()
	lines := []string{
		fmt.Sprintf("drawn  %d", drawn),
		fmt.Sprintf("culled %d", culled),
		fmt.Sprintf("live   %d", m.device.Live()),
	}

	box := core.NewRect(0, 0, 16, len(lines)+2)
	view := core.NewRect(0, 0, m.screen.Width(), m.screen.Height())
	if !view.Contains(box.Right()-1, box.Bottom()-1) {
		return
	}

	m.screen.DrawRect(box, ' ')
	m.screen.DrawBox(box)
	for i, line := range lines {
		m.screen.DrawText(box.X+2, box.Y+1+i, line, core.ColorYellow)
	}
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

// Err returns the error that ended the loop, if any.
func (m Model) Err() error {
	return m.err
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	dir := filepath.Join(config.HomeDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	name := filepath.Base(m.session.Host.Name())
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, timestamp))

	//nolint:errcheck // Best-effort save, the loop continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(RenderFrame(m.device))
	sb.WriteRune('\n')
	sb.WriteString(m.footer())
	return sb.String()
}

func (m Model) footer() string {
	h := m.session.Host
	status := footerStyle.Render(fmt.Sprintf("%s gen %d %s  ", filepath.Base(h.Name()), h.Generation(), h.Phase()))
	if m.help.ShowAll {
		return status + "\n" + m.help.View(m.keys)
	}
	return status + m.help.View(m.keys)
}

// Run runs a started session in the terminal until the user quits or the
// host fails.
func Run(s *session.Session, dev *soft.Device, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(s, dev, cfg),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
