package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/helix/internal/core"
)

// KeyMap defines the key bindings of the terminal frontend.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Relaunch   key.Binding
	Reload     key.Binding
	Screenshot key.Binding
	Stats      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Relaunch, k.Reload, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Relaunch, k.Reload, k.Screenshot, k.Stats},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("up/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "orbit left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "orbit right"),
		),
		Relaunch: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "relaunch"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Stats: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "stats"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// relaunchButton is the primary action button of the virtual pad.
const relaunchButton = 0

// Action is a frontend command derived from a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionReload
	ActionScreenshot
	ActionStats
	ActionHelp
)

// Input turns key presses into held KeyState. Terminals report presses and
// auto-repeats but no releases, so a key counts as held for a fixed number
// of frames after its last press.
type Input struct {
	hold    int
	dirs    [4]int
	buttons [16]int
}

// NewInput creates an input that holds each press for hold frames.
func NewInput(hold int) *Input {
	return &Input{hold: max(hold, 1)}
}

// Press marks a direction held.
func (in *Input) Press(d core.Direction) {
	if d >= 0 && int(d) < len(in.dirs) {
		in.dirs[d] = in.hold
	}
}

// PressButton marks a button held.
func (in *Input) PressButton(i int) {
	if i >= 0 && i < len(in.buttons) {
		in.buttons[i] = in.hold
	}
}

// Next returns the KeyState of the coming frame and ages every press by one
// frame.
func (in *Input) Next() core.KeyState {
	var ks core.KeyState
	for d := range in.dirs {
		if in.dirs[d] > 0 {
			ks.SetDir(core.Direction(d), true)
			in.dirs[d]--
		}
	}
	for i := range in.buttons {
		if in.buttons[i] > 0 {
			ks.SetButton(i, true)
			in.buttons[i]--
		}
	}
	return ks
}

// Apply feeds a key message into in and returns the frontend action it
// triggers, if any.
func (k KeyMap) Apply(msg tea.KeyMsg, in *Input) Action {
	switch {
	case key.Matches(msg, k.Quit):
		return ActionQuit
	case key.Matches(msg, k.Reload):
		return ActionReload
	case key.Matches(msg, k.Screenshot):
		return ActionScreenshot
	case key.Matches(msg, k.Stats):
		return ActionStats
	case key.Matches(msg, k.Help):
		return ActionHelp
	case key.Matches(msg, k.Up):
		in.Press(core.DirUp)
	case key.Matches(msg, k.Down):
		in.Press(core.DirDown)
	case key.Matches(msg, k.Left):
		in.Press(core.DirLeft)
	case key.Matches(msg, k.Right):
		in.Press(core.DirRight)
	case key.Matches(msg, k.Relaunch):
		in.PressButton(relaunchButton)
	}
	return ActionNone
}
