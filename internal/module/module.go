// Package module defines the contract between the host and a hot-reloadable
// game module, and a global registry for modules compiled into the binary.
// Modules register themselves in init() functions.
package module

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/helix/internal/config"
	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/render"
	"github.com/vovakirdan/helix/internal/state"
)

// Env is everything a module instance may use besides the state block. It
// replaces module-level globals: each instance receives its own.
type Env struct {
	Device     render.Device
	Logger     *log.Logger
	ConfigPath string  // tuning file, "" for the built-in search order
	AssetDir   string  // base directory for shader sources
	Aspect     float32 // visible width/height of the frontend surface
	Gravity    config.GravityPreset
}

// Module is a game-logic module driven by the host once per frame.
type Module interface {
	// ID returns a unique identifier used on the command line and in storage.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Initialize prepares the instance. On a cold start (reinit false) it
	// writes default simulation state into st. On reload it must leave the
	// simulation state untouched and only rebuild device resources.
	Initialize(env Env, reinit bool, st *state.Block) error

	// Update advances the simulation exactly once and commits st.
	Update(keys core.KeyState, dtMillis uint64)

	// Draw issues draw calls. It never mutates st.
	Draw()

	// Cleanup releases every device resource the instance created.
	Cleanup()
}

// Versioned is implemented by modules that report the state schemas they can
// resume from.
type Versioned interface {
	Schemas() []uint16
}

// Entry point names, shared by every loader.
const (
	NameInitialize = "Initialize"
	NameUpdate     = "Update"
	NameDraw       = "Draw"
	NameCleanup    = "Cleanup"
)

// Names lists the entry points in resolution order.
var Names = []string{NameInitialize, NameUpdate, NameDraw, NameCleanup}

// Entry point signatures.
type (
	InitializeFunc func(env Env, reinit bool, st *state.Block) error
	UpdateFunc     func(keys core.KeyState, dtMillis uint64)
	DrawFunc       func()
	CleanupFunc    func()
)

// EntryPoints are the four functions the host drives. Loaders resolve them
// from a registered Module, a Go plugin or a C shared library.
type EntryPoints struct {
	Initialize InitializeFunc
	Update     UpdateFunc
	Draw       DrawFunc
	Cleanup    CleanupFunc
}

// Bind returns the entry points of an in-process module.
func Bind(m Module) EntryPoints {
	return EntryPoints{
		Initialize: m.Initialize,
		Update:     m.Update,
		Draw:       m.Draw,
		Cleanup:    m.Cleanup,
	}
}

// Missing returns the names of unresolved entry points.
func (e EntryPoints) Missing() []string {
	var missing []string
	if e.Initialize == nil {
		missing = append(missing, NameInitialize)
	}
	if e.Update == nil {
		missing = append(missing, NameUpdate)
	}
	if e.Draw == nil {
		missing = append(missing, NameDraw)
	}
	if e.Cleanup == nil {
		missing = append(missing, NameCleanup)
	}
	return missing
}
