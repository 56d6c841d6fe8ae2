// Package host drives a hot-reloadable module: it resolves the module's entry
// points through a Loader, owns the persisted-state block, and swaps the
// module in place when its backing file changes.
package host

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/module"
	"github.com/vovakirdan/helix/internal/state"
)

var (
	// ErrMissingEntryPoint is returned when a module lacks one of the four
	// entry points.
	ErrMissingEntryPoint = errors.New("host: missing entry point")
	// ErrNotRunning is returned when an operation needs a running module.
	ErrNotRunning = errors.New("host: module not running")
	// ErrUnsupported is returned by loaders unavailable on this platform.
	ErrUnsupported = errors.New("host: loader not supported on this platform")
	// ErrPluginPathReused is returned when a rebuilt Go plugin carries the
	// pluginpath of a build that is already loaded.
	ErrPluginPathReused = errors.New("host: plugin rebuilt without a new -pluginpath")
)

// Phase is the lifecycle state of the hosted module.
type Phase int

const (
	Unloaded Phase = iota
	Loaded
	Running
)

func (p Phase) String() string {
	switch p {
	case Loaded:
		return "loaded"
	case Running:
		return "running"
	default:
		return "unloaded"
	}
}

// Loader resolves a module's entry points from some backing artifact.
type Loader interface {
	// Name identifies the module for logs and the journal.
	Name() string
	// Path is the file whose changes trigger a reload, or "" for none.
	Path() string
	// Load resolves the four entry points of a fresh instance.
	Load() (module.EntryPoints, error)
	// Unload releases the instance returned by the last Load.
	Unload() error
}

// Journal records lifecycle events.
type Journal interface {
	Record(ev Event) error
}

// Event kinds.
const (
	EventLoad    = "load"
	EventReload  = "reload"
	EventFailure = "failure"
	EventStop    = "stop"
)

// Event is one lifecycle transition of a host.
type Event struct {
	Module     string
	Generation int
	Kind       string
	Detail     string
}

// Options configure a Host.
type Options struct {
	Env     module.Env
	Block   *state.Block
	Logger  *log.Logger
	Journal Journal
	Settle  int
}

// Host drives one module. It is not safe for concurrent use: a single control
// goroutine owns it.
type Host struct {
	loader  Loader
	env     module.Env
	block   *state.Block
	logger  *log.Logger
	journal Journal
	watcher *Watcher

	phase      Phase
	entry      module.EntryPoints
	generation int
}

// New creates a host in the Unloaded phase.
func New(loader Loader, opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Host{
		loader:  loader,
		env:     opts.Env,
		block:   opts.Block,
		logger:  logger,
		journal: opts.Journal,
	}
	if h.env.Logger == nil {
		h.env.Logger = logger
	}
	if path := loader.Path(); path != "" {
		h.watcher = NewWatcher(path, opts.Settle)
	}
	return h
}

// Phase returns the current lifecycle phase.
func (h *Host) Phase() Phase { return h.phase }

// Generation returns the number of successful loads.
func (h *Host) Generation() int { return h.generation }

// Block returns the persisted-state block.
func (h *Host) Block() *state.Block { return h.block }

// Name returns the loader's module name.
func (h *Host) Name() string { return h.loader.Name() }

// SetAspect changes the aspect ratio handed to the next Initialize. Callers
// Reload to apply it to a running module.
func (h *Host) SetAspect(aspect float32) { h.env.Aspect = aspect }

// Start loads the module and initializes it. A block that already holds a
// record is resumed rather than reset.
func (h *Host) Start() error {
	if h.phase != Unloaded {
		return fmt.Errorf("host: start while %s", h.phase)
	}
	if err := h.load(); err != nil {
		return h.fail(err)
	}
	resume := h.block.HasRecord()
	if err := h.initialize(resume); err != nil {
		return h.fail(err)
	}
	h.record(EventLoad, fmt.Sprintf("resume=%t", resume))
	h.logger.Info("module started", "module", h.loader.Name(), "generation", h.generation, "resume", resume)
	return nil
}

// Frame polls the watcher once, reloads if the backing file changed, then
// updates and draws the module.
func (h *Host) Frame(keys core.KeyState, dtMillis uint64) error {
	if h.phase != Running {
		return ErrNotRunning
	}
	if h.watcher != nil && h.watcher.Poll() {
		h.logger.Info("change detected", "path", h.watcher.Path())
		if err := h.Reload(); err != nil {
			return err
		}
	}
	h.entry.Update(keys, dtMillis)
	h.entry.Draw()
	return nil
}

// Reload replaces the running module with a fresh instance, keeping the
// block. There is no rollback: on failure the host is left Unloaded or
// Loaded and the error is returned.
func (h *Host) Reload() error {
	if h.phase != Running {
		return ErrNotRunning
	}
	h.entry.Cleanup()
	h.entry = module.EntryPoints{}
	h.phase = Unloaded
	if err := h.loader.Unload(); err != nil {
		return h.fail(fmt.Errorf("host: unload: %w", err))
	}

	if err := h.load(); err != nil {
		return h.fail(err)
	}
	if err := h.initialize(true); err != nil {
		return h.fail(err)
	}
	if h.watcher != nil {
		h.watcher.Reset()
	}
	h.record(EventReload, "")
	h.logger.Info("module reloaded", "module", h.loader.Name(), "generation", h.generation)
	return nil
}

// Stop cleans up and unloads the module.
func (h *Host) Stop() error {
	if h.phase == Unloaded {
		return nil
	}
	if h.phase == Running {
		h.entry.Cleanup()
	}
	h.entry = module.EntryPoints{}
	h.phase = Unloaded
	if err := h.loader.Unload(); err != nil {
		return fmt.Errorf("host: unload: %w", err)
	}
	h.record(EventStop, "")
	h.logger.Info("module stopped", "module", h.loader.Name(), "generation", h.generation)
	return nil
}

func (h *Host) load() error {
	entry, err := h.loader.Load()
	if err != nil {
		return fmt.Errorf("host: load %s: %w", h.loader.Name(), err)
	}
	if missing := entry.Missing(); len(missing) > 0 {
		_ = h.loader.Unload()
		return fmt.Errorf("%w: %s lacks %s", ErrMissingEntryPoint, h.loader.Name(), strings.Join(missing, ", "))
	}
	h.entry = entry
	h.phase = Loaded
	return nil
}

func (h *Host) initialize(reinit bool) error {
	if err := h.entry.Initialize(h.env, reinit, h.block); err != nil {
		return fmt.Errorf("host: initialize %s: %w", h.loader.Name(), err)
	}
	h.generation++
	h.phase = Running
	return nil
}

func (h *Host) fail(err error) error {
	h.record(EventFailure, err.Error())
	h.logger.Error("module failure", "module", h.loader.Name(), "phase", h.phase, "err", err)
	return err
}

func (h *Host) record(kind, detail string) {
	if h.journal == nil {
		return
	}
	ev := Event{Module: h.loader.Name(), Generation: h.generation, Kind: kind, Detail: detail}
	if err := h.journal.Record(ev); err != nil {
		h.logger.Warn("journal write failed", "kind", kind, "err", err)
	}
}
