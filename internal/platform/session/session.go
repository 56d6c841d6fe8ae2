// Package session wires a host to its state block, loader and storage. Every
// frontend opens one Session per running module.
package session

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/helix/internal/config"
	"github.com/vovakirdan/helix/internal/host"
	"github.com/vovakirdan/helix/internal/module"
	"github.com/vovakirdan/helix/internal/render"
	"github.com/vovakirdan/helix/internal/state"
	"github.com/vovakirdan/helix/internal/storage"
)

// ABI values for Options.ABI.
const (
	ABIAuto = ""
	ABIGo   = "go"
	ABIC    = "c"
)

// Options describe how to load and persist a module.
type Options struct {
	// Module is a registered id or a path to a shared library.
	Module     string
	ABI        string
	ConfigPath string
	AssetDir   string
	ShadowDir  string
	StateSize  int
	Settle     int
	Gravity    config.GravityPreset

	// Store, when set, receives the journal and snapshots.
	Store  *storage.Store
	Save   bool
	Resume bool

	Logger *log.Logger
}

// Session owns a host and the block it drives.
type Session struct {
	Host   *host.Host
	opts   Options
	block  *state.Block
	logger *log.Logger
	closed bool
}

// NewLoader picks the loader for opts.Module.
func NewLoader(opts Options) (host.Loader, error) {
	if module.Exists(opts.Module) && opts.ABI == ABIAuto {
		return host.NewRegistryLoader(opts.Module, config.Resolve(opts.ConfigPath)), nil
	}
	if !strings.ContainsRune(opts.Module, filepath.Separator) && filepath.Ext(opts.Module) == "" {
		return nil, fmt.Errorf("session: unknown module %q", opts.Module)
	}
	switch opts.ABI {
	case ABIAuto, ABIGo:
		return host.NewPluginLoader(opts.Module, opts.ShadowDir), nil
	case ABIC:
		return host.NewCABILoader(opts.Module, opts.ShadowDir), nil
	default:
		return nil, fmt.Errorf("session: unknown abi %q (want %s or %s)", opts.ABI, ABIGo, ABIC)
	}
}

// Open allocates the block, restores a snapshot when asked and creates the
// host. The module is not started.
func Open(opts Options, dev render.Device, aspect float32) (*Session, error) {
	loader, err := NewLoader(opts)
	if err != nil {
		return nil, err
	}
	return OpenWith(loader, opts, dev, aspect)
}

// OpenWith is Open with an explicit loader.
func OpenWith(loader host.Loader, opts Options, dev render.Device, aspect float32) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	size := opts.StateSize
	if size <= 0 {
		size = state.DefaultSize
	}
	block, err := state.New(size)
	if err != nil {
		return nil, err
	}

	s := &Session{opts: opts, block: block, logger: logger}
	if opts.Resume && opts.Store != nil {
		if err := s.restore(loader.Name()); err != nil {
			block.Close()
			return nil, err
		}
	}

	hopts := host.Options{
		Env: module.Env{
			Device:     dev,
			Logger:     logger,
			ConfigPath: opts.ConfigPath,
			AssetDir:   opts.AssetDir,
			Aspect:     aspect,
			Gravity:    opts.Gravity,
		},
		Block:  block,
		Logger: logger,
		Settle: opts.Settle,
	}
	if opts.Store != nil {
		hopts.Journal = opts.Store
	}
	s.Host = host.New(loader, hopts)
	return s, nil
}

func (s *Session) restore(name string) error {
	var schemas []uint16
	switch s.opts.ABI {
	case ABIC:
		schemas = []uint16{host.ForeignSchema}
	default:
		schemas = module.Schemas(name)
	}
	snap, err := s.opts.Store.LatestSnapshot(name, schemas...)
	if err != nil {
		return err
	}
	if snap == nil {
		s.logger.Warn("no snapshot to resume", "module", name)
		return nil
	}
	if err := snap.Restore(s.block); err != nil {
		return err
	}
	s.logger.Info("snapshot restored", "module", name, "id", snap.ID, "schema", snap.Schema)
	return nil
}

// Block returns the session's state block.
func (s *Session) Block() *state.Block { return s.block }

// Start starts the host.
func (s *Session) Start() error {
	return s.Host.Start()
}

// Close stops the host, saves a snapshot when asked and releases the block.
// It is safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.Host.Stop(); err != nil {
		errs = append(errs, err)
	}
	if s.opts.Save && s.opts.Store != nil && s.block.HasRecord() {
		id, err := s.opts.Store.SaveSnapshot(s.Host.Name(), s.block)
		if err != nil {
			errs = append(errs, err)
		} else {
			s.logger.Info("snapshot saved", "module", s.Host.Name(), "id", id)
		}
	}
	if err := s.block.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
