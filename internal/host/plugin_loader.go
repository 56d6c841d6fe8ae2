//go:build (linux || darwin || freebsd) && cgo

package host

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"plugin"
	"strings"

	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/module"
	"github.com/vovakirdan/helix/internal/state"
)

// PluginLoader loads a module built with -buildmode=plugin. The plugin
// exports package-level Initialize, Update, Draw and Cleanup functions.
//
// Go cannot unmap a plugin, and the runtime refuses a second plugin with the
// pluginpath of one already loaded. Every build is therefore kept open and
// keyed by its content: loading an unchanged file again rebinds the resident
// build, and a rebuilt file must be linked with a new -pluginpath.
// Shared packages are resolved against the host binary; only code in the
// plugin's main package may differ between builds.
type PluginLoader struct {
	path       string
	shadowDir  string
	generation int
	shadow     string
	builds     map[[sha256.Size]byte]*plugin.Plugin
}

// NewPluginLoader returns a loader for the plugin at path. Shadow copies are
// placed in shadowDir, or the system temp dir when empty.
func NewPluginLoader(path, shadowDir string) *PluginLoader {
	return &PluginLoader{
		path:      path,
		shadowDir: shadowDir,
		builds:    make(map[[sha256.Size]byte]*plugin.Plugin),
	}
}

func (l *PluginLoader) Name() string { return l.path }
func (l *PluginLoader) Path() string { return l.path }

func (l *PluginLoader) Load() (module.EntryPoints, error) {
	l.generation++
	sum, err := digest(l.path)
	if err != nil {
		return module.EntryPoints{}, err
	}
	if p, ok := l.builds[sum]; ok {
		return bindPlugin(p)
	}

	shadow, err := shadowCopy(l.path, l.shadowDir, l.generation)
	if err != nil {
		return module.EntryPoints{}, err
	}
	p, err := plugin.Open(shadow)
	if err != nil {
		_ = os.Remove(shadow)
		return module.EntryPoints{}, pluginOpenError(err)
	}
	l.shadow = shadow
	l.builds[sum] = p
	return bindPlugin(p)
}

// pluginOpenError names the pluginpath clash, the usual cause of a failed
// reload after a rebuild.
func pluginOpenError(err error) error {
	if strings.Contains(err.Error(), "plugin already loaded") {
		return fmt.Errorf("%w (build with -ldflags=-pluginpath=<unique>): %v", ErrPluginPathReused, err)
	}
	return fmt.Errorf("open plugin: %w", err)
}

func digest(path string) ([sha256.Size]byte, error) {
	var sum [sha256.Size]byte
	f, err := os.Open(path)
	if err != nil {
		return sum, fmt.Errorf("host: open module: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return sum, fmt.Errorf("host: read module: %w", err)
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

func bindPlugin(p *plugin.Plugin) (module.EntryPoints, error) {
	var entry module.EntryPoints
	for _, name := range module.Names {
		sym, err := p.Lookup(name)
		if err != nil {
			continue // reported by EntryPoints.Missing
		}
		if err := bindSymbol(&entry, name, sym); err != nil {
			return module.EntryPoints{}, err
		}
	}
	return entry, nil
}

func bindSymbol(entry *module.EntryPoints, name string, sym plugin.Symbol) error {
	ok := false
	switch name {
	case module.NameInitialize:
		entry.Initialize, ok = sym.(func(module.Env, bool, *state.Block) error)
	case module.NameUpdate:
		entry.Update, ok = sym.(func(core.KeyState, uint64))
	case module.NameDraw:
		entry.Draw, ok = sym.(func())
	case module.NameCleanup:
		entry.Cleanup, ok = sym.(func())
	}
	if !ok {
		return fmt.Errorf("plugin symbol %s has type %T", name, sym)
	}
	return nil
}

// Unload removes the shadow copy of the newest build. The build itself stays
// mapped for the life of the process.
func (l *PluginLoader) Unload() error {
	if l.shadow == "" {
		return nil
	}
	err := os.Remove(l.shadow)
	l.shadow = ""
	return err
}
