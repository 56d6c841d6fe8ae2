//go:build !((linux || darwin || freebsd) && cgo)

package host

import (
	"fmt"

	"github.com/vovakirdan/helix/internal/module"
)

// PluginLoader is unavailable without cgo on this platform.
type PluginLoader struct {
	path string
}

// NewPluginLoader returns a loader whose Load always fails.
func NewPluginLoader(path, shadowDir string) *PluginLoader {
	return &PluginLoader{path: path}
}

func (l *PluginLoader) Name() string { return l.path }
func (l *PluginLoader) Path() string { return l.path }

func (l *PluginLoader) Load() (module.EntryPoints, error) {
	return module.EntryPoints{}, fmt.Errorf("%w: go plugins", ErrUnsupported)
}

func (l *PluginLoader) Unload() error { return nil }
