//go:build !(linux || darwin || freebsd)

package host

import (
	"fmt"

	"github.com/vovakirdan/helix/internal/module"
)

// ForeignSchema is the schema stamped on blocks owned by C-ABI modules.
const ForeignSchema uint16 = 0

// CABILoader is unavailable on this platform.
type CABILoader struct {
	path string
}

// NewCABILoader returns a loader whose Load always fails.
func NewCABILoader(path, shadowDir string) *CABILoader {
	return &CABILoader{path: path}
}

func (l *CABILoader) Name() string { return l.path }
func (l *CABILoader) Path() string { return l.path }

func (l *CABILoader) Load() (module.EntryPoints, error) {
	return module.EntryPoints{}, fmt.Errorf("%w: C shared libraries", ErrUnsupported)
}

func (l *CABILoader) Unload() error { return nil }
