//go:build linux || darwin || freebsd

package host

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/vovakirdan/helix/internal/module"
	"github.com/vovakirdan/helix/internal/state"
)

// ForeignSchema is the schema stamped on blocks owned by C-ABI modules.
const ForeignSchema uint16 = 0

// CABILoader loads a C shared library exporting
//
//	int  Initialize(bool reinit, void *state);
//	void Update(KeyState keys, uint64_t dt_ms);
//	void Draw(void);
//	void Cleanup(void);
//
// The state pointer is the payload area of the block, so the library's own
// state struct persists across reloads. KeyState is passed by value and
// shares its layout with core.KeyState.
type CABILoader struct {
	path       string
	shadowDir  string
	generation int
	shadow     string
	handle     uintptr
}

// NewCABILoader returns a loader for the shared library at path.
func NewCABILoader(path, shadowDir string) *CABILoader {
	return &CABILoader{path: path, shadowDir: shadowDir}
}

func (l *CABILoader) Name() string { return l.path }
func (l *CABILoader) Path() string { return l.path }

func (l *CABILoader) Load() (module.EntryPoints, error) {
	l.generation++
	shadow, err := shadowCopy(l.path, l.shadowDir, l.generation)
	if err != nil {
		return module.EntryPoints{}, err
	}
	l.shadow = shadow

	lib, err := purego.Dlopen(shadow, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return module.EntryPoints{}, fmt.Errorf("dlopen: %w", err)
	}
	l.handle = lib

	var entry module.EntryPoints
	if sym, err := purego.Dlsym(lib, module.NameInitialize); err == nil {
		var fn func(reinit bool, st unsafe.Pointer) int32
		purego.RegisterFunc(&fn, sym)
		entry.Initialize = func(_ module.Env, reinit bool, st *state.Block) error {
			payload := st.Payload()
			if rc := fn(reinit, unsafe.Pointer(&payload[0])); rc != 0 {
				return fmt.Errorf("Initialize returned %d", rc)
			}
			st.MarkForeign(ForeignSchema)
			return nil
		}
	}
	if sym, err := purego.Dlsym(lib, module.NameUpdate); err == nil {
		entry.Update = bindUpdate(sym)
	}
	if sym, err := purego.Dlsym(lib, module.NameDraw); err == nil {
		var fn func()
		purego.RegisterFunc(&fn, sym)
		entry.Draw = fn
	}
	if sym, err := purego.Dlsym(lib, module.NameCleanup); err == nil {
		var fn func()
		purego.RegisterFunc(&fn, sym)
		entry.Cleanup = fn
	}
	return entry, nil
}

func (l *CABILoader) Unload() error {
	var err error
	if l.handle != 0 {
		if cerr := purego.Dlclose(l.handle); cerr != nil {
			err = fmt.Errorf("dlclose: %w", cerr)
		}
		l.handle = 0
	}
	if l.shadow != "" {
		if rerr := os.Remove(l.shadow); rerr != nil && err == nil {
			err = rerr
		}
		l.shadow = ""
	}
	return err
}
