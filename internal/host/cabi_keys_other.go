//go:build (linux || darwin || freebsd) && !amd64

package host

import (
	"github.com/ebitengine/purego"

	"github.com/vovakirdan/helix/internal/core"
)

// bindUpdate wraps a C Update(KeyState, uint64_t). AAPCS64 and the LoongArch
// ABI pass a struct of this size by reference to a caller-owned copy.
func bindUpdate(sym uintptr) func(core.KeyState, uint64) {
	var fn func(keys *core.KeyState, dtMillis uint64)
	purego.RegisterFunc(&fn, sym)
	return func(keys core.KeyState, dtMillis uint64) {
		fn(&keys, dtMillis)
	}
}
