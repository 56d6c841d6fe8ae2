//go:build linux || darwin || freebsd

package host

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/vovakirdan/helix/internal/core"
)

// keyWords is a KeyState copied into the eightbytes of a stack argument.
type keyWords [5]uint64

// keyWords must hold a whole KeyState.
var _ [unsafe.Sizeof(keyWords{}) - unsafe.Sizeof(core.KeyState{})]byte

func packKeys(k core.KeyState) keyWords {
	var w keyWords
	*(*core.KeyState)(unsafe.Pointer(&w)) = k
	return w
}

// bindUpdate wraps a C Update(KeyState, uint64_t). A KeyState is larger than
// two eightbytes, so the System V ABI passes it in memory on the stack and
// dt_ms takes the first integer register. The five remaining integer
// registers are filled so the struct words land in the stack arguments.
func bindUpdate(sym uintptr) func(core.KeyState, uint64) {
	var fn func(dtMillis, r2, r3, r4, r5, r6, w0, w1, w2, w3, w4 uint64)
	purego.RegisterFunc(&fn, sym)
	return func(keys core.KeyState, dtMillis uint64) {
		w := packKeys(keys)
		fn(dtMillis, 0, 0, 0, 0, 0, w[0], w[1], w[2], w[3], w[4])
	}
}
