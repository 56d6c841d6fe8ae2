//go:build linux || darwin || freebsd

package host

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/vovakirdan/helix/internal/core"
)

func TestPackKeysLayout(t *testing.T) {
	var keys core.KeyState
	keys.A1X = 1
	keys.SetDir(core.DirRight, true)
	keys.SetButton(15, true)

	w := packKeys(keys)
	var raw [40]byte
	for i, word := range w {
		binary.NativeEndian.PutUint64(raw[i*8:], word)
	}
	if math.Float32frombits(binary.NativeEndian.Uint32(raw[0:])) != 1 {
		t.Error("a1x not at offset 0")
	}
	if raw[16+3] != 1 || raw[20+15] != 1 {
		t.Errorf("dirs/buttons not at offsets 16/20: % x", raw[16:36])
	}
}
