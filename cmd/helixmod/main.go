// helixmod is the helix module built as a Go plugin:
//
//	go build -buildmode=plugin -ldflags="-pluginpath=helixmod.$(date +%s%N)" -o helixmod.so ./cmd/helixmod
//	helix run ./helixmod.so
//
// Rebuilding the plugin while helix runs swaps in the new code. The Go
// runtime loads a pluginpath only once per process, so every rebuild needs a
// fresh -pluginpath; helix reports ErrPluginPathReused otherwise. Only this
// package may differ between builds; every package it shares with the host
// must be identical, so changes belong here or in the config file.
package main

import (
	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/games/helix"
	"github.com/vovakirdan/helix/internal/module"
	"github.com/vovakirdan/helix/internal/state"
)

// game is the instance owned by this plugin generation.
var game = helix.New()

func Initialize(env module.Env, reinit bool, st *state.Block) error {
	return game.Initialize(env, reinit, st)
}

func Update(keys core.KeyState, dtMillis uint64) {
	game.Update(keys, dtMillis)
}

func Draw() {
	game.Draw()
}

func Cleanup() {
	game.Cleanup()
}

func main() {}
