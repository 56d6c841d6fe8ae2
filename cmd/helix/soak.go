package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/module"
	"github.com/vovakirdan/helix/internal/platform/headless"
	"github.com/vovakirdan/helix/internal/platform/session"
	"github.com/vovakirdan/helix/internal/render"
)

var (
	flagSoakFrames  int
	flagReloadEvery int
)

var soakCmd = &cobra.Command{
	Use:   "soak <module>",
	Short: "Run a module headless with forced reloads",
	Long: `Drive a registered module headless and reload it every N frames.
Each reload must leave the persisted state record byte-for-byte unchanged,
and the device must hold no handles once the run ends.

Go plugins cannot be unloaded, so soak only accepts registered modules.

Examples:
  helix soak helix
  helix soak helix --frames 10000 --reload-every 25`,
	Args: cobra.ExactArgs(1),
	Run:  runSoak,
}

func init() {
	addSessionFlags(soakCmd)
	soakCmd.Flags().IntVar(&flagSoakFrames, "frames", 2000, "Frames to run")
	soakCmd.Flags().IntVar(&flagReloadEvery, "reload-every", 50, "Force a reload every N frames")
}

func runSoak(cmd *cobra.Command, args []string) {
	if !module.Exists(args[0]) {
		fatal("unknown module %q", args[0])
	}
	if flagSoakFrames <= 0 || flagReloadEvery <= 0 {
		fatal("--frames and --reload-every must be positive")
	}

	logger := newLogger(os.Stderr)
	opts, _ := sessionOptions(args[0], logger)
	opts.Settle = 0

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	dev := render.NewRecorder()
	s, err := session.Open(opts, dev, cfg.Aspect())
	if err != nil {
		fatal("%v", err)
	}
	if err := s.Start(); err != nil {
		s.Close()
		fatal("%v", err)
	}

	bar := progressbar.Default(int64(flagSoakFrames), "soak "+args[0])
	stats, runErr := headless.Run(ctx, s, headless.Options{
		Frames:      flagSoakFrames,
		FrameMillis: cfg.FrameMillis(),
		ReloadEvery: flagReloadEvery,
		OnFrame:     func(int) { _ = bar.Add(1) },
	})
	_ = bar.Finish()
	generation := s.Host.Generation()
	if err := s.Close(); err != nil && runErr == nil {
		runErr = err
	}

	fmt.Printf("frames: %d  reloads: %d  generation: %d  live handles: %d  invalid ops: %d\n",
		stats.Frames, stats.Reloads, generation, dev.Live(), dev.Invalid())
	if runErr != nil {
		fatal("%v", runErr)
	}
	if dev.Live() != 0 || dev.Invalid() != 0 {
		fatal("device handles leaked or misused")
	}
	fmt.Println("ok")
}
