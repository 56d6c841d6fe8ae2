package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/helix/internal/config"
	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/platform/headless"
	"github.com/vovakirdan/helix/internal/platform/session"
	"github.com/vovakirdan/helix/internal/platform/tui"
	"github.com/vovakirdan/helix/internal/platform/window"
	"github.com/vovakirdan/helix/internal/render"
	"github.com/vovakirdan/helix/internal/render/soft"
	"github.com/vovakirdan/helix/internal/storage"
)

var (
	flagFrontend  string
	flagFrames    int
	flagConfig    string
	flagAssets    string
	flagStateSize int
	flagSettle    int
	flagSave      bool
	flagResume    bool
	flagABI       string
	flagGravity   string
	flagShadowDir string
)

var runCmd = &cobra.Command{
	Use:   "run <module>",
	Short: "Run a module",
	Long: `Load a module and drive it until quit. <module> is a registered id
(see 'helix list') or a path to a shared library.

Registered modules reload when their config file changes. Shared
libraries reload when the library file is rebuilt.

Frontends:
  term      - Render in the terminal (default)
  window    - OpenGL window (needs a cgo build)
  headless  - No output, fixed frame time; use --frames

Controls (term):
  Left/Right, A/D  - Orbit the camera
  Space            - Relaunch the ball
  R                - Reload now
  Ctrl+S           - Screenshot
  Tab              - Rasterizer stats
  ?                - Help
  Q/Ctrl+C         - Quit

Examples:
  helix run helix
  helix run helix --gravity moon --save
  helix run helix --resume
  helix run ./helixmod.so --frontend window
  helix run ./libhelix.so --abi c
  helix run helix --frontend headless --frames 600`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	addSessionFlags(runCmd)
	runCmd.Flags().StringVar(&flagFrontend, "frontend", "term", "Frontend: term, window, headless")
	runCmd.Flags().IntVar(&flagFrames, "frames", 0, "Stop after this many frames (headless; 0 = until interrupted)")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Save the final state as a snapshot")
	runCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume from the latest compatible snapshot")
}

// addSessionFlags registers the flags shared by run and soak.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a module config (YAML or TOML)")
	cmd.Flags().StringVar(&flagAssets, "assets", ".", "Base directory for shader sources")
	cmd.Flags().IntVar(&flagStateSize, "state-size", 0, "Persisted state block size in bytes (0 = from config)")
	cmd.Flags().IntVar(&flagSettle, "settle", -1, "Stable polls before a change reloads (-1 = from config)")
	cmd.Flags().StringVar(&flagABI, "abi", "", "Shared library ABI: go or c (default: go for paths)")
	cmd.Flags().StringVar(&flagGravity, "gravity", "earth", "Gravity preset: earth, moon, heavy")
	cmd.Flags().StringVar(&flagShadowDir, "shadow-dir", "", "Directory for shadow copies of shared libraries")
}

// sessionOptions builds session options from the flags and the config.
func sessionOptions(mod string, logger *log.Logger) (session.Options, config.HelixConfig) {
	preset, err := config.ParseGravityPreset(flagGravity)
	if err != nil {
		fatal("%v", err)
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatal("%v", err)
	}

	opts := session.Options{
		Module:     mod,
		ABI:        flagABI,
		ConfigPath: flagConfig,
		AssetDir:   flagAssets,
		ShadowDir:  flagShadowDir,
		StateSize:  cfg.Host.StateSize,
		Settle:     cfg.Host.Settle,
		Gravity:    preset,
		Logger:     logger,
	}
	if flagStateSize > 0 {
		opts.StateSize = flagStateSize
	}
	if flagSettle >= 0 {
		opts.Settle = flagSettle
	}
	if flagFPS <= 0 {
		flagFPS = cfg.Host.FPS
	}
	return opts, cfg
}

// openStore opens the database. Without save or resume a failure only
// disables the journal.
func openStore(required bool, logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		if required {
			fatal("%v", err)
		}
		logger.Warn("could not open database, journal disabled", "err", err)
		return nil
	}
	return store
}

func runRun(cmd *cobra.Command, args []string) {
	logger, closeLog := frontendLogger()
	defer closeLog()

	opts, _ := sessionOptions(args[0], logger)
	opts.Save = flagSave
	opts.Resume = flagResume
	opts.Store = openStore(flagSave || flagResume, logger)
	if opts.Store != nil {
		defer opts.Store.Close()
	}

	var err error
	switch flagFrontend {
	case "term":
		err = runTerm(opts)
	case "window":
		cfg := core.RuntimeConfig{ScreenW: 1024, ScreenH: 768, TickRate: flagFPS, CellAspect: 1}
		err = window.Run(opts, cfg, "helix - "+filepath.Base(args[0]))
	case "headless":
		err = runHeadless(opts)
	default:
		fatal("unknown frontend %q (want term, window or headless)", flagFrontend)
	}
	if err != nil {
		fatal("%v", err)
	}
}

// frontendLogger logs to a file for the terminal frontend, which owns the
// screen, and to stderr otherwise.
func frontendLogger() (*log.Logger, func()) {
	if flagFrontend != "term" {
		return newLogger(os.Stderr), func() {}
	}
	dir := config.HomeDir()
	if dir == "" {
		return newLogger(os.Stderr), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(os.Stderr), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "helix.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return newLogger(os.Stderr), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

func runTerm(opts session.Options) error {
	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.TickRate = flagFPS

	dev := soft.New(tui.NewScreen(cfg))
	s, err := session.Open(opts, dev, tui.SceneConfig(cfg).Aspect())
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		s.Close()
		return err
	}
	runErr := tui.Run(s, dev, cfg)
	if err := s.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func runHeadless(opts session.Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	dev := render.NewRecorder()
	s, err := session.Open(opts, dev, cfg.Aspect())
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		s.Close()
		return err
	}

	stats, runErr := headless.Run(ctx, s, headless.Options{
		Frames:      flagFrames,
		FrameMillis: cfg.FrameMillis(),
	})
	if err := s.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	fmt.Printf("frames: %d  generation: %d  triangles/frame: %d\n", stats.Frames, s.Host.Generation(), dev.Triangles())
	if live := dev.Live(); live != 0 {
		fmt.Printf("warning: %d device handles leaked\n", live)
	}
	return runErr
}
