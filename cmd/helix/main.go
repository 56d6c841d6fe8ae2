// helix hosts hot-reloadable 3D modules and inspects their meshes, state
// snapshots and reload journal.
//
// Usage:
//
//	helix list                 - List registered modules
//	helix run <module>         - Run a module (registered id or .so path)
//	helix soak <module>        - Run headless, forcing reloads
//	helix mesh <shape>         - Print a procedural mesh as OBJ
//	helix snapshots <module>   - List saved state snapshots
//	helix journal [module]     - Show the reload journal
//	helix config               - Print the effective configuration
//	helix serve                - Start the SSH server
//
// Global flags:
//
//	--fps <rate>         - Frame rate (default: from config)
//	--db <path>          - Database path (default: ~/.helix/helix.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import modules to register them
	_ "github.com/vovakirdan/helix/internal/games/helix"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "helix",
	Short: "Helix - hot-reloadable 3D module host",
	Long: `Helix loads a game module and drives it every frame through
Initialize, Update, Draw and Cleanup. Editing the module's backing file
swaps in a fresh instance while the simulation state carries over.

Available commands:
  list       - Show registered modules
  run        - Run a module in the terminal, a window or headless
  soak       - Headless run with forced reloads
  mesh       - Print a procedural mesh
  snapshots  - List saved state snapshots
  journal    - Show load and reload events
  config     - Print the effective configuration
  serve      - Start SSH server for remote sessions

Examples:
  helix list
  helix run helix
  helix run ./helixmod.so --frontend window
  helix soak helix --frames 5000 --reload-every 50
  helix mesh sphere --check`,
}

func init() {
	// The window frontend drives GLFW, which must stay on the main thread
	runtime.LockOSThread()
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.helix/helix.db", "Path to snapshot and journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(soakCmd)
	rootCmd.AddCommand(meshCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "helix",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
