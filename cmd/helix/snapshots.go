package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/helix/internal/state"
	"github.com/vovakirdan/helix/internal/storage"
)

var (
	flagSnapLimit int
	flagSnapClear bool
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots <module>",
	Short: "List saved state snapshots",
	Long: `List the state snapshots saved by 'helix run --save' for a module,
newest first. Shared libraries are keyed by the path they were run with.

Examples:
  helix snapshots helix
  helix snapshots helix --limit 3
  helix snapshots helix --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runSnapshots,
}

func init() {
	snapshotsCmd.Flags().IntVar(&flagSnapLimit, "limit", 10, "Number of snapshots to show (0 = all)")
	snapshotsCmd.Flags().BoolVar(&flagSnapClear, "clear", false, "Delete all snapshots of the module")
}

func runSnapshots(cmd *cobra.Command, args []string) {
	moduleID := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening database: %v", err)
	}
	defer store.Close()

	if flagSnapClear {
		if err := store.DeleteSnapshots(moduleID); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("Deleted snapshots of %s.\n", moduleID)
		return
	}

	snaps, err := store.Snapshots(moduleID, flagSnapLimit)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Snapshots - %s\n", moduleID)
	fmt.Println()

	if len(snaps) == 0 {
		fmt.Println("No snapshots saved yet.")
		fmt.Println()
		fmt.Printf("Run 'helix run %s --save' to save one.\n", moduleID)
		return
	}

	fmt.Printf("  %-6s  %-6s  %-8s  %-8s  %s\n", "ID", "Schema", "Kind", "Bytes", "Date")
	fmt.Printf("  %-6s  %-6s  %-8s  %-8s  %s\n", "--", "------", "----", "-----", "----")

	for _, snap := range snaps {
		kind := "record"
		if snap.Flags&state.FlagForeign != 0 {
			kind = "foreign"
		}
		dateStr := snap.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-6d  %-6d  %-8s  %-8d  %s\n", snap.ID, snap.Schema, kind, len(snap.Payload), dateStr)
	}
}
