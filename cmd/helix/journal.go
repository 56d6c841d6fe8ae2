package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/helix/internal/storage"
)

var (
	flagJournalLimit int
	flagJournalStats bool
)

var journalCmd = &cobra.Command{
	Use:   "journal [module]",
	Short: "Show load and reload events",
	Long: `Show the host's lifecycle journal: loads, reloads, failures and
stops, newest first. Without a module, every module is listed.

Examples:
  helix journal
  helix journal helix --limit 50
  helix journal --stats`,
	Args: cobra.MaximumNArgs(1),
	Run:  runJournal,
}

func init() {
	journalCmd.Flags().IntVar(&flagJournalLimit, "limit", 20, "Number of events to show")
	journalCmd.Flags().BoolVar(&flagJournalStats, "stats", false, "Show per-module totals instead")
}

func runJournal(cmd *cobra.Command, args []string) {
	var moduleID string
	if len(args) == 1 {
		moduleID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening database: %v", err)
	}
	defer store.Close()

	if flagJournalStats {
		printJournalStats(store)
		return
	}

	events, err := store.Events(moduleID, flagJournalLimit)
	if err != nil {
		fatal("%v", err)
	}
	if len(events) == 0 {
		fmt.Println("No events recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-20s  %-4s  %-8s  %s\n", "Date", "Module", "Gen", "Kind", "Detail")
	fmt.Printf("  %-16s  %-20s  %-4s  %-8s  %s\n", "----", "------", "---", "----", "------")
	for _, e := range events {
		fmt.Printf("  %-16s  %-20s  %-4d  %-8s  %s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.ModuleID, e.Generation, e.Kind, e.Detail)
	}
}

func printJournalStats(store *storage.Store) {
	stats, err := store.JournalStats()
	if err != nil {
		fatal("%v", err)
	}
	if len(stats) == 0 {
		fmt.Println("No events recorded yet.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-20s  %-6s  %-7s  %-8s  %-7s  %s\n", "Module", "Loads", "Reloads", "Failures", "MaxGen", "Last")
	fmt.Printf("  %-20s  %-6s  %-7s  %-8s  %-7s  %s\n", "------", "-----", "-------", "--------", "------", "----")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-20s  %-6d  %-7d  %-8d  %-7d  %s\n",
			s.ModuleID, s.Loads, s.Reloads, s.Failures, s.MaxGeneration, s.LastEvent.Format("2006-01-02 15:04"))
	}
}
