package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/helix/internal/module"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered modules",
	Long:  `Shows the modules compiled into this binary. Shared libraries are run by path instead.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	mods := module.List()

	if len(mods) == 0 {
		fmt.Println("No modules available.")
		return
	}

	fmt.Println("Available modules:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, m := range mods {
		maxIDLen = max(maxIDLen, len(m.ID))
		maxTitleLen = max(maxTitleLen, len(m.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Schemas")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-------")

	for _, m := range mods {
		schemas := make([]string, len(m.Schemas))
		for i, s := range m.Schemas {
			schemas[i] = fmt.Sprint(s)
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, m.ID, maxTitleLen, m.Title, strings.Join(schemas, ","))
	}

	fmt.Println()
	fmt.Println("Run 'helix run <id>' to start a module.")
}
