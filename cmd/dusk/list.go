package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duskfall/internal/games/dusk"
	"github.com/vovakirdan/duskfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available stages",
	Long:  `Shows every registered stage, built in or loaded with --stages.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	stages := registry.List()

	if len(stages) == 0 {
		fmt.Println("No stages available.")
		return
	}

	fmt.Println("Available stages:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen, maxAuthorLen := 2, 5, 6 // Header widths
	rows := make([][4]string, 0, len(stages))
	for _, g := range stages {
		author, file := "-", "-"
		if game, err := registry.Create(g.ID); err == nil {
			if d, ok := game.(*dusk.Game); ok {
				st := d.Stage()
				if a := st.Metadata["author"]; a != "" {
					author = a
				}
				if st.FilePath != "" {
					file = st.FilePath
				}
			}
		}
		rows = append(rows, [4]string{g.ID, g.Title, author, file})
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
		maxAuthorLen = max(maxAuthorLen, len(author))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", maxAuthorLen, "Author", "File")
	fmt.Printf("  %-*s  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", maxAuthorLen, "------", "----")

	// Print stages
	for _, r := range rows {
		fmt.Printf("  %-*s  %-*s  %-*s  %s\n", maxIDLen, r[0], maxTitleLen, r[1], maxAuthorLen, r[2], r[3])
	}

	fmt.Println()
	fmt.Println("Run 'dusk play <id>' to play a stage.")
}
