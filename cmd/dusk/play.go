package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/duskfall/internal/core"
	"github.com/vovakirdan/duskfall/internal/platform/tui"
	"github.com/vovakirdan/duskfall/internal/registry"
	"github.com/vovakirdan/duskfall/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <stage>",
	Short: "Play a stage",
	Long: `Start playing the specified stage.

Progress (stats, gold, inventory) is saved when you quit and restored
the next time you play the stage. Dying clears the save.

Controls:
  Left/Right, A/D, H/L  - Walk
  Space/Up/W/K          - Jump (again in the air to double jump)
  X/F/J                 - Attack
  E                     - Drink a health potion
  Enter                 - Start the stage
  P/Esc                 - Pause
  R                     - Restart (after game over)
  Q/Ctrl+C              - Save and quit

Difficulty options:
  easy   - More health, stronger potions
  normal - Default balance
  hard   - Less health, shorter invulnerability
  fixed  - Enemies never scale with your gold

Examples:
  dusk play meadow
  dusk play ravine --difficulty hard
  dusk play meadow --config ./my-dusk.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	stageID := args[0]

	if !registry.Exists(stageID) {
		return fmt.Errorf("unknown stage %q (run 'dusk list' to see available stages)", stageID)
	}

	game, err := registry.Create(stageID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - the stage still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("error running stage: %w", err)
	}
	return nil
}

// runtimeConfig builds the runtime config from the terminal and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}
