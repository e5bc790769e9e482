package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duskfall/internal/core"
	"github.com/vovakirdan/duskfall/internal/games/dusk"
)

var (
	flagReplaySave   string
	flagReplayRender bool
	flagReplayWidth  int
	flagReplayHeight int
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Run an input script headless",
	Long: `Play back a YAML input script without a terminal UI and print the
final state. The simulation is deterministic, so a script always ends the
same way for the same config.

Script format:
  stage: meadow
  frames:
    - actions: [Confirm]
    - actions: [Right]
      repeat: 60
    - actions: [Right, Jump]

Action names: Left, Right, Jump, JumpHeld, Attack, UseItem, Confirm, Pause.
A repeated frame presses Jump on its first tick and holds it afterwards,
so it jumps once. Split frames to jump again.

Examples:
  dusk replay ./scripts/run.yaml
  dusk replay ./scripts/run.yaml --render
  dusk replay ./scripts/run.yaml --save ./slot.yaml --difficulty hard`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplaySave, "save", "", "Save file to load before the first frame")
	replayCmd.Flags().BoolVar(&flagReplayRender, "render", false, "Print the final screen")
	replayCmd.Flags().IntVar(&flagReplayWidth, "width", 80, "Screen width for --render")
	replayCmd.Flags().IntVar(&flagReplayHeight, "height", 24, "Screen height for --render")
}

func runReplay(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read script: %w", err)
	}
	script, err := dusk.ParseScript(data)
	if err != nil {
		return err
	}

	var save []byte
	if flagReplaySave != "" {
		if save, err = os.ReadFile(flagReplaySave); err != nil {
			return fmt.Errorf("cannot read save: %w", err)
		}
	}

	runtime := core.RuntimeConfig{
		ScreenW:  flagReplayWidth,
		ScreenH:  flagReplayHeight,
		TickRate: flagFPS,
	}
	res, err := dusk.Replay(script, runtime, save)
	if err != nil {
		return err
	}

	snap := res.Game.Session().Snapshot()
	st := snap.Player.Stats

	alive := 0
	for _, e := range snap.Enemies {
		if !e.Dead {
			alive++
		}
	}

	fmt.Printf("Stage:    %s\n", res.Game.Title())
	fmt.Printf("Ticks:    %d of %d (%s)\n", res.Ticks, script.Ticks(), snap.Now)
	fmt.Printf("State:    %s\n", snap.State)
	fmt.Printf("Position: %.1f, %.1f\n", snap.Player.Pos.X, snap.Player.Pos.Y)
	fmt.Printf("Health:   %d/%d\n", st.Health, st.MaxHealth)
	fmt.Printf("Level:    %d (%d/%d XP)\n", st.Level, st.Experience, st.ExperienceToNextLevel)
	fmt.Printf("Gold:     %d\n", snap.Gold)
	fmt.Printf("Enemies:  %d alive\n", alive)
	for _, it := range snap.Inventory {
		fmt.Printf("Item:     %s x%d\n", it.Name, it.Quantity)
	}

	if len(res.Notices) > 0 {
		fmt.Println()
		for _, n := range res.Notices {
			fmt.Printf("  %s\n", n)
		}
	}

	if flagReplayRender {
		screen := core.NewScreen(flagReplayWidth, flagReplayHeight)
		res.Game.Render(screen)
		fmt.Println()
		fmt.Println(screen.String())
	}
	return nil
}
