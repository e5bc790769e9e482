// dusk is a side-scrolling action platformer for the terminal.
//
// Usage:
//
//	dusk list                - List available stages
//	dusk play <stage>        - Play a stage
//	dusk menu                - Pick stages interactively
//	dusk serve               - Start SSH server for remote play
//	dusk scores <stage>      - Show the best runs on a stage
//	dusk replay <script>     - Run an input script headless
//	dusk config              - Print the effective game config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.dusk/dusk.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset
//	--stages <dir>        - Extra stage files to register
//	--log-file <path>     - Write diagnostics to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/duskfall/internal/games/dusk"
	"github.com/vovakirdan/duskfall/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagStages     string
	flagLogFile    string
	flagLogLevel   string

	logFile io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dusk",
	Short: "Duskfall - a side-scrolling platformer in your terminal",
	Long: `Duskfall is a terminal action platformer. Walk, jump and swing your
sword through each stage, collect gold and level up.

Available commands:
  list     - Show all available stages
  play     - Play a specific stage directly
  menu     - Interactive stage picker
  serve    - Start SSH server for remote play
  scores   - View the best runs
  replay   - Run an input script headless
  config   - Print the effective config

Examples:
  dusk list
  dusk play meadow
  dusk play ravine --difficulty hard
  dusk menu --stages ./my-stages
  dusk serve --ssh :2222
  dusk scores meadow`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dusk/dusk.db", "Path to runs and saves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagStages, "stages", "", "Directory of extra stage files")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write diagnostics to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// setup applies the global flags before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	if flagLogFile != "" {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f

		logger := log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "dusk",
			Level:           level,
		})
		dusk.SetLogger(logger)
		tui.SetLogger(logger)
	}

	dusk.SetConfigPath(flagConfig)
	dusk.SetDifficultyPreset(flagDifficulty)

	if flagStages != "" {
		n, err := dusk.RegisterDir(flagStages)
		if err != nil {
			return fmt.Errorf("cannot load stages from %s: %w", flagStages, err)
		}
		if n == 0 {
			fmt.Fprintf(os.Stderr, "Warning: no new stages found in %s\n", flagStages)
		}
	}

	return nil
}
