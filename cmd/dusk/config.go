package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/duskfall/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config",
	Long: `Print the game config as YAML after the search order and the
difficulty preset are applied. Use it as a starting point for --config.

Search order:
  1. --config <path>
  2. ~/.dusk/configs/dusk.yaml
  3. ./configs/dusk.yaml
  4. built-in defaults

Examples:
  dusk config > my-dusk.yaml
  dusk config --difficulty hard
  dusk config --defaults`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults file unchanged")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadDusk(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyDuskPreset(&cfg, config.ParsePreset(flagDifficulty))

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
