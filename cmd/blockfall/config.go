package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config",
	Long: `Print the game config that 'blockfall play' would use, as YAML.
The output is a valid config file and can be edited and passed back
with --config.

Examples:
  blockfall config > ~/.blockfall/configs/blockfall.yaml
  blockfall config --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) {
	data, err := effectiveConfig(flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cmd.OutOrStdout().Write(data)
}

// effectiveConfig loads the config the same way a game does and encodes it.
func effectiveConfig(path, difficulty string) ([]byte, error) {
	cfg, err := config.LoadBlockfall(path)
	if err != nil {
		return nil, err
	}
	if difficulty != "" {
		preset, err := config.ParsePreset(difficulty)
		if err != nil {
			return nil, err
		}
		config.ApplyBlockfallPreset(&cfg, preset)
	}
	return cfg.Marshal()
}
