package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

const defaultMode = "blockfall"

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode, or classic blockfall if none is given.

Controls:
  Left/Right, A/D   - Move
  Up/W/X            - Rotate clockwise
  Down/S            - Soft drop
  Space             - Hard drop
  Enter             - Start
  P                 - Pause / resume
  R                 - Restart (after game over)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slower start, more lines per level
  normal - Default speed
  hard   - Faster start, fewer lines per level
  fixed  - Speed never changes

Examples:
  blockfall play
  blockfall play blockfall_turbo
  blockfall play --difficulty hard
  blockfall play --config ./my-blockfall.yaml --log-file debug.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	mode := defaultMode
	if len(args) > 0 {
		mode = args[0]
	}

	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available modes.")
		os.Exit(1)
	}

	logger, closeLog := mustLogger(true)
	defer closeLog()

	game, err := registry.Create(mode)
	if err == nil {
		err = registry.Configure(game, gameOptions(logger))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, logger, runtimeConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
