package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/torvik/delve/internal/game"
	"github.com/torvik/delve/internal/platform/tui"
	"github.com/torvik/delve/internal/save"
)

var (
	flagSlot   string
	flagResume bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume a run",
	Long: `Start a new run, or resume the one saved in the chosen slot.

Controls:
  h/j/k/l      - Move (arrows work too)
  y/u/b/n      - Move diagonally
  .            - Wait a turn
  o / c        - Open / close an adjacent door
  g            - Pick up the item underfoot
  d            - Drop the last item picked up
  > / <        - Descend / ascend stairs
  Ctrl+S       - Save to the current slot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Fewer monsters, more loot, wider sight
  normal - The intended balance
  hard   - Denser monsters, less loot, shorter sight

Examples:
  delve play
  delve play --seed 42
  delve play --difficulty hard
  delve play --resume --slot main
  delve play --config ./my-delve.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSlot, "slot", "main", "Save slot name")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the run saved in the slot")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := resolveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Check the terminal fits the map plus the status and message lines.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		needW, needH := cfg.Dungeon.Width, cfg.Dungeon.Height+5
		if w < needW || h < needH {
			fmt.Fprintf(os.Stderr, "Error: terminal is %dx%d, need at least %dx%d\n", w, h, needW, needH)
			os.Exit(1)
		}
	}

	// Open save storage
	store, err := save.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open save database: %v\n", err)
		// Continue without storage - the run still works, just unsaved
		store = nil
	}

	var world *game.World
	if flagResume {
		if store == nil {
			fmt.Fprintln(os.Stderr, "Error: cannot resume without a save database")
			os.Exit(1)
		}
		world, err = store.Load(flagSlot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading slot %q: %v\n", flagSlot, err)
			store.Close()
			os.Exit(1)
		}
	} else {
		world, err = game.NewWorld(resolveSeed(), cfg.Options())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating dungeon: %v\n", err)
			if store != nil {
				store.Close()
			}
			os.Exit(1)
		}
	}

	runErr := tui.Run(world, store, flagSlot)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
