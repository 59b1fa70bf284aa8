package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/torvik/delve/internal/action"
	"github.com/torvik/delve/internal/game"
)

var flagSimRounds int

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run the simulation without a UI: the player holds position while
the monsters act, and the run ends when the round budget runs out or
the player dies. Two invocations with the same seed print the same
final state.

Examples:
  delve sim --rounds 200
  delve sim --seed 42 --rounds 500 --difficulty hard`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRounds, "rounds", 100, "Player rounds to simulate")
}

func runSim(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "delve-sim",
	})

	cfg, err := resolveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := resolveSeed()
	world, err := game.NewWorld(seed, cfg.Options())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating dungeon: %v\n", err)
		os.Exit(1)
	}
	logger.Info("run started", "seed", seed, "entities", len(world.Store().IDs()))

	hits := 0
	rounds := 0
	for ; rounds < flagSimRounds; rounds++ {
		for _, out := range world.Advance() {
			if out.Kind == action.KindAttack && out.Target == world.Player() {
				hits++
			}
		}
		if !world.PlayerAlive() {
			break
		}
		if _, err := world.SubmitPlayerAction(action.Wait(world.Player())); err != nil {
			logger.Error("wait rejected", "error", err)
			break
		}
		if rounds > 0 && rounds%50 == 0 {
			hp, _ := world.Store().Health(world.Player())
			logger.Info("checkpoint", "round", rounds, "clock", world.Clock(), "hp", hp.Cur)
		}
	}

	hp, _ := world.Store().Health(world.Player())
	logger.Info("run finished",
		"seed", seed,
		"rounds", rounds,
		"clock", world.Clock(),
		"alive", world.PlayerAlive(),
		"hp", hp.Cur,
		"hits_taken", hits,
	)
	if !world.PlayerAlive() {
		fmt.Printf("seed %d: died on round %d at time %d\n", seed, rounds, world.Clock())
		return
	}
	fmt.Printf("seed %d: survived %d rounds, time %d, HP %d/%d\n",
		seed, rounds, world.Clock(), hp.Cur, hp.Max)
}
