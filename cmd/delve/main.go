// delve is a turn-based dungeon crawler played in the terminal.
//
// Usage:
//
//	delve play               - Start or resume a run
//	delve gen                - Generate and print a level layout
//	delve sim                - Run a headless simulation
//	delve serve              - Start SSH server for remote play
//	delve saves              - Manage save slots
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set save database path (default: ~/.delve/saves.db)
//	--config <path> - Load a custom config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "delve",
	Short: "Delve - a turn-based dungeon crawler for your terminal",
	Long: `Delve is a deterministic, turn-based dungeon crawler. Every run is
reproducible from its seed: the same seed yields the same dungeon and
the same monster behavior.

Available commands:
  play     - Start or resume a run
  gen      - Generate a level and print it
  sim      - Run a headless simulation for a number of rounds
  serve    - Start SSH server for remote play
  saves    - List and delete save slots

Examples:
  delve play
  delve play --seed 42 --difficulty hard
  delve gen --seed 42
  delve sim --rounds 200
  delve serve --ssh :2222
  delve saves list`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.delve/saves.db", "Path to save database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(savesCmd)
}
