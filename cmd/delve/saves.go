package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/torvik/delve/internal/save"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage save slots",
	Long: `List and delete save slots in the save database.

Examples:
  delve saves list
  delve saves delete main`,
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all save slots",
	Run:   runSavesList,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	Run:   runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesDeleteCmd)
}

func runSavesList(cmd *cobra.Command, args []string) {
	store, err := save.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	infos, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing slots: %v\n", err)
		os.Exit(1)
	}

	if len(infos) == 0 {
		fmt.Println("No saved runs.")
		fmt.Println()
		fmt.Println("Play 'delve play' and press Ctrl+S to save one.")
		return
	}

	// Calculate column width
	maxSlotLen := 4 // "Slot" header
	for _, info := range infos {
		if len(info.Slot) > maxSlotLen {
			maxSlotLen = len(info.Slot)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-12s  %-6s  %-8s  %s\n", maxSlotLen, "Slot", "Seed", "Depth", "Time", "Saved")
	fmt.Printf("  %-*s  %-12s  %-6s  %-8s  %s\n", maxSlotLen, "----", "----", "-----", "----", "-----")

	// Print slots
	for _, info := range infos {
		fmt.Printf("  %-*s  %-12d  %-6d  %-8d  %s\n",
			maxSlotLen, info.Slot, info.Seed, info.Depth, info.Clock,
			info.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'delve play --resume --slot <slot>' to resume a run.")
}

func runSavesDelete(cmd *cobra.Command, args []string) {
	slot := args[0]

	store, err := save.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Delete(slot); err != nil {
		if errors.Is(err, save.ErrNoSlot) {
			fmt.Fprintf(os.Stderr, "Error: no slot named %q\n", slot)
		} else {
			fmt.Fprintf(os.Stderr, "Error deleting slot: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Printf("Deleted slot %q.\n", slot)
}
