// Seed command loads the starter tables and sample data.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the starter tables with sample data",
	Long: `Seed creates the workouts, food, and mood tables with a few sample
rows so there is something to query right away. Tables that already
exist are left untouched, so seed is safe to run more than once.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := store.Seed(cmd.Context()); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Println("Seeded starter tables: workouts, food, mood")
	return nil
}
