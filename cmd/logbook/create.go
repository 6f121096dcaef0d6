// Create command makes a new table from a JSON column spec.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	createDescription string
	createPurpose     string
)

var createCmd = &cobra.Command{
	Use:   "create <table> <columns-json>",
	Short: "Create a table from a JSON array of column specs",
	Long: `Create makes a new table. Columns are a JSON array of specs with
name, type (TEXT, INTEGER, REAL, BOOLEAN, TIMESTAMP), description, and
optional unit and required fields. The table also gets id, date, and
created_at columns automatically.

Example:
  logbook create workouts --description "Exercise tracking" \
    '[{"name":"exercise","type":"TEXT","description":"Exercise name"},
      {"name":"reps","type":"INTEGER","description":"Repetitions"}]'`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createDescription, "description", "", "what this table tracks (required)")
	createCmd.Flags().StringVar(&createPurpose, "purpose", "", "the goal of tracking this data")
	_ = createCmd.MarkFlagRequired("description")
}

func runCreate(cmd *cobra.Command, args []string) error {
	var columns []any
	if err := json.Unmarshal([]byte(args[1]), &columns); err != nil {
		return fmt.Errorf("parse columns: %w", err)
	}

	res := registry.Dispatch(cmd.Context(), "create_table", map[string]any{
		"table_name":  args[0],
		"description": createDescription,
		"purpose":     createPurpose,
		"columns":     columns,
	})
	if !res.OK() {
		return fmt.Errorf("%s: %s", res.Failure.Code, res.Failure.Message)
	}
	fmt.Println(res.Output)
	return nil
}
