// Edit command applies a batch of schema operations to a table.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <table> <operations-json>",
	Short: "Apply schema operations to an existing table",
	Long: `Edit applies an ordered batch of schema operations atomically: either
every operation succeeds or none are applied. Actions are add_column,
rename_column, retype_column, drop_column, and rename_table.

Example:
  logbook edit workouts '[{"action":"add_column","name":"duration_minutes","type":"INTEGER","description":"Workout length"}]'
  logbook edit workouts '[{"action":"rename_column","old_name":"weight","new_name":"weight_lbs"}]'`,
	Args: cobra.ExactArgs(2),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	var ops []any
	if err := json.Unmarshal([]byte(args[1]), &ops); err != nil {
		return fmt.Errorf("parse operations: %w", err)
	}

	res := registry.Dispatch(cmd.Context(), "edit_table_schema", map[string]any{
		"table_name": args[0],
		"operations": ops,
	})
	if !res.OK() {
		return fmt.Errorf("%s: %s", res.Failure.Code, res.Failure.Message)
	}
	fmt.Println(res.Output)
	return nil
}
