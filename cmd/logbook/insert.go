// Insert command adds rows to a table from JSON.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert <table> <data-json>",
	Short: "Insert one record or a batch of records",
	Long: `Insert adds rows to a table. Data is a JSON object for one record or
a JSON array for a batch. Each record needs a date; id and created_at
are generated. A batch is atomic: one bad record means no rows land.

Example:
  logbook insert workouts '{"date":"2026-08-29","exercise":"deadlift","weight_lbs":185}'
  logbook insert mood '[{"date":"2026-08-28","mood_rating":7},{"date":"2026-08-29","mood_rating":8}]'`,
	Args: cobra.ExactArgs(2),
	RunE: runInsert,
}

func runInsert(cmd *cobra.Command, args []string) error {
	var data any
	if err := json.Unmarshal([]byte(args[1]), &data); err != nil {
		return fmt.Errorf("parse data: %w", err)
	}

	res := registry.Dispatch(cmd.Context(), "insert_data", map[string]any{
		"table_name": args[0],
		"data":       data,
	})
	if !res.OK() {
		return fmt.Errorf("%s: %s", res.Failure.Code, res.Failure.Message)
	}
	fmt.Println(res.Output)
	return nil
}
