// Query command runs a read-only SQL query.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var queryFormat string

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a read-only SQL query",
	Long: `Query executes a single SELECT (or WITH ... SELECT) statement against
the logbook and prints the results. Anything that would modify data or
schema is rejected.

Example:
  logbook query "SELECT exercise, MAX(weight_lbs) FROM workouts GROUP BY exercise"
  logbook query --format json "SELECT * FROM mood ORDER BY date DESC LIMIT 7"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryFormat, "format", "table", "output format: table, json, or summary")
}

func runQuery(cmd *cobra.Command, args []string) error {
	res := registry.Dispatch(cmd.Context(), "query_data", map[string]any{
		"sql":    args[0],
		"format": queryFormat,
	})
	if !res.OK() {
		return fmt.Errorf("%s: %s", res.Failure.Code, res.Failure.Message)
	}
	fmt.Println(res.Output)
	return nil
}
