// Tables command shows the catalog, or one table in detail.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables [table]",
	Short: "List tables, or show one table's schema and recent data",
	Long: `Tables shows every table in the logbook with its description, purpose,
and column count. Given a table name, it shows the full schema, row
count, and the most recent entries instead.

Example:
  logbook tables
  logbook tables workouts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTables,
}

func runTables(cmd *cobra.Command, args []string) error {
	toolArgs := map[string]any{}
	if len(args) == 1 {
		toolArgs["table_name"] = args[0]
	}

	res := registry.Dispatch(cmd.Context(), "list_tables", toolArgs)
	if !res.OK() {
		return fmt.Errorf("%s: %s", res.Failure.Code, res.Failure.Message)
	}
	fmt.Println(res.Output)
	return nil
}
