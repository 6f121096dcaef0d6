// Call command dispatches any registered tool by name with raw JSON
// arguments, the way an agent integration would.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call <tool> [args-json]",
	Short: "Invoke a tool by name with JSON arguments",
	Long: `Call invokes one of the registered tools directly. The result comes
back as a JSON envelope with either the tool output or a coded failure,
exactly what an agent integration receives.

Example:
  logbook call list_tables
  logbook call insert_data '{"table_name":"mood","data":{"date":"2026-08-29","mood_rating":8}}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCall,
}

func runCall(cmd *cobra.Command, args []string) error {
	toolArgs := map[string]any{}
	if len(args) == 2 && strings.TrimSpace(args[1]) != "" {
		if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
			return fmt.Errorf("parse arguments: %w", err)
		}
	}

	res := registry.Dispatch(cmd.Context(), args[0], toolArgs)

	blob, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(blob))
	return nil
}
