package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/logbook/internal/sqlite"
	"github.com/mesh-intelligence/logbook/pkg/types"
)

// NewRegistry builds the standard logbook tool set over a store.
func NewRegistry(store *sqlite.Store, log *zap.Logger) *Registry {
	r := NewEmptyRegistry(log)
	r.mustRegister(listTablesTool(store))
	r.mustRegister(createTableTool(store))
	r.mustRegister(editTableSchemaTool(store))
	r.mustRegister(insertDataTool(store))
	r.mustRegister(queryDataTool(store))
	r.mustRegister(viewTableTool(store))
	return r
}

// stringArg fetches an optional string argument.
func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// requireString fetches a mandatory string argument.
func requireString(args map[string]any, key string) (string, error) {
	v := stringArg(args, key)
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w: %s", types.ErrMissingParam, key)
	}
	return v, nil
}

// decodeArg re-encodes a structured argument (already JSON-decoded into
// maps and slices) into a typed destination.
func decodeArg(v any, dst any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrMissingParam, err)
	}
	if err := json.Unmarshal(blob, dst); err != nil {
		return fmt.Errorf("%w: %v", types.ErrMissingParam, err)
	}
	return nil
}

func listTablesTool(store *sqlite.Store) *Tool {
	return &Tool{
		Name:        "list_tables",
		Description: "Shows all available tables with their purpose, schema, and recent data",
		Guidance:    listTablesGuidance,
		Schema: Schema{
			Properties: map[string]Property{
				"table_name": {Type: "string", Description: "Optional: specific table name for detailed info"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			if name := stringArg(args, "table_name"); name != "" {
				detail, err := store.DescribeTable(ctx, name)
				if err != nil {
					return "", err
				}
				return renderTableDetail(detail), nil
			}
			summaries, err := store.ListTables(ctx)
			if err != nil {
				return "", err
			}
			return renderTableList(summaries), nil
		},
	}
}

func createTableTool(store *sqlite.Store) *Tool {
	return &Tool{
		Name:        "create_table",
		Description: "Creates a new table with columns and metadata",
		Guidance:    createTableGuidance,
		Schema: Schema{
			Required: []string{"table_name", "description", "columns"},
			Properties: map[string]Property{
				"table_name":  {Type: "string", Description: "Name of the table to create"},
				"description": {Type: "string", Description: "What this table tracks"},
				"purpose":     {Type: "string", Description: "The goal of tracking this data"},
				"columns":     {Type: "array", Description: "Ordered column specs: {name, type, description, unit?, required?}", Items: &PropertyItems{Type: "object"}},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			name, err := requireString(args, "table_name")
			if err != nil {
				return "", err
			}
			description, err := requireString(args, "description")
			if err != nil {
				return "", err
			}
			var columns []types.ColumnSpec
			if err := decodeArg(args["columns"], &columns); err != nil {
				return "", err
			}

			spec := types.TableSpec{
				Name:        name,
				Description: description,
				Purpose:     stringArg(args, "purpose"),
				Columns:     columns,
			}
			if err := store.CreateTable(ctx, spec); err != nil {
				return "", err
			}
			return fmt.Sprintf("Created table '%s' with %d custom columns plus standard fields (id, date, created_at)",
				name, len(columns)), nil
		},
	}
}

func editTableSchemaTool(store *sqlite.Store) *Tool {
	return &Tool{
		Name:        "edit_table_schema",
		Description: "Applies an atomic batch of schema changes to an existing table",
		Guidance:    editTableSchemaGuidance,
		Schema: Schema{
			Required: []string{"table_name", "operations"},
			Properties: map[string]Property{
				"table_name": {Type: "string", Description: "Name of the table to modify"},
				"operations": {Type: "array", Description: "Ordered operations: {action, ...params}", Items: &PropertyItems{Type: "object"}},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			name, err := requireString(args, "table_name")
			if err != nil {
				return "", err
			}
			var ops []types.EditOp
			if err := decodeArg(args["operations"], &ops); err != nil {
				return "", err
			}

			if err := store.EditSchema(ctx, name, ops); err != nil {
				return "", err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Applied %d schema operations to table '%s':\n", len(ops), name)
			for i, op := range ops {
				fmt.Fprintf(&b, "  %d. %s", i+1, op.Action)
				switch op.Action {
				case types.ActionRenameColumn:
					fmt.Fprintf(&b, " %s -> %s", op.OldName, op.NewName)
				case types.ActionRenameTable:
					fmt.Fprintf(&b, " -> %s", op.NewName)
				default:
					fmt.Fprintf(&b, " %s", op.Name)
				}
				b.WriteString("\n")
			}
			return b.String(), nil
		},
	}
}

func insertDataTool(store *sqlite.Store) *Tool {
	return &Tool{
		Name:        "insert_data",
		Description: "Inserts one or more rows into a table with auto-generated id and created_at",
		Guidance:    insertDataGuidance,
		Schema: Schema{
			Required: []string{"table_name", "data"},
			Properties: map[string]Property{
				"table_name": {Type: "string", Description: "Name of the table to insert into"},
				"data":       {Type: "object", Description: "One record of column/value pairs, or an array of records"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			name, err := requireString(args, "table_name")
			if err != nil {
				return "", err
			}
			records, err := recordsFromArg(args["data"])
			if err != nil {
				return "", err
			}

			ids, err := store.Insert(ctx, name, records)
			if err != nil {
				return "", err
			}

			if len(ids) == 1 {
				return fmt.Sprintf("Inserted 1 row into '%s' (id: %s)", name, ids[0]), nil
			}
			return fmt.Sprintf("Inserted %d rows into '%s' (ids: %s)",
				len(ids), name, strings.Join(ids, ", ")), nil
		},
	}
}

// recordsFromArg accepts a single record object or an array of them.
func recordsFromArg(v any) ([]types.Row, error) {
	switch data := v.(type) {
	case map[string]any:
		return []types.Row{data}, nil
	case []any:
		records := make([]types.Row, 0, len(data))
		for i, item := range data {
			record, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: data[%d] is not a record", types.ErrMissingParam, i)
			}
			records = append(records, record)
		}
		if len(records) == 0 {
			return nil, types.ErrNoRows
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%w: data", types.ErrMissingParam)
	}
}

func queryDataTool(store *sqlite.Store) *Tool {
	return &Tool{
		Name:        "query_data",
		Description: "Executes a read-only SQL query and formats the results",
		Guidance:    queryDataGuidance,
		Schema: Schema{
			Required: []string{"sql"},
			Properties: map[string]Property{
				"sql":    {Type: "string", Description: "SELECT statement to execute"},
				"format": {Type: "string", Description: "Result format", Enum: []any{formatTable, formatJSON, formatSummary}, Default: formatTable},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			sqlText, err := requireString(args, "sql")
			if err != nil {
				return "", err
			}

			result, err := store.Query(ctx, sqlText)
			if err != nil {
				return "", err
			}
			return renderQueryResult(result, stringArg(args, "format"))
		},
	}
}

func viewTableTool(store *sqlite.Store) *Tool {
	return &Tool{
		Name:        "view_table",
		Description: "Shows one table's schema, row count, and recent entries",
		Guidance:    viewTableGuidance,
		Schema: Schema{
			Required: []string{"table_name"},
			Properties: map[string]Property{
				"table_name": {Type: "string", Description: "Name of the table to inspect"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			name, err := requireString(args, "table_name")
			if err != nil {
				return "", err
			}
			detail, err := store.DescribeTable(ctx, name)
			if err != nil {
				return "", err
			}
			return renderTableDetail(detail), nil
		},
	}
}
