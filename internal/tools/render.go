package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

// maxCellWidth truncates long values in markdown data tables.
const maxCellWidth = 50

// summaryRowLimit is how many rows the summary query format prints.
const summaryRowLimit = 5

func formatCell(v any) string {
	if v == nil {
		return "_null_"
	}
	s := fmt.Sprintf("%v", v)
	if len(s) > maxCellWidth {
		return s[:maxCellWidth-3] + "..."
	}
	return s
}

// markdownTable renders rows under a header.
func markdownTable(columns []string, rows []types.Row) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(columns, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(columns)) + "\n")
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = formatCell(row[col])
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}

// renderTableList formats the catalog overview.
func renderTableList(summaries []types.TableSummary) string {
	if len(summaries) == 0 {
		return "No tables exist yet. Use `create_table` to start tracking something."
	}

	var b strings.Builder
	b.WriteString("## Available Tables\n\n")
	for _, sum := range summaries {
		b.WriteString("### " + sum.Name + "\n")
		b.WriteString("- **Description**: " + sum.Description + "\n")
		if sum.Purpose != "" {
			b.WriteString("- **Purpose**: " + sum.Purpose + "\n")
		}
		fmt.Fprintf(&b, "- **Custom columns**: %d\n\n", sum.ColumnCount)
	}
	b.WriteString("*Use `list_tables` with a table_name for detailed schema information.*")
	return b.String()
}

// renderTableDetail formats one table's schema, metadata, and recent rows.
func renderTableDetail(detail *types.TableDetail) string {
	var b strings.Builder
	b.WriteString("## Table: " + detail.Name + "\n")
	b.WriteString("**Description**: " + detail.Description + "\n")
	if detail.Purpose != "" {
		b.WriteString("**Purpose**: " + detail.Purpose + "\n")
	}
	fmt.Fprintf(&b, "**Total rows**: %d\n\n", detail.RowCount)

	b.WriteString("**Columns**:\n")
	for _, col := range detail.Columns {
		fmt.Fprintf(&b, "- `%s` (%s)", col.Name, col.Type)
		if col.Description != "" {
			b.WriteString(": " + col.Description)
		}
		if col.Unit != "" {
			b.WriteString(" [" + col.Unit + "]")
		}
		b.WriteString("\n")
	}

	if len(detail.RecentRows) > 0 {
		columns := make([]string, len(detail.Columns))
		for i, col := range detail.Columns {
			columns[i] = col.Name
		}
		fmt.Fprintf(&b, "\n**Recent Data (%d entries)**:\n\n", len(detail.RecentRows))
		b.WriteString(markdownTable(columns, detail.RecentRows))
	}

	return b.String()
}

// Query output formats.
const (
	formatTable   = "table"
	formatJSON    = "json"
	formatSummary = "summary"
)

// renderQueryResult formats query rows per the requested output shape.
func renderQueryResult(result *types.QueryResult, format string) (string, error) {
	if len(result.Rows) == 0 {
		return "No results found.", nil
	}

	switch format {
	case formatJSON:
		blob, err := json.MarshalIndent(result.Rows, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding results: %w", err)
		}
		return string(blob), nil

	case formatSummary:
		var b strings.Builder
		b.WriteString("## Query Results\n\n")
		fmt.Fprintf(&b, "**Rows returned**: %d\n", len(result.Rows))
		b.WriteString("**Columns**: " + strings.Join(result.Columns, ", ") + "\n\n")
		shown := min(len(result.Rows), summaryRowLimit)
		for i := 0; i < shown; i++ {
			fmt.Fprintf(&b, "**Row %d**: %v\n", i+1, result.Rows[i])
		}
		if extra := len(result.Rows) - shown; extra > 0 {
			fmt.Fprintf(&b, "\n... and %d more rows", extra)
		}
		return b.String(), nil

	default: // table
		var b strings.Builder
		b.WriteString(markdownTable(result.Columns, result.Rows))
		fmt.Fprintf(&b, "\n*%d rows returned*", len(result.Rows))
		return b.String(), nil
	}
}
