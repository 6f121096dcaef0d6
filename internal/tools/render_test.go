package tools

import (
	"strings"
	"testing"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

func TestFormatCell(t *testing.T) {
	if got := formatCell(nil); got != "_null_" {
		t.Errorf("formatCell(nil) = %q", got)
	}
	if got := formatCell("short"); got != "short" {
		t.Errorf("formatCell(short) = %q", got)
	}
	long := strings.Repeat("x", maxCellWidth+10)
	got := formatCell(long)
	if len(got) != maxCellWidth {
		t.Errorf("formatCell truncated to %d chars, want %d", len(got), maxCellWidth)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated cell %q missing ellipsis", got)
	}
}

func TestMarkdownTable(t *testing.T) {
	out := markdownTable(
		[]string{"exercise", "reps"},
		[]types.Row{
			{"exercise": "squat", "reps": int64(5)},
			{"exercise": "deadlift", "reps": nil},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator, and 2 data lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "| exercise | reps |" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[3], "_null_") {
		t.Errorf("nil cell should render as _null_: %q", lines[3])
	}
}

func TestRenderQueryResultSummaryCapsRows(t *testing.T) {
	result := &types.QueryResult{Columns: []string{"n"}}
	for i := 0; i < summaryRowLimit+3; i++ {
		result.Rows = append(result.Rows, types.Row{"n": int64(i)})
	}

	out, err := renderQueryResult(result, formatSummary)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "... and 3 more rows") {
		t.Errorf("summary should mention the overflow rows:\n%s", out)
	}
}

func TestRenderTableDetailOmitsEmptySections(t *testing.T) {
	detail := &types.TableDetail{
		Name:        "mood",
		Description: "Mood tracking",
		Columns: []types.ColumnInfo{
			{Name: "id", Type: "TEXT"},
			{Name: "mood_rating", Type: "INTEGER", Description: "1-10 scale"},
		},
	}

	out := renderTableDetail(detail)
	if strings.Contains(out, "**Purpose**") {
		t.Error("empty purpose must be omitted")
	}
	if strings.Contains(out, "Recent Data") {
		t.Error("empty tables have no recent data section")
	}
	if !strings.Contains(out, "`mood_rating` (INTEGER): 1-10 scale") {
		t.Errorf("column line missing:\n%s", out)
	}
}
