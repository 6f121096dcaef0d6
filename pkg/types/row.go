package types

// Row is one record keyed by column name. Used both for insert input and
// query output.
type Row map[string]any

// QueryResult holds the ordered rows returned by the query executor.
// Columns preserves the statement's column order, which the Row maps
// cannot.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// TableSummary is one entry in the catalog overview: a registered table
// and its descriptive metadata. ColumnCount covers caller-defined
// columns only, excluding id, date, and created_at.
type TableSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Purpose     string `json:"purpose,omitempty"`
	ColumnCount int    `json:"column_count"`
}

// ColumnInfo describes one live column of a table, joined with its
// metadata record when one exists.
type ColumnInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty"`
	NotNull     bool   `json:"not_null"`
}

// TableDetail is the full catalog view of one table: metadata, ordered
// columns, row count, and a small window of the most recent rows.
type TableDetail struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Purpose     string       `json:"purpose,omitempty"`
	Columns     []ColumnInfo `json:"columns"`
	RowCount    int64        `json:"row_count"`
	RecentRows  []Row        `json:"recent_rows,omitempty"`
}
