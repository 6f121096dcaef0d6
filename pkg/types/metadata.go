package types

import "time"

// TableMetadata is the satellite record describing one user table.
// Lifecycle: created atomically with its table, updated on every insert and
// schema change. Learnings are merged, never replaced wholesale.
type TableMetadata struct {
	TableName   string    `json:"table_name"`
	Description string    `json:"description"`
	Purpose     string    `json:"purpose,omitempty"`
	Learnings   Learnings `json:"learnings,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ColumnMetadata is the satellite record for one (table, column) pair.
// Created with the column, updated on rename/retype, deleted on drop.
type ColumnMetadata struct {
	TableName   string     `json:"table_name"`
	ColumnName  string     `json:"column_name"`
	Description string     `json:"description"`
	DataType    ColumnType `json:"data_type"`
	Unit        string     `json:"unit,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
