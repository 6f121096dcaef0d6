package sqlite

// Auxiliary table names. Reserved: user tables may not take these names.
const (
	tableMetadataName  = "table_metadata"
	columnMetadataName = "column_metadata"
)

// Metadata DDL. Unlike user tables these are fixed, so they are created
// unconditionally at open.
const (
	createTableMetadata = `CREATE TABLE IF NOT EXISTS table_metadata (
    table_name TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    purpose TEXT NOT NULL DEFAULT '',
    learnings TEXT NOT NULL DEFAULT '{}',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createColumnMetadata = `CREATE TABLE IF NOT EXISTS column_metadata (
    table_name TEXT NOT NULL,
    column_name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    data_type TEXT NOT NULL,
    unit TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    PRIMARY KEY (table_name, column_name)
);`

	idxColumnMetadataTable = `CREATE INDEX IF NOT EXISTS idx_column_metadata_table ON column_metadata(table_name);`
)

// schemaDDL lists the statements executed at store open, in order.
var schemaDDL = []string{
	createTableMetadata,
	createColumnMetadata,
	idxColumnMetadataTable,
}
