package tools

import _ "embed"

// Guidance documents steering an LLM's use of each tool. Shipped as
// markdown so they can be audited and edited without touching code.

//go:embed guidance/list_tables.md
var listTablesGuidance string

//go:embed guidance/create_table.md
var createTableGuidance string

//go:embed guidance/edit_table_schema.md
var editTableSchemaGuidance string

//go:embed guidance/insert_data.md
var insertDataGuidance string

//go:embed guidance/query_data.md
var queryDataGuidance string

//go:embed guidance/view_table.md
var viewTableGuidance string
