package dialect

// Catalog queries. Every variable part is a bound "?" parameter; the
// leading parameter of each schema-scoped query is the schema name.
// Schema-scoped queries only see the current database: attached databases
// and the temp catalog have their own "main" schema. Temporary objects
// are listed by the temp queries, which take no schema.
const (
	// HasTableQuery: schema, table. Matches tables and views.
	HasTableQuery = `SELECT table_name FROM information_schema.tables WHERE table_catalog = current_database() AND table_schema = ? AND table_name = ?`

	// HasIndexQuery: schema, table, index.
	HasIndexQuery = `SELECT index_name FROM duckdb_indexes() WHERE database_name = current_database() AND schema_name = ? AND table_name = ? AND index_name = ?`

	// HasSequenceQuery: schema, sequence.
	HasSequenceQuery = `SELECT sequence_name FROM duckdb_sequences() WHERE database_name = current_database() AND schema_name = ? AND sequence_name = ? AND NOT temporary`

	// TablesQuery: schema.
	TablesQuery = `SELECT table_name FROM duckdb_tables() WHERE database_name = current_database() AND schema_name = ? AND NOT temporary ORDER BY table_name`

	// ViewsQuery: schema.
	ViewsQuery = `SELECT view_name FROM duckdb_views() WHERE database_name = current_database() AND schema_name = ? AND NOT internal AND NOT temporary ORDER BY view_name`

	// TempTablesQuery: no parameters.
	TempTablesQuery = `SELECT table_name FROM duckdb_tables() WHERE temporary ORDER BY table_name`

	// TempViewsQuery: no parameters.
	TempViewsQuery = `SELECT view_name FROM duckdb_views() WHERE temporary ORDER BY view_name`

	// ViewSQLQuery: schema, view.
	ViewSQLQuery = `SELECT sql FROM duckdb_views() WHERE database_name = current_database() AND schema_name = ? AND view_name = ? AND NOT temporary`

	// ColumnsQuery: schema, table.
	ColumnsQuery = `SELECT column_name, data_type, is_nullable, column_default FROM duckdb_columns() WHERE database_name = current_database() AND schema_name = ? AND table_name = ? ORDER BY column_index`

	// IndexesQuery: schema, table.
	IndexesQuery = `SELECT index_name, sql, is_unique FROM duckdb_indexes() WHERE database_name = current_database() AND schema_name = ? AND table_name = ? ORDER BY index_name`

	// ConstraintsQuery: schema, table, constraint kind.
	ConstraintsQuery = `SELECT constraint_name, constraint_column_names FROM duckdb_constraints() WHERE database_name = current_database() AND schema_name = ? AND table_name = ? AND constraint_type = ? ORDER BY constraint_index`

	// CheckConstraintsQuery: schema, table.
	CheckConstraintsQuery = `SELECT constraint_name, constraint_text FROM duckdb_constraints() WHERE database_name = current_database() AND schema_name = ? AND table_name = ? AND constraint_type = 'CHECK' ORDER BY constraint_index`

	// SequencesQuery: schema.
	SequencesQuery = `SELECT sequence_name FROM duckdb_sequences() WHERE database_name = current_database() AND schema_name = ? AND NOT temporary ORDER BY sequence_name`
)

// Constraint kinds bound into ConstraintsQuery.
const (
	ConstraintPrimaryKey = "PRIMARY KEY"
	ConstraintUnique     = "UNIQUE"
	ConstraintForeignKey = "FOREIGN KEY"
)
