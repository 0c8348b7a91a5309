package dialect

// reservedWords are DuckDB keywords that cannot appear as bare
// identifiers: the "reserved" and "type_function" categories of
// duckdb_keywords(). Stored uppercase.
var reservedWords = []string{
	"ALL", "ANALYSE", "ANALYZE", "AND", "ANTI", "ANY", "ARRAY", "AS", "ASC",
	"ASOF", "ASYMMETRIC", "AUTHORIZATION", "BINARY", "BOTH", "CASE", "CAST",
	"CHECK", "COLLATE", "COLLATION", "COLUMN", "CONCURRENTLY", "CONSTRAINT",
	"CREATE", "CROSS", "DEFAULT", "DEFERRABLE", "DESC", "DESCRIBE",
	"DISTINCT", "DO", "ELSE", "END", "EXCEPT", "FALSE", "FETCH", "FOR",
	"FOREIGN", "FREEZE", "FROM", "FULL", "GENERATED", "GLOB", "GRANT",
	"GROUP", "HAVING", "ILIKE", "IN", "INITIALLY", "INNER", "INTERSECT",
	"INTO", "IS", "ISNULL", "JOIN", "LATERAL", "LEADING", "LEFT", "LIKE",
	"LIMIT", "MAP", "NATURAL", "NOT", "NOTNULL", "NULL", "OFFSET", "ON",
	"ONLY", "OR", "ORDER", "OUTER", "OVERLAPS", "PIVOT", "PIVOT_LONGER",
	"PIVOT_WIDER", "PLACING", "POSITIONAL", "PRIMARY", "QUALIFY",
	"REFERENCES", "RETURNING", "RIGHT", "SELECT", "SEMI", "SHOW", "SIMILAR",
	"SOME", "STRUCT", "SUMMARIZE", "SYMMETRIC", "TABLE", "TABLESAMPLE",
	"THEN", "TO", "TRAILING", "TRUE", "TRY_CAST", "UNION", "UNIQUE",
	"UNPIVOT", "USING", "VARIADIC", "VERBOSE", "WHEN", "WHERE", "WINDOW",
	"WITH",
}
