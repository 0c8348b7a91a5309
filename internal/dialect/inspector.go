package dialect

import (
	"context"
	"fmt"
	"strings"

	"github.com/koustreak/duckwire/internal/database"
	"github.com/koustreak/duckwire/internal/errs"
	"github.com/koustreak/duckwire/internal/logger"
)

// DefaultSchema is used whenever a caller passes no schema.
const DefaultSchema = "main"

// NormalizeSchema returns schema, or DefaultSchema when it is blank.
func NormalizeSchema(schema string) string {
	if strings.TrimSpace(schema) == "" {
		return DefaultSchema
	}
	return schema
}

// Inspector answers catalog questions over any database.Conn.
// Each call opens exactly one cursor and closes it before returning.
type Inspector struct {
	log *logger.Logger
}

// NewInspector creates an inspector. A nil logger discards output.
func NewInspector(log *logger.Logger) *Inspector {
	if log == nil {
		log = logger.Nop()
	}
	return &Inspector{log: log}
}

// run opens a cursor on conn, executes q and hands the cursor to read.
// The cursor is closed on every path. A close failure is returned only
// when nothing else failed; otherwise it is logged.
func (i *Inspector) run(ctx context.Context, conn database.Conn, op, q string, params []any, read func(database.Cursor) error) (err error) {
	if conn == nil {
		return errs.New(errs.ErrKindInvalidInput, op+": nil connection")
	}

	cur, err := conn.Cursor(ctx)
	if err != nil {
		return fmt.Errorf("%s: open cursor: %w", op, err)
	}
	defer func() {
		cerr := cur.Close()
		if cerr == nil {
			return
		}
		if err != nil {
			i.log.WarnWith("cursor close failed", cerr, map[string]any{"op": op})
			return
		}
		err = errs.Wrap(errs.ErrKindQueryFailed, op+": close cursor", cerr)
	}()

	i.log.DebugWith("catalog query", map[string]any{"op": op, "params": params})

	if err := cur.Execute(ctx, q, params...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := read(cur); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// inSchema runs a schema-scoped query. The normalized schema is bound as
// the first parameter, followed by args.
func (i *Inspector) inSchema(ctx context.Context, conn database.Conn, op, q, schema string, read func(database.Cursor) error, args ...any) error {
	params := append([]any{NormalizeSchema(schema)}, args...)
	return i.run(ctx, conn, op, q, params, read)
}

func (i *Inspector) exists(ctx context.Context, conn database.Conn, op, q, schema string, args ...any) (bool, error) {
	var found bool
	err := i.inSchema(ctx, conn, op, q, schema, func(cur database.Cursor) error {
		found = cur.RowCount() == 1
		return nil
	}, args...)
	if err != nil {
		return false, err
	}
	return found, nil
}

// readNames flattens every value of every row into a list of names.
func readNames(dst *[]string) func(database.Cursor) error {
	return func(cur database.Cursor) error {
		rows, err := cur.FetchAll()
		if err != nil {
			return err
		}
		names := make([]string, 0, len(rows))
		for _, row := range rows {
			for _, v := range row {
				names = append(names, asString(v))
			}
		}
		*dst = names
		return nil
	}
}

// readRecords converts every row with parse.
func readRecords[T any](dst *[]T, parse func(database.Row) (T, error)) func(database.Cursor) error {
	return func(cur database.Cursor) error {
		rows, err := cur.FetchAll()
		if err != nil {
			return err
		}
		out := make([]T, 0, len(rows))
		for _, row := range rows {
			rec, err := parse(row)
			if err != nil {
				return err
			}
			out = append(out, rec)
		}
		*dst = out
		return nil
	}
}

// HasTable reports whether schema holds a table or view called table.
func (i *Inspector) HasTable(ctx context.Context, conn database.Conn, schema, table string) (bool, error) {
	return i.exists(ctx, conn, "has table", HasTableQuery, schema, table)
}

// HasIndex reports whether table in schema has an index called index.
func (i *Inspector) HasIndex(ctx context.Context, conn database.Conn, schema, table, index string) (bool, error) {
	return i.exists(ctx, conn, "has index", HasIndexQuery, schema, table, index)
}

// HasSequence reports whether schema holds sequence.
func (i *Inspector) HasSequence(ctx context.Context, conn database.Conn, schema, sequence string) (bool, error) {
	return i.exists(ctx, conn, "has sequence", HasSequenceQuery, schema, sequence)
}

// GetTableNames lists the non-temporary tables of schema.
func (i *Inspector) GetTableNames(ctx context.Context, conn database.Conn, schema string) ([]string, error) {
	var names []string
	if err := i.inSchema(ctx, conn, "get table names", TablesQuery, schema, readNames(&names)); err != nil {
		return nil, err
	}
	return names, nil
}

// GetViewNames lists the non-temporary, non-internal views of schema.
func (i *Inspector) GetViewNames(ctx context.Context, conn database.Conn, schema string) ([]string, error) {
	var names []string
	if err := i.inSchema(ctx, conn, "get view names", ViewsQuery, schema, readNames(&names)); err != nil {
		return nil, err
	}
	return names, nil
}

// GetTempTableNames lists temporary tables. They are not schema scoped.
func (i *Inspector) GetTempTableNames(ctx context.Context, conn database.Conn) ([]string, error) {
	var names []string
	if err := i.run(ctx, conn, "get temp table names", TempTablesQuery, nil, readNames(&names)); err != nil {
		return nil, err
	}
	return names, nil
}

// GetTempViewNames lists temporary views.
func (i *Inspector) GetTempViewNames(ctx context.Context, conn database.Conn) ([]string, error) {
	var names []string
	if err := i.run(ctx, conn, "get temp view names", TempViewsQuery, nil, readNames(&names)); err != nil {
		return nil, err
	}
	return names, nil
}

// GetSequenceNames lists the sequences of schema.
func (i *Inspector) GetSequenceNames(ctx context.Context, conn database.Conn, schema string) ([]string, error) {
	var names []string
	if err := i.inSchema(ctx, conn, "get sequence names", SequencesQuery, schema, readNames(&names)); err != nil {
		return nil, err
	}
	return names, nil
}

// GetViewDefinition returns the SQL text of view, or "" when the view
// does not exist.
func (i *Inspector) GetViewDefinition(ctx context.Context, conn database.Conn, schema, view string) (string, error) {
	var def string
	err := i.inSchema(ctx, conn, "get view definition", ViewSQLQuery, schema, func(cur database.Cursor) error {
		rows, err := cur.FetchAll()
		if err != nil {
			return err
		}
		if len(rows) > 0 && len(rows[0]) > 0 {
			def = asString(rows[0][0])
		}
		return nil
	}, view)
	if err != nil {
		return "", err
	}
	return def, nil
}

// GetColumns describes the columns of table in declaration order.
func (i *Inspector) GetColumns(ctx context.Context, conn database.Conn, schema, table string) ([]ColumnRecord, error) {
	var cols []ColumnRecord
	if err := i.inSchema(ctx, conn, "get columns", ColumnsQuery, schema, readRecords(&cols, columnFromRow), table); err != nil {
		return nil, err
	}
	return cols, nil
}

// GetPKConstraint returns the primary key of table as a list of at most
// one record. An empty list means the table has no primary key.
func (i *Inspector) GetPKConstraint(ctx context.Context, conn database.Conn, schema, table string) ([]ConstraintRecord, error) {
	pk := []ConstraintRecord{}
	err := i.inSchema(ctx, conn, "get pk constraint", ConstraintsQuery, schema, func(cur database.Cursor) error {
		row, err := cur.FetchOne()
		if err != nil || row == nil {
			return err
		}
		rec, err := constraintFromRow(row)
		if err != nil {
			return err
		}
		pk = append(pk, rec)
		return nil
	}, table, ConstraintPrimaryKey)
	if err != nil {
		return nil, err
	}
	return pk, nil
}

// GetUniqueConstraints returns the unique constraints of table.
func (i *Inspector) GetUniqueConstraints(ctx context.Context, conn database.Conn, schema, table string) ([]ConstraintRecord, error) {
	return i.constraints(ctx, conn, "get unique constraints", schema, table, ConstraintUnique)
}

// GetForeignKeys returns the foreign keys of table. Only the local
// column names are reported.
func (i *Inspector) GetForeignKeys(ctx context.Context, conn database.Conn, schema, table string) ([]ConstraintRecord, error) {
	return i.constraints(ctx, conn, "get foreign keys", schema, table, ConstraintForeignKey)
}

func (i *Inspector) constraints(ctx context.Context, conn database.Conn, op, schema, table, kind string) ([]ConstraintRecord, error) {
	var out []ConstraintRecord
	if err := i.inSchema(ctx, conn, op, ConstraintsQuery, schema, readRecords(&out, constraintFromRow), table, kind); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCheckConstraints returns the check constraints of table.
func (i *Inspector) GetCheckConstraints(ctx context.Context, conn database.Conn, schema, table string) ([]CheckConstraintRecord, error) {
	var out []CheckConstraintRecord
	if err := i.inSchema(ctx, conn, "get check constraints", CheckConstraintsQuery, schema, readRecords(&out, checkFromRow), table); err != nil {
		return nil, err
	}
	return out, nil
}

// GetIndexes returns the indexes of table.
func (i *Inspector) GetIndexes(ctx context.Context, conn database.Conn, schema, table string) ([]IndexRecord, error) {
	var out []IndexRecord
	if err := i.inSchema(ctx, conn, "get indexes", IndexesQuery, schema, readRecords(&out, indexFromRow), table); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTableComment is not available over this transport. No query is
// issued.
func (i *Inspector) GetTableComment(_ context.Context, _ database.Conn, schema, table string) (string, error) {
	return "", errs.New(errs.ErrKindNotImplemented,
		fmt.Sprintf("table comments are not implemented (%s.%s)", NormalizeSchema(schema), table))
}
