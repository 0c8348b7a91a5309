package dialect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/koustreak/duckwire/internal/database"
	"github.com/koustreak/duckwire/internal/errs"
)

// ColumnRecord describes a single column of a table
type ColumnRecord struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default"` // nil if no default
}

// ConstraintRecord is a named constraint over an ordered column list.
// Used for primary keys, unique constraints and foreign keys.
type ConstraintRecord struct {
	Name        string   `json:"name"`
	ColumnNames []string `json:"column_names"`
}

// CheckConstraintRecord is a check constraint and its SQL text
type CheckConstraintRecord struct {
	Name    string `json:"name"`
	SQLText string `json:"sqltext"`
}

// IndexRecord describes an index. ColumnNames is recovered from the
// creation SQL.
type IndexRecord struct {
	Name        string   `json:"name"`
	ColumnNames []string `json:"column_names"`
	Unique      bool     `json:"unique"`
}

// indexColumnsRe captures the first parenthesised group of an index
// creation statement. Expression indexes that nest parentheses are
// truncated at the first closing parenthesis.
var indexColumnsRe = regexp.MustCompile(`\((.*?)\)`)

// indexColumns extracts the column list from CREATE INDEX text.
// Returns an empty slice when the text has no parenthesised group.
func indexColumns(sql string) []string {
	m := indexColumnsRe.FindStringSubmatch(sql)
	if m == nil {
		return []string{}
	}
	parts := strings.Split(m[1], ",")
	cols := make([]string, len(parts))
	for i, p := range parts {
		cols[i] = strings.TrimSpace(p)
	}
	return cols
}

func needColumns(row database.Row, n int) error {
	if len(row) < n {
		return errs.New(errs.ErrKindQueryFailed,
			fmt.Sprintf("catalog row has %d columns, want %d", len(row), n))
	}
	return nil
}

func columnFromRow(row database.Row) (ColumnRecord, error) {
	if err := needColumns(row, 4); err != nil {
		return ColumnRecord{}, err
	}
	return ColumnRecord{
		Name:     asString(row[0]),
		Type:     asString(row[1]),
		Nullable: asBool(row[2]),
		Default:  asOptString(row[3]),
	}, nil
}

func constraintFromRow(row database.Row) (ConstraintRecord, error) {
	if err := needColumns(row, 2); err != nil {
		return ConstraintRecord{}, err
	}
	return ConstraintRecord{Name: asString(row[0]), ColumnNames: asStrings(row[1])}, nil
}

func checkFromRow(row database.Row) (CheckConstraintRecord, error) {
	if err := needColumns(row, 2); err != nil {
		return CheckConstraintRecord{}, err
	}
	return CheckConstraintRecord{Name: asString(row[0]), SQLText: asString(row[1])}, nil
}

func indexFromRow(row database.Row) (IndexRecord, error) {
	if err := needColumns(row, 3); err != nil {
		return IndexRecord{}, err
	}
	return IndexRecord{
		Name:        asString(row[0]),
		ColumnNames: indexColumns(asString(row[1])),
		Unique:      asBool(row[2]),
	}, nil
}

// Value coercion. Rows arrive either as native driver values
// (database/sql) or as JSON-decoded values from the HTTP client, so each
// helper accepts both shapes.

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}

func asOptString(v any) *string {
	if v == nil {
		return nil
	}
	s := asString(v)
	return &s
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int:
		return b != 0
	case int32:
		return b != 0
	case int64:
		return b != 0
	case float64:
		return b != 0
	case string, []byte:
		switch strings.ToLower(strings.TrimSpace(asString(b))) {
		case "true", "t", "yes", "y", "1":
			return true
		}
	}
	return false
}

// asStrings accepts a driver list, a JSON array, or DuckDB's text form
// of a list ("[a, b]").
func asStrings(v any) []string {
	switch l := v.(type) {
	case nil:
		return []string{}
	case []string:
		return append([]string{}, l...)
	case []any:
		out := make([]string, len(l))
		for i, e := range l {
			out[i] = asString(e)
		}
		return out
	case string, []byte:
		text := strings.TrimSpace(asString(l))
		text = strings.TrimSuffix(strings.TrimPrefix(text, "["), "]")
		if strings.TrimSpace(text) == "" {
			return []string{}
		}
		parts := strings.Split(text, ",")
		out := make([]string, len(parts))
		for i, p := range parts {
			out[i] = strings.Trim(strings.TrimSpace(p), `"`)
		}
		return out
	default:
		return []string{asString(l)}
	}
}
