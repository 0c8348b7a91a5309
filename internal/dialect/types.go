package dialect

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/koustreak/duckwire/internal/errs"
)

// TypeSpec is a portable column type: a tag plus its optional parameters.
// Length applies to character types, Precision and Scale to numeric ones.
type TypeSpec struct {
	Name      string
	Length    int
	Precision int
	Scale     *int
}

// typeOverrides maps portable tags to the DuckDB spelling that replaces
// them. Tags not listed render through the generic rules unchanged.
var typeOverrides = map[string]string{
	"REAL":      "FLOAT",
	"NUMERIC":   "DECIMAL",
	"DATETIME":  "TIMESTAMP",
	"CLOB":      "BLOB",
	"NCLOB":     "BLOB",
	"BINARY":    "BLOB",
	"VARBINARY": "BLOB",
	"TEXT":      "VARCHAR",
}

// TypeMapper renders portable types as DuckDB DDL type keywords.
type TypeMapper struct {
	overrides map[string]string
}

// NewTypeMapper returns a mapper over the DuckDB override table.
func NewTypeMapper() *TypeMapper {
	return &TypeMapper{overrides: typeOverrides}
}

// Native returns the DuckDB tag for tag, ignoring case.
func (m *TypeMapper) Native(tag string) string {
	upper := strings.ToUpper(strings.TrimSpace(tag))
	if native, ok := m.overrides[upper]; ok {
		return native
	}
	return upper
}

// Render produces the DDL spelling of t.
func (m *TypeMapper) Render(t TypeSpec) string {
	name := m.Native(t.Name)

	switch name {
	case "VARCHAR", "CHAR", "NVARCHAR", "NCHAR":
		if t.Length > 0 {
			return fmt.Sprintf("%s(%d)", name, t.Length)
		}
	case "DECIMAL":
		switch {
		case t.Precision <= 0:
		case t.Scale == nil:
			return fmt.Sprintf("%s(%d)", name, t.Precision)
		default:
			return fmt.Sprintf("%s(%d, %d)", name, t.Precision, *t.Scale)
		}
	case "FLOAT":
		if t.Precision > 0 {
			return fmt.Sprintf("%s(%d)", name, t.Precision)
		}
	}
	return name
}

// typeSpecRe accepts NAME, NAME(n) and NAME(n, m).
var typeSpecRe = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_ ]*?)\s*(?:\(\s*(\d+)\s*(?:,\s*(\d+)\s*)?\))?\s*$`)

// ParseTypeSpec parses text such as "NUMERIC(10, 2)" or "text(255)".
// A single parameter is a length for character types and a precision
// otherwise.
func ParseTypeSpec(text string) (TypeSpec, error) {
	m := typeSpecRe.FindStringSubmatch(text)
	if m == nil {
		return TypeSpec{}, errs.New(errs.ErrKindInvalidInput, fmt.Sprintf("unrecognised type %q", text))
	}

	spec := TypeSpec{Name: strings.ToUpper(m[1])}
	if m[2] == "" {
		return spec, nil
	}

	first, _ := strconv.Atoi(m[2])
	switch spec.Name {
	case "VARCHAR", "CHAR", "NVARCHAR", "NCHAR", "TEXT", "CLOB", "NCLOB", "BINARY", "VARBINARY":
		spec.Length = first
	default:
		spec.Precision = first
	}
	if m[3] != "" {
		scale, _ := strconv.Atoi(m[3])
		spec.Scale = &scale
	}
	return spec, nil
}
