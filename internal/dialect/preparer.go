package dialect

import (
	"regexp"
	"strings"
)

// legalIdentRe matches identifiers made only of characters DuckDB accepts
// unquoted.
var legalIdentRe = regexp.MustCompile(`^[A-Za-z0-9_$]+$`)

// Preparer quotes identifiers for embedding in generated SQL.
// It is read-only after construction and safe for concurrent use.
type Preparer struct {
	reserved      map[string]struct{}
	caseSensitive bool
}

// NewPreparer builds a preparer over the DuckDB reserved word set.
// With caseSensitive set, any identifier that is not all lowercase is
// quoted so its case survives DuckDB's case folding.
func NewPreparer(caseSensitive bool) *Preparer {
	reserved := make(map[string]struct{}, len(reservedWords))
	for _, w := range reservedWords {
		reserved[strings.ToUpper(w)] = struct{}{}
	}
	return &Preparer{reserved: reserved, caseSensitive: caseSensitive}
}

// IsReserved reports whether word is a reserved keyword, ignoring case.
func (p *Preparer) IsReserved(word string) bool {
	_, ok := p.reserved[strings.ToUpper(word)]
	return ok
}

// RequiresQuotes reports whether ident cannot be emitted bare.
func (p *Preparer) RequiresQuotes(ident string) bool {
	switch {
	case ident == "":
		return true
	case p.IsReserved(ident):
		return true
	case !legalIdentRe.MatchString(ident):
		return true
	case ident[0] == '$' || (ident[0] >= '0' && ident[0] <= '9'):
		return true
	case p.caseSensitive && ident != strings.ToLower(ident):
		return true
	}
	return false
}

// Quote returns ident quoted only when RequiresQuotes says so.
func (p *Preparer) Quote(ident string) string {
	if p.RequiresQuotes(ident) {
		return QuoteIdentifier(ident)
	}
	return ident
}

// FormatTable renders schema.table with each part prepared.
// A blank schema is omitted.
func (p *Preparer) FormatTable(schema, table string) string {
	if strings.TrimSpace(schema) == "" {
		return p.Quote(table)
	}
	return p.Quote(schema) + "." + p.Quote(table)
}

// QuoteIdentifier wraps ident in double quotes, doubling any embedded
// double quote.
func QuoteIdentifier(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
