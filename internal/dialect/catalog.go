package dialect

import (
	"context"

	"github.com/koustreak/duckwire/internal/database"
)

// TableInfo is everything the inspector knows about one table
type TableInfo struct {
	Name        string                  `json:"name"`
	Columns     []ColumnRecord          `json:"columns"`
	PrimaryKey  []ConstraintRecord      `json:"primary_key"`
	ForeignKeys []ConstraintRecord      `json:"foreign_keys"`
	Uniques     []ConstraintRecord      `json:"unique_constraints"`
	Checks      []CheckConstraintRecord `json:"check_constraints"`
	Indexes     []IndexRecord           `json:"indexes"`
}

// ViewInfo is a view and its SQL definition
type ViewInfo struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

// Catalog is a point-in-time snapshot of one schema
type Catalog struct {
	Schema    string      `json:"schema"`
	Tables    []TableInfo `json:"tables"`
	Views     []ViewInfo  `json:"views"`
	Sequences []string    `json:"sequences"`
}

// InspectTable collects columns, keys, constraints and indexes of table.
// It issues one catalog query per facet.
func (i *Inspector) InspectTable(ctx context.Context, conn database.Conn, schema, table string) (*TableInfo, error) {
	ti := &TableInfo{Name: table}
	var err error

	if ti.Columns, err = i.GetColumns(ctx, conn, schema, table); err != nil {
		return nil, err
	}
	if ti.PrimaryKey, err = i.GetPKConstraint(ctx, conn, schema, table); err != nil {
		return nil, err
	}
	if ti.ForeignKeys, err = i.GetForeignKeys(ctx, conn, schema, table); err != nil {
		return nil, err
	}
	if ti.Uniques, err = i.GetUniqueConstraints(ctx, conn, schema, table); err != nil {
		return nil, err
	}
	if ti.Checks, err = i.GetCheckConstraints(ctx, conn, schema, table); err != nil {
		return nil, err
	}
	if ti.Indexes, err = i.GetIndexes(ctx, conn, schema, table); err != nil {
		return nil, err
	}
	return ti, nil
}

// InspectCatalog builds a full snapshot of schema from the individual
// catalog calls. The snapshot is not transactional: objects created
// between calls may or may not appear.
func (i *Inspector) InspectCatalog(ctx context.Context, conn database.Conn, schema string) (*Catalog, error) {
	schema = NormalizeSchema(schema)

	tables, err := i.GetTableNames(ctx, conn, schema)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{
		Schema: schema,
		Tables: make([]TableInfo, 0, len(tables)),
		Views:  []ViewInfo{},
	}
	for _, table := range tables {
		ti, err := i.InspectTable(ctx, conn, schema, table)
		if err != nil {
			return nil, err
		}
		cat.Tables = append(cat.Tables, *ti)
	}

	views, err := i.GetViewNames(ctx, conn, schema)
	if err != nil {
		return nil, err
	}
	for _, view := range views {
		def, err := i.GetViewDefinition(ctx, conn, schema, view)
		if err != nil {
			return nil, err
		}
		cat.Views = append(cat.Views, ViewInfo{Name: view, Definition: def})
	}

	if cat.Sequences, err = i.GetSequenceNames(ctx, conn, schema); err != nil {
		return nil, err
	}
	return cat, nil
}
