package mapper

import (
	"errors"
	"fmt"

	"github.com/hurou927/erm-core/internal/reference"
	"github.com/hurou927/erm-core/internal/schema"
	"github.com/hurou927/erm-core/internal/wire"
)

var (
	// ErrSourceTableMissing is returned when a relationship's source table is not in the diagram.
	ErrSourceTableMissing = errors.New("mapper: relationship source table not found")

	// ErrMissingPrimaryKey is returned when a relationship references the
	// primary key of a table that has none.
	ErrMissingPrimaryKey = errors.New("mapper: source table has no primary key")
)

// MapRelationships flattens the relationships of every table, in table order
// and then declaration order. It fails when a relationship's source table is
// missing or when a primary-key reference points at a table without one.
func MapRelationships(tables []wire.Table) ([]*schema.Relationship, error) {
	relationships := []*schema.Relationship{}
	for _, tbl := range tables {
		for _, raw := range tbl.Connections.Relationships {
			rel, err := mapRelationship(raw, tables)
			if err != nil {
				return nil, fmt.Errorf("relationship %q: %w", raw.Name, err)
			}
			relationships = append(relationships, rel)
		}
	}
	return relationships, nil
}

func mapRelationship(raw wire.Relationship, tables []wire.Table) (*schema.Relationship, error) {
	source := findRawTable(tables, reference.Parse(raw.Source).TableName)
	if source == nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceTableMissing, raw.Source)
	}

	referred, err := referredColumn(raw, source)
	if err != nil {
		return nil, err
	}

	fkNames := make([]string, 0, len(raw.FKColumns.FKColumn))
	for _, c := range raw.FKColumns.FKColumn {
		fkNames = append(fkNames, c.FKColumnName)
	}

	return &schema.Relationship{
		Name:                  raw.Name,
		Source:                raw.Source,
		Target:                raw.Target,
		FKColumnNames:         fkNames,
		ParentCardinality:     schema.Cardinality(raw.ParentCardinality),
		ChildCardinality:      schema.Cardinality(raw.ChildCardinality),
		ReferredColumn:        referred,
		ReferredColumnOptions: referredColumnOptions(source),
		OnDeleteAction:        schema.ReferenceOperation(raw.OnDeleteAction),
		OnUpdateAction:        schema.ReferenceOperation(raw.OnUpdateAction),
		Bendpoints:            raw.Bendpoints,
	}, nil
}

// referredColumn resolves the parent-side key: the primary key column when
// the relationship references the PK, else the named simple unique column,
// else the named compound unique key.
func referredColumn(raw wire.Relationship, source *wire.Table) (string, error) {
	if raw.ReferenceForPK {
		for _, item := range source.Columns.Items {
			if !item.IsGroup() && item.Column.PrimaryKey {
				return item.Column.PhysicalName, nil
			}
		}
		return "", fmt.Errorf("%w: %s", ErrMissingPrimaryKey, source.PhysicalName)
	}
	if raw.ReferredSimpleUniqueColumn != "" {
		return raw.ReferredSimpleUniqueColumn, nil
	}
	return raw.ReferredCompoundUniqueKey, nil
}

// referredColumnOptions lists the PK and unique columns in column order,
// followed by the compound unique key names.
func referredColumnOptions(source *wire.Table) []string {
	options := []string{}
	for _, item := range source.Columns.Items {
		if item.IsGroup() {
			continue
		}
		if item.Column.PrimaryKey || item.Column.UniqueKey {
			options = append(options, item.Column.PhysicalName)
		}
	}
	for _, k := range source.CompoundUniqueKeyList.CompoundUniqueKeys {
		options = append(options, k.Name)
	}
	return options
}
