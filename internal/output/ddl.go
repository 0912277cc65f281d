// Package output renders a diagram as PostgreSQL DDL.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hurou927/erm-core/internal/graph"
	"github.com/hurou927/erm-core/internal/reference"
	"github.com/hurou927/erm-core/internal/schema"
)

// Writer writes DDL statements.
type Writer struct {
	w      io.Writer
	groups []*schema.ColumnGroup
}

// NewWriter creates a DDL writer. groups resolves column group references.
func NewWriter(w io.Writer, groups []*schema.ColumnGroup) *Writer {
	return &Writer{w: w, groups: groups}
}

// WriteHeader writes BEGIN.
func (dw *Writer) WriteHeader() error {
	_, err := fmt.Fprint(dw.w, "BEGIN;\n\n")
	return err
}

// WriteFooter writes COMMIT.
func (dw *Writer) WriteFooter() error {
	_, err := fmt.Fprintln(dw.w, "COMMIT;")
	return err
}

// WriteTable writes a CREATE TABLE statement with its key constraints,
// followed by comments for the table and column descriptions.
func (dw *Writer) WriteTable(t *schema.Table) error {
	cols := t.ExpandColumns(dw.groups)

	var lines []string
	var pk []string
	for _, c := range cols {
		lines = append(lines, "    "+columnDef(c))
		if c.PrimaryKey {
			pk = append(pk, c.PhysicalName)
		}
	}
	if len(pk) > 0 {
		lines = append(lines, "    "+constraint(t.PrimaryKeyName)+"PRIMARY KEY ("+quoteIdents(pk)+")")
	}
	for _, c := range cols {
		if c.Unique && !c.PrimaryKey {
			lines = append(lines, "    UNIQUE ("+QuoteIdent(c.PhysicalName)+")")
		}
	}
	for _, k := range t.CompoundUniqueKeys {
		lines = append(lines, "    "+constraint(k.Name)+"UNIQUE ("+quoteIdents(k.Columns)+")")
	}
	if t.TableConstraint != "" {
		lines = append(lines, "    "+t.TableConstraint)
	}

	if _, err := fmt.Fprintf(dw.w, "CREATE TABLE %s (\n%s\n);\n", QuoteIdent(t.PhysicalName), strings.Join(lines, ",\n")); err != nil {
		return err
	}

	if t.Description != "" {
		if _, err := fmt.Fprintf(dw.w, "COMMENT ON TABLE %s IS %s;\n", QuoteIdent(t.PhysicalName), QuoteLiteral(t.Description)); err != nil {
			return err
		}
	}
	for _, c := range cols {
		if c.Description == "" {
			continue
		}
		if _, err := fmt.Fprintf(dw.w, "COMMENT ON COLUMN %s.%s IS %s;\n",
			QuoteIdent(t.PhysicalName), QuoteIdent(c.PhysicalName), QuoteLiteral(c.Description)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(dw.w)
	return err
}

// WriteIndexes writes a CREATE INDEX statement per index of t.
func (dw *Writer) WriteIndexes(t *schema.Table) error {
	for _, idx := range t.Indexes {
		keys := make([]string, 0, len(idx.Columns))
		for _, c := range idx.Columns {
			key := QuoteIdent(reference.Parse(c.ColumnID).ColumnName)
			if c.Desc {
				key += " DESC"
			}
			keys = append(keys, key)
		}

		stmt := "CREATE "
		if !idx.NonUnique {
			stmt += "UNIQUE "
		}
		stmt += "INDEX " + QuoteIdent(idx.Name) + " ON " + QuoteIdent(t.PhysicalName)
		if idx.IndexType != "" {
			stmt += " USING " + strings.ToLower(idx.IndexType)
		}
		stmt += " (" + strings.Join(keys, ", ") + ");"

		if _, err := fmt.Fprintln(dw.w, stmt); err != nil {
			return err
		}
	}
	return nil
}

// WriteForeignKey writes an ALTER TABLE ... ADD CONSTRAINT for rel. The
// referenced columns are those of the compound unique key named by
// ReferredColumn, or ReferredColumn itself.
func (dw *Writer) WriteForeignKey(child, parent *schema.Table, rel *schema.Relationship) error {
	referred := []string{rel.ReferredColumn}
	if k := parent.CompoundUniqueKey(rel.ReferredColumn); k != nil {
		referred = k.Columns
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD %sFOREIGN KEY (%s) REFERENCES %s (%s)",
		QuoteIdent(child.PhysicalName), constraint(rel.Name),
		quoteIdents(rel.FKColumnNames), QuoteIdent(parent.PhysicalName), quoteIdents(referred))
	if rel.OnDeleteAction != schema.OpNoAction {
		stmt += " ON DELETE " + string(rel.OnDeleteAction)
	}
	if rel.OnUpdateAction != schema.OpNoAction {
		stmt += " ON UPDATE " + string(rel.OnUpdateAction)
	}
	_, err := fmt.Fprintln(dw.w, stmt+";")
	return err
}

// WriteDiagram writes the whole schema in one transaction: tables with
// parents first, then indexes, then foreign keys. Relationships whose tables
// are missing are skipped.
func WriteDiagram(w io.Writer, tables []*schema.Table, relationships []*schema.Relationship, groups []*schema.ColumnGroup) error {
	g := graph.Build(tables, relationships, groups)
	dw := NewWriter(w, groups)

	if err := dw.WriteHeader(); err != nil {
		return err
	}

	order := graph.Ordered(g)
	for _, name := range order {
		if err := dw.WriteTable(g.Tables[name]); err != nil {
			return fmt.Errorf("writing table %s: %w", name, err)
		}
	}

	wroteIndex := false
	for _, name := range order {
		t := g.Tables[name]
		if len(t.Indexes) == 0 {
			continue
		}
		if err := dw.WriteIndexes(t); err != nil {
			return fmt.Errorf("writing indexes of %s: %w", name, err)
		}
		wroteIndex = true
	}
	if wroteIndex {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	wroteFK := false
	for _, rel := range relationships {
		parent := g.Tables[reference.Parse(rel.Source).TableName]
		child := g.Tables[reference.Parse(rel.Target).TableName]
		if parent == nil || child == nil {
			continue
		}
		if err := dw.WriteForeignKey(child, parent, rel); err != nil {
			return fmt.Errorf("writing relationship %s: %w", rel.Name, err)
		}
		wroteFK = true
	}
	if wroteFK {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return dw.WriteFooter()
}

func constraint(name string) string {
	if name == "" {
		return ""
	}
	return "CONSTRAINT " + QuoteIdent(name) + " "
}

func columnDef(c *schema.Column) string {
	def := QuoteIdent(c.PhysicalName) + " " + columnType(c)
	if c.AutoIncrement {
		def += " GENERATED BY DEFAULT AS IDENTITY"
	}
	if c.NotNull || c.PrimaryKey {
		def += " NOT NULL"
	}
	if c.DefaultValue != "" && !c.AutoIncrement {
		def += " DEFAULT " + c.DefaultValue
	}
	return def
}

// columnType renders the type with its length or precision arguments.
// Columns whose type could not be resolved are written as text.
func columnType(c *schema.Column) string {
	if c.Type == nil {
		return "text"
	}
	name := c.Type.Name
	switch {
	case c.Type.HasLength() && c.Length != nil:
		return name + "(" + strconv.Itoa(*c.Length) + ")"
	case c.Type.HasPrecision() && c.Length != nil && c.Decimal != nil:
		return name + "(" + strconv.Itoa(*c.Length) + ", " + strconv.Itoa(*c.Decimal) + ")"
	case c.Type.HasPrecision() && c.Length != nil:
		return name + "(" + strconv.Itoa(*c.Length) + ")"
	default:
		return name
	}
}
