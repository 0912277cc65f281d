package introspect

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/hurou927/erm-core/internal/wire"
)

// Querier is the subset of *pgxpool.Pool used here.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ Querier = (*pgxpool.Pool)(nil)

// Introspect reads the catalog of the given schemas and assembles a diagram.
func Introspect(ctx context.Context, db Querier, schemas []string) (*wire.Diagram, error) {
	rows, err := ReadCatalog(ctx, db, schemas)
	if err != nil {
		return nil, err
	}
	return Assemble(rows), nil
}

// ReadCatalog runs the catalog queries concurrently.
func ReadCatalog(ctx context.Context, db Querier, schemas []string) (*Rows, error) {
	var rows Rows
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if rows.Columns, err = queryColumns(ctx, db, schemas); err != nil {
			return fmt.Errorf("querying tables and columns: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if rows.Keys, err = queryKeys(ctx, db, schemas); err != nil {
			return fmt.Errorf("querying primary and unique keys: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if rows.ForeignKeys, err = queryForeignKeys(ctx, db, schemas); err != nil {
			return fmt.Errorf("querying foreign keys: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if rows.Indexes, err = queryIndexes(ctx, db, schemas); err != nil {
			return fmt.Errorf("querying indexes: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &rows, nil
}

func queryColumns(ctx context.Context, db Querier, schemas []string) ([]ColumnRow, error) {
	query := `
		SELECT
			n.nspname AS schema_name,
			c.relname AS table_name,
			COALESCE(obj_description(c.oid, 'pg_class'), '') AS table_comment,
			a.attname AS column_name,
			format_type(a.atttypid, a.atttypmod) AS data_type,
			NOT a.attnotnull AS is_nullable,
			a.attnum AS ordinal_position,
			COALESCE(pg_get_expr(d.adbin, d.adrelid), '') AS column_default,
			a.attidentity <> '' AS is_identity,
			COALESCE(col_description(c.oid, a.attnum), '') AS column_comment
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_attribute a ON a.attrelid = c.oid
		LEFT JOIN pg_attrdef d ON d.adrelid = c.oid AND d.adnum = a.attnum
		WHERE c.relkind = 'r'
			AND a.attnum > 0
			AND NOT a.attisdropped
			AND n.nspname = ANY($1)
		ORDER BY n.nspname, c.relname, a.attnum
	`

	rows, err := db.Query(ctx, query, schemas)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ColumnRow
	for rows.Next() {
		var r ColumnRow
		if err := rows.Scan(&r.Schema, &r.Table, &r.TableComment, &r.Column, &r.DataType,
			&r.Nullable, &r.Position, &r.Default, &r.Identity, &r.Comment); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func queryKeys(ctx context.Context, db Querier, schemas []string) ([]KeyRow, error) {
	query := `
		SELECT
			n.nspname AS schema_name,
			c.relname AS table_name,
			con.conname AS constraint_name,
			con.contype = 'p' AS is_primary,
			a.attname AS column_name,
			u.ord AS key_position
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		CROSS JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS u(attnum, ord)
		JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = u.attnum
		WHERE con.contype IN ('p', 'u')
			AND n.nspname = ANY($1)
		ORDER BY n.nspname, c.relname, con.conname, u.ord
	`

	rows, err := db.Query(ctx, query, schemas)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []KeyRow
	for rows.Next() {
		var r KeyRow
		if err := rows.Scan(&r.Schema, &r.Table, &r.Constraint, &r.Primary, &r.Column, &r.Position); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func queryForeignKeys(ctx context.Context, db Querier, schemas []string) ([]ForeignKeyRow, error) {
	query := `
		SELECT
			con.conname AS fk_name,
			cn.nspname AS child_schema,
			cc.relname AS child_table,
			ca.attname AS child_column,
			pn.nspname AS parent_schema,
			pc.relname AS parent_table,
			pa.attname AS parent_column,
			u.ord AS key_position,
			con.confdeltype::text AS on_delete,
			con.confupdtype::text AS on_update
		FROM pg_constraint con
		JOIN pg_class cc ON cc.oid = con.conrelid
		JOIN pg_namespace cn ON cn.oid = cc.relnamespace
		JOIN pg_class pc ON pc.oid = con.confrelid
		JOIN pg_namespace pn ON pn.oid = pc.relnamespace
		CROSS JOIN LATERAL unnest(con.conkey, con.confkey) WITH ORDINALITY AS u(child_attnum, parent_attnum, ord)
		JOIN pg_attribute ca ON ca.attrelid = cc.oid AND ca.attnum = u.child_attnum
		JOIN pg_attribute pa ON pa.attrelid = pc.oid AND pa.attnum = u.parent_attnum
		WHERE con.contype = 'f'
			AND cn.nspname = ANY($1)
		ORDER BY cn.nspname, cc.relname, con.conname, u.ord
	`

	rows, err := db.Query(ctx, query, schemas)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ForeignKeyRow
	for rows.Next() {
		var r ForeignKeyRow
		if err := rows.Scan(&r.Name, &r.ChildSchema, &r.ChildTable, &r.ChildColumn,
			&r.ParentSchema, &r.ParentTable, &r.ParentColumn, &r.Position,
			&r.OnDelete, &r.OnUpdate); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func queryIndexes(ctx context.Context, db Querier, schemas []string) ([]IndexRow, error) {
	query := `
		SELECT
			n.nspname AS schema_name,
			c.relname AS table_name,
			ic.relname AS index_name,
			am.amname AS method,
			i.indisunique AS is_unique,
			a.attname AS column_name,
			u.ord AS key_position,
			(i.indoption[(u.ord - 1)::int] & 1) = 1 AS is_desc
		FROM pg_index i
		JOIN pg_class c ON c.oid = i.indrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_class ic ON ic.oid = i.indexrelid
		JOIN pg_am am ON am.oid = ic.relam
		CROSS JOIN LATERAL unnest(i.indkey::int2[]) WITH ORDINALITY AS u(attnum, ord)
		JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = u.attnum
		WHERE c.relkind = 'r'
			AND NOT i.indisprimary
			AND NOT EXISTS (SELECT 1 FROM pg_constraint k WHERE k.conindid = i.indexrelid)
			AND n.nspname = ANY($1)
		ORDER BY n.nspname, c.relname, ic.relname, u.ord
	`

	rows, err := db.Query(ctx, query, schemas)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IndexRow
	for rows.Next() {
		var r IndexRow
		if err := rows.Scan(&r.Schema, &r.Table, &r.Index, &r.Method, &r.Unique,
			&r.Column, &r.Position, &r.Desc); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
