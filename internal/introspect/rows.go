// Package introspect builds a wire diagram from a live PostgreSQL catalog.
package introspect

// ColumnRow is one column of one table.
type ColumnRow struct {
	Schema       string
	Table        string
	TableComment string
	Column       string
	DataType     string // format_type output, e.g. "character varying(255)"
	Nullable     bool
	Position     int
	Default      string
	Identity     bool
	Comment      string
}

// KeyRow is one member column of a primary key or unique constraint.
type KeyRow struct {
	Schema     string
	Table      string
	Constraint string
	Primary    bool
	Column     string
	Position   int
}

// ForeignKeyRow is one column pair of a foreign key constraint.
type ForeignKeyRow struct {
	Name         string
	ChildSchema  string
	ChildTable   string
	ChildColumn  string
	ParentSchema string
	ParentTable  string
	ParentColumn string
	Position     int
	OnDelete     string // pg_constraint.confdeltype
	OnUpdate     string // pg_constraint.confupdtype
}

// IndexRow is one key column of a secondary index that does not back a constraint.
type IndexRow struct {
	Schema   string
	Table    string
	Index    string
	Method   string
	Unique   bool
	Column   string
	Position int
	Desc     bool
}

// Rows is everything read from the catalog.
type Rows struct {
	Columns     []ColumnRow
	Keys        []KeyRow
	ForeignKeys []ForeignKeyRow
	Indexes     []IndexRow
}
