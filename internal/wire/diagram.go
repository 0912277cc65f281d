// Package wire holds the inbound diagram document as produced by external tooling.
package wire

import "github.com/hurou927/erm-core/internal/schema"

// Diagram is the top-level diagram document.
type Diagram struct {
	DiagramSettings DiagramSettings `json:"diagramSettings" yaml:"diagramSettings"`
	DiagramWalkers  DiagramWalkers  `json:"diagramWalkers" yaml:"diagramWalkers"`
	ColumnGroups    *ColumnGroups   `json:"columnGroups,omitempty" yaml:"columnGroups,omitempty"`
	VDiagrams       *VDiagrams      `json:"vdiagrams,omitempty" yaml:"vdiagrams,omitempty"`
}

// DiagramSettings holds the global settings.
type DiagramSettings struct {
	Database string `json:"database" yaml:"database"`
	ViewMode int    `json:"viewMode" yaml:"viewMode"`
}

// DiagramWalkers holds the tables.
type DiagramWalkers struct {
	Tables []Table `json:"tables,omitempty" yaml:"tables,omitempty"`
}

// Table is a raw table record.
type Table struct {
	PhysicalName          string                `json:"physicalName" yaml:"physicalName"`
	LogicalName           string                `json:"logicalName" yaml:"logicalName"`
	Description           string                `json:"description" yaml:"description"`
	Height                int                   `json:"height" yaml:"height"`
	Width                 int                   `json:"width" yaml:"width"`
	FontName              string                `json:"fontName,omitempty" yaml:"fontName,omitempty"`
	FontSize              int                   `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	X                     int                   `json:"x" yaml:"x"`
	Y                     int                   `json:"y" yaml:"y"`
	Color                 schema.Color          `json:"color" yaml:"color"`
	Connections           Connections           `json:"connections" yaml:"connections"`
	TableConstraint       string                `json:"tableConstraint,omitempty" yaml:"tableConstraint,omitempty"`
	PrimaryKeyName        string                `json:"primaryKeyName,omitempty" yaml:"primaryKeyName,omitempty"`
	Option                string                `json:"option,omitempty" yaml:"option,omitempty"`
	Columns               Columns               `json:"columns" yaml:"columns"`
	Indexes               Indexes               `json:"indexes" yaml:"indexes"`
	CompoundUniqueKeyList CompoundUniqueKeyList `json:"compoundUniqueKeyList" yaml:"compoundUniqueKeyList"`
}

// Connections holds the relationships declared on a table.
type Connections struct {
	Relationships []Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// Relationship is a raw relationship record.
type Relationship struct {
	Name                       string    `json:"name" yaml:"name"`
	Source                     string    `json:"source" yaml:"source"`
	Target                     string    `json:"target" yaml:"target"`
	Bendpoints                 any       `json:"bendpoints,omitempty" yaml:"bendpoints,omitempty"`
	FKColumns                  FKColumns `json:"fkColumns" yaml:"fkColumns"`
	ParentCardinality          string    `json:"parentCardinality" yaml:"parentCardinality"`
	ChildCardinality           string    `json:"childCardinality" yaml:"childCardinality"`
	ReferenceForPK             bool      `json:"referenceForPk" yaml:"referenceForPk"`
	OnDeleteAction             string    `json:"onDeleteAction,omitempty" yaml:"onDeleteAction,omitempty"`
	OnUpdateAction             string    `json:"onUpdateAction,omitempty" yaml:"onUpdateAction,omitempty"`
	ReferredSimpleUniqueColumn string    `json:"referredSimpleUniqueColumn,omitempty" yaml:"referredSimpleUniqueColumn,omitempty"`
	ReferredCompoundUniqueKey  string    `json:"referredCompoundUniqueKey,omitempty" yaml:"referredCompoundUniqueKey,omitempty"`
}

// FKColumns lists the child-side columns of a relationship.
type FKColumns struct {
	FKColumn []FKColumn `json:"fkColumn" yaml:"fkColumn"`
}

// FKColumn names one child-side column.
type FKColumn struct {
	FKColumnName string `json:"fkColumnName" yaml:"fkColumnName"`
}

// Columns holds the column slots of a table.
type Columns struct {
	Items []ColumnItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// NormalColumn is an inline raw column.
type NormalColumn struct {
	PhysicalName   string `json:"physicalName" yaml:"physicalName"`
	LogicalName    string `json:"logicalName,omitempty" yaml:"logicalName,omitempty"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	ColumnType     string `json:"columnType,omitempty" yaml:"columnType,omitempty"`
	Length         *int   `json:"length,omitempty" yaml:"length,omitempty"`
	Decimal        *int   `json:"decimal,omitempty" yaml:"decimal,omitempty"`
	Args           string `json:"args,omitempty" yaml:"args,omitempty"`
	Unsigned       bool   `json:"unsigned,omitempty" yaml:"unsigned,omitempty"`
	NotNull        bool   `json:"notNull,omitempty" yaml:"notNull,omitempty"`
	UniqueKey      bool   `json:"uniqueKey,omitempty" yaml:"uniqueKey,omitempty"`
	DefaultValue   string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	PrimaryKey     bool   `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
	AutoIncrement  bool   `json:"autoIncrement,omitempty" yaml:"autoIncrement,omitempty"`
	ReferredColumn string `json:"referredColumn,omitempty" yaml:"referredColumn,omitempty"`
	Relationship   string `json:"relationship,omitempty" yaml:"relationship,omitempty"`
}

// Indexes holds the indexes of a table.
type Indexes struct {
	Indexes []Index `json:"indexes,omitempty" yaml:"indexes,omitempty"`
}

// Index is a raw index record.
type Index struct {
	Name        string       `json:"name" yaml:"name"`
	IndexType   string       `json:"indexType" yaml:"indexType"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	FullText    bool         `json:"fullText,omitempty" yaml:"fullText,omitempty"`
	NonUnique   bool         `json:"nonUnique,omitempty" yaml:"nonUnique,omitempty"`
	Columns     IndexColumns `json:"columns" yaml:"columns"`
}

// IndexColumns lists the key columns of an index.
type IndexColumns struct {
	Columns []IndexColumn `json:"columns" yaml:"columns"`
}

// IndexColumn is one key column; ColumnID is a reference string.
type IndexColumn struct {
	ColumnID string `json:"columnId" yaml:"columnId"`
	Desc     bool   `json:"desc,omitempty" yaml:"desc,omitempty"`
}

// CompoundUniqueKeyList holds the compound unique keys of a table.
type CompoundUniqueKeyList struct {
	CompoundUniqueKeys []CompoundUniqueKey `json:"compoundUniqueKeys,omitempty" yaml:"compoundUniqueKeys,omitempty"`
}

// CompoundUniqueKey is a raw compound unique key; member ids are reference strings.
type CompoundUniqueKey struct {
	Name    string       `json:"name" yaml:"name"`
	Columns IndexColumns `json:"columns" yaml:"columns"`
}

// ColumnGroups holds the shared column groups.
type ColumnGroups struct {
	ColumnGroups []ColumnGroup `json:"columnGroups,omitempty" yaml:"columnGroups,omitempty"`
}

// ColumnGroup is a raw column group.
type ColumnGroup struct {
	ColumnGroupName string             `json:"columnGroupName" yaml:"columnGroupName"`
	Columns         ColumnGroupColumns `json:"columns" yaml:"columns"`
}

// ColumnGroupColumns lists the columns of a group.
type ColumnGroupColumns struct {
	NormalColumns []NormalColumn `json:"normalColumns,omitempty" yaml:"normalColumns,omitempty"`
}

// VDiagrams holds the virtual diagrams.
type VDiagrams struct {
	VDiagrams []VDiagram `json:"vdiagrams,omitempty" yaml:"vdiagrams,omitempty"`
}

// VDiagram is a raw virtual diagram.
type VDiagram struct {
	VDiagramName string         `json:"vdiagramName" yaml:"vdiagramName"`
	Color        *schema.Color  `json:"color,omitempty" yaml:"color,omitempty"`
	VTables      VTables        `json:"vtables" yaml:"vtables"`
	WalkerNotes  map[string]any `json:"walkerNotes,omitempty" yaml:"walkerNotes,omitempty"`
	WalkerGroups map[string]any `json:"walkerGroups,omitempty" yaml:"walkerGroups,omitempty"`
}

// VTables lists the table placements of a virtual diagram.
type VTables struct {
	VTables []VTable `json:"vtables,omitempty" yaml:"vtables,omitempty"`
}

// VTable is one table placement.
type VTable struct {
	TableID  string `json:"tableId" yaml:"tableId"`
	X        int    `json:"x" yaml:"x"`
	Y        int    `json:"y" yaml:"y"`
	FontName string `json:"fontName" yaml:"fontName"`
	FontSize int    `json:"fontSize" yaml:"fontSize"`
}
