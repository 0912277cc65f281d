package schema

import "strings"

// TypeFamily groups column types by semantics.
type TypeFamily string

const (
	FamilyInteger   TypeFamily = "integer"
	FamilyDecimal   TypeFamily = "decimal"
	FamilyFloat     TypeFamily = "float"
	FamilyString    TypeFamily = "string"
	FamilyText      TypeFamily = "text"
	FamilyEnum      TypeFamily = "enum"
	FamilyBoolean   TypeFamily = "boolean"
	FamilyDate      TypeFamily = "date"
	FamilyTime      TypeFamily = "time"
	FamilyTimestamp TypeFamily = "timestamp"
	FamilyBinary    TypeFamily = "binary"
	FamilyJSON      TypeFamily = "json"
	FamilyUUID      TypeFamily = "uuid"
	FamilyOther     TypeFamily = "other"
)

// ColumnType is a resolved column type. Name is the normalized type name
// without size arguments, e.g. "varchar" or "timestamp with time zone".
type ColumnType struct {
	Family TypeFamily
	Name   string
}

// HasLength reports whether the type takes a length argument.
func (t *ColumnType) HasLength() bool {
	switch t.Family {
	case FamilyString, FamilyBinary:
		return t.Name != "bytea"
	}
	return false
}

// HasPrecision reports whether the type takes precision and scale.
func (t *ColumnType) HasPrecision() bool {
	return t.Family == FamilyDecimal
}

var familyByName = map[string]TypeFamily{
	"int":       FamilyInteger,
	"integer":   FamilyInteger,
	"int2":      FamilyInteger,
	"int4":      FamilyInteger,
	"int8":      FamilyInteger,
	"tinyint":   FamilyInteger,
	"smallint":  FamilyInteger,
	"mediumint": FamilyInteger,
	"bigint":    FamilyInteger,
	"serial":    FamilyInteger,
	"bigserial": FamilyInteger,

	"decimal": FamilyDecimal,
	"numeric": FamilyDecimal,
	"money":   FamilyDecimal,

	"float":            FamilyFloat,
	"float4":           FamilyFloat,
	"float8":           FamilyFloat,
	"real":             FamilyFloat,
	"double":           FamilyFloat,
	"double precision": FamilyFloat,

	"char":              FamilyString,
	"character":         FamilyString,
	"nchar":             FamilyString,
	"varchar":           FamilyString,
	"varchar2":          FamilyString,
	"nvarchar":          FamilyString,
	"character varying": FamilyString,
	"bpchar":            FamilyString,

	"text":       FamilyText,
	"tinytext":   FamilyText,
	"mediumtext": FamilyText,
	"longtext":   FamilyText,
	"clob":       FamilyText,

	"enum": FamilyEnum,
	"set":  FamilyEnum,

	"bool":    FamilyBoolean,
	"boolean": FamilyBoolean,
	"bit":     FamilyBoolean,

	"date": FamilyDate,

	"time":                   FamilyTime,
	"time with time zone":    FamilyTime,
	"time without time zone": FamilyTime,
	"timetz":                 FamilyTime,

	"datetime":                    FamilyTimestamp,
	"timestamp":                   FamilyTimestamp,
	"timestamptz":                 FamilyTimestamp,
	"timestamp with time zone":    FamilyTimestamp,
	"timestamp without time zone": FamilyTimestamp,

	"binary":     FamilyBinary,
	"varbinary":  FamilyBinary,
	"blob":       FamilyBinary,
	"tinyblob":   FamilyBinary,
	"mediumblob": FamilyBinary,
	"longblob":   FamilyBinary,
	"bytea":      FamilyBinary,

	"json":  FamilyJSON,
	"jsonb": FamilyJSON,

	"uuid": FamilyUUID,
}

// ParseColumnType parses a type string such as "varchar(n)", "decimal(p,s)"
// or "int unsigned". It returns nil for an empty string; unknown names map
// to FamilyOther.
func ParseColumnType(s string) *ColumnType {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return nil
	}
	if open := strings.IndexByte(name, '('); open >= 0 {
		rest := ""
		if end := strings.IndexByte(name[open:], ')'); end >= 0 {
			rest = name[open+end+1:]
		}
		name = strings.TrimSpace(name[:open] + rest)
	}
	name = strings.TrimSpace(strings.TrimSuffix(name, " unsigned"))
	name = strings.Join(strings.Fields(name), " ")

	family, ok := familyByName[name]
	if !ok {
		family = FamilyOther
	}
	return &ColumnType{Family: family, Name: name}
}
