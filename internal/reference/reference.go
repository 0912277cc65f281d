package reference

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultPrefix is injected by Stringify when a hand-built reference has no prefix.
const DefaultPrefix = "table"

const separator = "."

// ErrInvalidSegment is returned by New when a segment contains the separator.
var ErrInvalidSegment = errors.New("reference: segment must not contain '.'")

// Reference is a dotted "prefix.table.column" address.
type Reference struct {
	Prefix     string
	TableName  string
	ColumnName string

	// Parts is the number of segments present in the parsed input (1..3).
	// It is 0 for values built by hand.
	Parts int
}

// HasTableName reports whether the table segment was present.
func (r Reference) HasTableName() bool {
	return r.Parts >= 2 || (r.Parts == 0 && r.TableName != "")
}

// HasColumnName reports whether the column segment was present.
func (r Reference) HasColumnName() bool {
	return r.Parts >= 3 || (r.Parts == 0 && r.ColumnName != "")
}

// Parse splits input on '.' positionally. Segments beyond the third are ignored.
// Parsing never fails; absent segments are left empty.
func Parse(input string) Reference {
	parts := strings.Split(input, separator)
	r := Reference{Prefix: parts[0], Parts: 1}
	if len(parts) > 1 {
		r.TableName = parts[1]
		r.Parts = 2
	}
	if len(parts) > 2 {
		r.ColumnName = parts[2]
		r.Parts = 3
	}
	return r
}

// Stringify joins the non-empty segments with '.'.
//
// The prefix defaults to DefaultPrefix only for hand-built values; a parsed
// reference keeps its own (possibly empty) prefix. Stringify(Parse(s)) is not
// guaranteed to equal s.
func Stringify(r Reference) string {
	prefix := r.Prefix
	if r.Parts == 0 && prefix == "" {
		prefix = DefaultPrefix
	}
	segments := make([]string, 0, 3)
	for _, s := range []string{prefix, r.TableName, r.ColumnName} {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return strings.Join(segments, separator)
}

// String implements fmt.Stringer.
func (r Reference) String() string {
	return Stringify(r)
}

// New builds a validated reference. Empty segments are allowed, segments
// containing the separator are not.
func New(prefix, tableName, columnName string) (Reference, error) {
	for _, s := range []string{prefix, tableName, columnName} {
		if strings.Contains(s, separator) {
			return Reference{}, fmt.Errorf("%w: %q", ErrInvalidSegment, s)
		}
	}
	return Reference{Prefix: prefix, TableName: tableName, ColumnName: columnName}, nil
}

// Table returns the canonical reference of a table, e.g. "table.users".
func Table(name string) string {
	return Stringify(Reference{TableName: name})
}

// Column returns the canonical reference of a column, e.g. "table.users.id".
func Column(tableName, columnName string) string {
	return Stringify(Reference{TableName: tableName, ColumnName: columnName})
}

// Rename rewrites the table segment of ref from previous to next, keeping the
// prefix and column segments. When the table segment does not match, ref is
// returned unchanged and the second result is false.
func Rename(ref, previous, next string) (string, bool) {
	r := Parse(ref)
	if !r.HasTableName() || r.TableName != previous {
		return ref, false
	}
	r.TableName = next
	return Stringify(r), true
}
