package edit

import (
	"slices"

	"github.com/hurou927/erm-core/internal/schema"
)

// AddColumn appends an inline column.
func AddColumn(t *schema.Table, c *schema.Column) *schema.Table {
	out := t.Clone()
	out.Columns = append(slices.Clone(t.Columns), schema.ColumnItemOf(c))
	return out
}

// ReplaceColumn replaces the column slot at pos with an inline column.
func ReplaceColumn(t *schema.Table, pos int, c *schema.Column) (*schema.Table, error) {
	if err := checkRange("column", pos, len(t.Columns)); err != nil {
		return nil, err
	}
	out := t.Clone()
	out.Columns = slices.Clone(t.Columns)
	out.Columns[pos] = schema.ColumnItemOf(c)
	return out, nil
}

// DeleteColumn removes the column slot at pos, inline column or group reference.
func DeleteColumn(t *schema.Table, pos int) (*schema.Table, error) {
	if err := checkRange("column", pos, len(t.Columns)); err != nil {
		return nil, err
	}
	out := t.Clone()
	out.Columns = slices.Delete(slices.Clone(t.Columns), pos, pos+1)
	return out, nil
}
