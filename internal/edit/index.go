package edit

import (
	"fmt"
	"slices"

	"github.com/hurou927/erm-core/internal/reference"
	"github.com/hurou927/erm-core/internal/schema"
)

// AddIndex appends idx to the table's indexes.
func AddIndex(t *schema.Table, idx schema.Index) *schema.Table {
	out := t.Clone()
	out.Indexes = append(slices.Clone(t.Indexes), idx)
	return out
}

// ReplaceIndex replaces the index at pos.
func ReplaceIndex(t *schema.Table, pos int, idx schema.Index) (*schema.Table, error) {
	return withIndex(t, pos, func(schema.Index) schema.Index { return idx })
}

// DeleteIndex removes the index at pos.
func DeleteIndex(t *schema.Table, pos int) (*schema.Table, error) {
	if err := checkRange("index", pos, len(t.Indexes)); err != nil {
		return nil, err
	}
	out := t.Clone()
	out.Indexes = slices.Delete(slices.Clone(t.Indexes), pos, pos+1)
	return out, nil
}

// AddIndexColumn appends the column named columnName of this table to the
// index at pos.
func AddIndexColumn(t *schema.Table, pos int, columnName string) (*schema.Table, error) {
	id := reference.Column(t.PhysicalName, columnName)
	return withIndex(t, pos, func(idx schema.Index) schema.Index {
		idx.Columns = append(slices.Clone(idx.Columns), schema.IndexColumn{ColumnID: id})
		return idx
	})
}

// RemoveIndexColumn removes the key column at col from the index at pos.
func RemoveIndexColumn(t *schema.Table, pos, col int) (*schema.Table, error) {
	if err := checkIndexColumn(t, pos, col); err != nil {
		return nil, err
	}
	return withIndex(t, pos, func(idx schema.Index) schema.Index {
		idx.Columns = slices.Delete(slices.Clone(idx.Columns), col, col+1)
		return idx
	})
}

// MoveIndexColumnUp swaps the key column at col with its predecessor. Moving
// the first column returns t unchanged.
func MoveIndexColumnUp(t *schema.Table, pos, col int) (*schema.Table, error) {
	if err := checkIndexColumn(t, pos, col); err != nil {
		return nil, err
	}
	if col == 0 {
		return t, nil
	}
	return swapIndexColumns(t, pos, col, col-1)
}

// MoveIndexColumnDown swaps the key column at col with its successor. Moving
// the last column returns t unchanged.
func MoveIndexColumnDown(t *schema.Table, pos, col int) (*schema.Table, error) {
	if err := checkIndexColumn(t, pos, col); err != nil {
		return nil, err
	}
	if col == len(t.Indexes[pos].Columns)-1 {
		return t, nil
	}
	return swapIndexColumns(t, pos, col, col+1)
}

func swapIndexColumns(t *schema.Table, pos, i, j int) (*schema.Table, error) {
	return withIndex(t, pos, func(idx schema.Index) schema.Index {
		cols := slices.Clone(idx.Columns)
		cols[i], cols[j] = cols[j], cols[i]
		idx.Columns = cols
		return idx
	})
}

func withIndex(t *schema.Table, pos int, fn func(schema.Index) schema.Index) (*schema.Table, error) {
	if err := checkRange("index", pos, len(t.Indexes)); err != nil {
		return nil, err
	}
	indexes := slices.Clone(t.Indexes)
	indexes[pos] = fn(indexes[pos])
	out := t.Clone()
	out.Indexes = indexes
	return out, nil
}

func checkIndexColumn(t *schema.Table, pos, col int) error {
	if err := checkRange("index", pos, len(t.Indexes)); err != nil {
		return err
	}
	return checkRange("index column", col, len(t.Indexes[pos].Columns))
}

func checkRange(what string, pos, n int) error {
	if pos < 0 || pos >= n {
		return fmt.Errorf("%w: %s %d of %d", ErrIndexOutOfRange, what, pos, n)
	}
	return nil
}
