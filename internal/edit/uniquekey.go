package edit

import (
	"slices"
	"strings"

	"github.com/hurou927/erm-core/internal/schema"
)

// AddCompoundUniqueKey appends a compound unique key. The name is trimmed.
func AddCompoundUniqueKey(t *schema.Table, name string, columns []string) (*schema.Table, error) {
	key, err := newUniqueKey(name, columns)
	if err != nil {
		return nil, err
	}
	out := t.Clone()
	out.CompoundUniqueKeys = append(slices.Clone(t.CompoundUniqueKeys), key)
	return out, nil
}

// UpdateCompoundUniqueKey replaces the compound unique key at pos.
func UpdateCompoundUniqueKey(t *schema.Table, pos int, name string, columns []string) (*schema.Table, error) {
	key, err := newUniqueKey(name, columns)
	if err != nil {
		return nil, err
	}
	if err := checkRange("compound unique key", pos, len(t.CompoundUniqueKeys)); err != nil {
		return nil, err
	}
	out := t.Clone()
	out.CompoundUniqueKeys = slices.Clone(t.CompoundUniqueKeys)
	out.CompoundUniqueKeys[pos] = key
	return out, nil
}

// DeleteCompoundUniqueKey removes the compound unique key at pos.
func DeleteCompoundUniqueKey(t *schema.Table, pos int) (*schema.Table, error) {
	if err := checkRange("compound unique key", pos, len(t.CompoundUniqueKeys)); err != nil {
		return nil, err
	}
	out := t.Clone()
	out.CompoundUniqueKeys = slices.Delete(slices.Clone(t.CompoundUniqueKeys), pos, pos+1)
	return out, nil
}

func newUniqueKey(name string, columns []string) (schema.CompoundUniqueKey, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(columns) == 0 {
		return schema.CompoundUniqueKey{}, ErrInvalidUniqueKey
	}
	return schema.CompoundUniqueKey{Name: name, Columns: slices.Clone(columns)}, nil
}
