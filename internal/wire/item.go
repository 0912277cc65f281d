package wire

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ColumnItem is one column slot of a raw table: either a bare string naming a
// column group or an inline column object.
type ColumnItem struct {
	GroupName string
	Column    *NormalColumn
}

// GroupItem returns a slot naming a column group.
func GroupItem(name string) ColumnItem {
	return ColumnItem{GroupName: name}
}

// ColumnOf returns a slot holding an inline column.
func ColumnOf(c NormalColumn) ColumnItem {
	return ColumnItem{Column: &c}
}

// IsGroup reports whether the slot names a column group.
func (i ColumnItem) IsGroup() bool {
	return i.Column == nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *ColumnItem) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		*i = GroupItem(name)
		return nil
	}
	var c NormalColumn
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return fmt.Errorf("decoding column item: %w", err)
	}
	*i = ColumnOf(c)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (i ColumnItem) MarshalJSON() ([]byte, error) {
	if i.Column != nil {
		return json.Marshal(i.Column)
	}
	return json.Marshal(i.GroupName)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *ColumnItem) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}
		*i = GroupItem(name)
		return nil
	}
	var c NormalColumn
	if err := value.Decode(&c); err != nil {
		return fmt.Errorf("decoding column item: %w", err)
	}
	*i = ColumnOf(c)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (i ColumnItem) MarshalYAML() (any, error) {
	if i.Column != nil {
		return i.Column, nil
	}
	return i.GroupName, nil
}
