package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const tableJSON = `{
  "physicalName": "users",
  "logicalName": "Users",
  "description": "",
  "x": 10, "y": 20, "width": 120, "height": 80,
  "color": {"r": 1, "g": 2, "b": 3},
  "connections": {},
  "columns": {"items": [
    {"physicalName": "id", "columnType": "bigint", "primaryKey": true, "notNull": true},
    "audit"
  ]},
  "indexes": {},
  "compoundUniqueKeyList": {}
}`

func TestColumnItemJSON(t *testing.T) {
	var tbl Table
	require.NoError(t, json.Unmarshal([]byte(tableJSON), &tbl))

	require.Len(t, tbl.Columns.Items, 2)
	first := tbl.Columns.Items[0]
	assert.False(t, first.IsGroup())
	assert.Equal(t, "id", first.Column.PhysicalName)
	assert.True(t, first.Column.PrimaryKey)

	second := tbl.Columns.Items[1]
	assert.True(t, second.IsGroup())
	assert.Equal(t, "audit", second.GroupName)

	assert.Nil(t, tbl.Indexes.Indexes)
	assert.Nil(t, tbl.Connections.Relationships)
	assert.Equal(t, 3, tbl.Color.B)
}

func TestColumnItemJSONMarshal(t *testing.T) {
	items := []ColumnItem{ColumnOf(NormalColumn{PhysicalName: "id"}), GroupItem("audit")}
	data, err := json.Marshal(items)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"physicalName":"id"},"audit"]`, string(data))
}

const tableYAML = `
physicalName: users
columns:
  items:
    - physicalName: id
      columnType: int
      primaryKey: true
    - audit
`

func TestColumnItemYAML(t *testing.T) {
	var tbl Table
	require.NoError(t, yaml.Unmarshal([]byte(tableYAML), &tbl))

	require.Len(t, tbl.Columns.Items, 2)
	assert.Equal(t, "int", tbl.Columns.Items[0].Column.ColumnType)
	assert.Equal(t, "audit", tbl.Columns.Items[1].GroupName)

	out, err := yaml.Marshal(tbl.Columns)
	require.NoError(t, err)
	var back Columns
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, tbl.Columns, back)
}

func TestColumnItemJSONError(t *testing.T) {
	var item ColumnItem
	assert.Error(t, json.Unmarshal([]byte(`42`), &item))
}
