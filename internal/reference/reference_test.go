package reference

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Reference
	}{
		{
			name:  "three segments",
			input: "public.users.id",
			want:  Reference{Prefix: "public", TableName: "users", ColumnName: "id", Parts: 3},
		},
		{
			name:  "two segments are positional",
			input: "users.id",
			want:  Reference{Prefix: "users", TableName: "id", Parts: 2},
		},
		{
			name:  "empty input",
			input: "",
			want:  Reference{Prefix: "", Parts: 1},
		},
		{
			name:  "extra segments ignored",
			input: "table.a.b.c.d",
			want:  Reference{Prefix: "table", TableName: "a", ColumnName: "b", Parts: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParseAbsentSegments(t *testing.T) {
	r := Parse("users")
	assert.False(t, r.HasTableName())
	assert.False(t, r.HasColumnName())

	r = Parse("table..id")
	assert.True(t, r.HasTableName())
	assert.Equal(t, "", r.TableName)
	assert.True(t, r.HasColumnName())
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "table.users", Stringify(Reference{TableName: "users"}))
	assert.Equal(t, "table.users.id", Stringify(Reference{TableName: "users", ColumnName: "id"}))
	assert.Equal(t, "public.users", Stringify(Reference{Prefix: "public", TableName: "users"}))
	assert.Equal(t, "table", Stringify(Reference{}))
}

func TestRoundTrip(t *testing.T) {
	t.Run("stringify then parse", func(t *testing.T) {
		got := Parse(Stringify(Reference{TableName: "orders", ColumnName: "total"}))
		assert.Equal(t, "table", got.Prefix)
		assert.Equal(t, "orders", got.TableName)
		assert.Equal(t, "total", got.ColumnName)
	})

	t.Run("parse then stringify is lossy", func(t *testing.T) {
		// an empty table segment vanishes
		assert.Equal(t, "table.id", Stringify(Parse("table..id")))
		// a parsed empty prefix is kept empty instead of defaulted
		assert.Equal(t, "users", Stringify(Parse(".users")))
	})
}

func TestNew(t *testing.T) {
	r, err := New("table", "users", "id")
	require.NoError(t, err)
	assert.Equal(t, "table.users.id", r.String())

	_, err = New("table", "public.users", "")
	assert.True(t, errors.Is(err, ErrInvalidSegment))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "table.users", Table("users"))
	assert.Equal(t, "table.users.email", Column("users", "email"))
}

func TestRename(t *testing.T) {
	got, changed := Rename("table.OLD", "OLD", "NEW")
	assert.True(t, changed)
	assert.Equal(t, "table.NEW", got)

	got, changed = Rename("table.OLD.id", "OLD", "NEW")
	assert.True(t, changed)
	assert.Equal(t, "table.NEW.id", got)

	got, changed = Rename("custom.OLD", "OLD", "NEW")
	assert.True(t, changed)
	assert.Equal(t, "custom.NEW", got)

	got, changed = Rename("table.OTHER", "OLD", "NEW")
	assert.False(t, changed)
	assert.Equal(t, "table.OTHER", got)

	got, changed = Rename("OLD", "OLD", "NEW")
	assert.False(t, changed)
	assert.Equal(t, "OLD", got)
}
