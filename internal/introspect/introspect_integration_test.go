//go:build integration

package introspect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/hurou927/erm-core/internal/db"
	"github.com/hurou927/erm-core/internal/mapper"
	"github.com/hurou927/erm-core/internal/store"
)

const fixtureSQL = `
CREATE TABLE users (
	id bigserial PRIMARY KEY,
	email varchar(255) NOT NULL UNIQUE,
	tenant_id integer NOT NULL,
	code text NOT NULL,
	CONSTRAINT users_tenant_code_key UNIQUE (tenant_id, code)
);
COMMENT ON TABLE users IS 'registered users';

CREATE TABLE posts (
	id bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	user_id bigint NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	author_email varchar(255) REFERENCES users (email) ON DELETE SET NULL,
	tenant_id integer NOT NULL,
	code text NOT NULL,
	CONSTRAINT posts_tenant_code_fk FOREIGN KEY (tenant_id, code) REFERENCES users (tenant_id, code)
);
CREATE INDEX posts_user_created_idx ON posts (user_id, id DESC);
`

func TestIntrospectPostgres(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("erm"),
		postgres.WithUsername("erm"),
		postgres.WithPassword("erm"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := db.Open(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, fixtureSQL)
	require.NoError(t, err)

	d, err := Introspect(ctx, pool, []string{"public"})
	require.NoError(t, err)

	users := tableByName(t, d, "users")
	assert.Equal(t, "registered users", users.Description)
	assert.Equal(t, "users_pkey", users.PrimaryKeyName)
	assert.True(t, columnByName(t, users, "id").AutoIncrement)
	assert.True(t, columnByName(t, users, "email").UniqueKey)
	require.Len(t, users.CompoundUniqueKeyList.CompoundUniqueKeys, 1)

	posts := tableByName(t, d, "posts")
	assert.True(t, columnByName(t, posts, "id").AutoIncrement)
	require.Len(t, posts.Indexes.Indexes, 1)
	assert.True(t, posts.Indexes.Indexes[0].Columns.Columns[1].Desc)
	require.Len(t, posts.Connections.Relationships, 3)

	got, err := mapper.MapDiagram(d)
	require.NoError(t, err)
	for _, r := range got.Relationships {
		assert.True(t, r.ReferredColumnValid(), r.Name)
	}

	s := store.New()
	require.NoError(t, s.Load(ctx, Source{DB: pool}, "public"))
	assert.Len(t, s.Snapshot().Tables, 2)
	assert.Len(t, s.Snapshot().Relationships, 3)
}
