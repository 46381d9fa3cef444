package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestMigrate_AppliesEmbeddedMigrationsIdempotently(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpg.Run(ctx,
		"postgres:16-alpine",
		tcpg.WithDatabase("postgres"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("postgres"),
		tcpg.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool))

	var types, companies int
	require.NoError(t, pool.QueryRow(ctx, `select count(*) from parcel_types`).Scan(&types))
	require.NoError(t, pool.QueryRow(ctx, `select count(*) from transport_companies`).Scan(&companies))
	require.Equal(t, 3, types)
	require.Equal(t, 3, companies)

	// sequences continue after the seeded ids
	var nextID int64
	require.NoError(t, pool.QueryRow(ctx,
		`insert into parcel_types (name) values ('Books') returning id`).Scan(&nextID))
	require.Equal(t, int64(4), nextID)
}
