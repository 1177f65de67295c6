package integration

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/grabkey/deal-service/internal/catalog"
	"github.com/grabkey/deal-service/internal/seed"
)

func setupCatalogTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode (requires Docker)")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	config, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	require.NoError(t, err, "Failed to create connection pool")

	_, err = pool.Exec(ctx, catalog.Schema)
	require.NoError(t, err, "Failed to create schema")

	cleanup := func() {
		pool.Close()
		testcontainers.TerminateContainer(container)
	}

	return pool, cleanup
}

func TestPostgresCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()

	pool, cleanup := setupCatalogTestDB(t)
	defer cleanup()

	snap := seed.Snapshot()
	repo := catalog.NewPostgresRepository(pool)
	require.NoError(t, repo.Import(ctx, snap))

	games, err := repo.Games(ctx)
	require.NoError(t, err)
	assert.Len(t, games, len(snap.Games))

	game, ok, err := repo.GameBySlug(ctx, "elden-ring")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Elden Ring", game.Title)
	assert.Equal(t, []string{"Action", "RPG"}, game.Genres)

	_, ok, err = repo.GameBySlug(ctx, "not-a-game")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgresCatalogPricesSortedCheapestFirst(t *testing.T) {
	ctx := context.Background()

	pool, cleanup := setupCatalogTestDB(t)
	defer cleanup()

	repo := catalog.NewPostgresRepository(pool)
	require.NoError(t, repo.Import(ctx, seed.Snapshot()))

	prices, err := repo.PricesForGame(ctx, "g-001")
	require.NoError(t, err)
	require.NotEmpty(t, prices)

	for i := 1; i < len(prices); i++ {
		assert.LessOrEqual(t, prices[i-1].CurrentPrice, prices[i].CurrentPrice)
	}
}

func TestPostgresCatalogHistoryAndPrediction(t *testing.T) {
	ctx := context.Background()

	pool, cleanup := setupCatalogTestDB(t)
	defer cleanup()

	repo := catalog.NewPostgresRepository(pool)
	snap := seed.Snapshot()
	require.NoError(t, repo.Import(ctx, snap))

	h, ok, err := repo.HistoryForGame(ctx, "g-001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, h.Points, 52)

	// Aggregates come back recomputed from the stored points.
	low, high := h.Points[0].Price, h.Points[0].Price
	for _, p := range h.Points {
		if p.Price < low {
			low = p.Price
		}
		if p.Price > high {
			high = p.Price
		}
	}
	assert.Equal(t, low, h.AllTimeLow)
	assert.Equal(t, high, h.AllTimeHigh)

	pred, ok, err := repo.PredictionForGame(ctx, "g-001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, pred.Horizons, 4)
	assert.NotEmpty(t, pred.Recommendation)
}

func TestPostgresCatalogImportIsIdempotent(t *testing.T) {
	ctx := context.Background()

	pool, cleanup := setupCatalogTestDB(t)
	defer cleanup()

	repo := catalog.NewPostgresRepository(pool)
	snap := seed.Snapshot()
	require.NoError(t, repo.Import(ctx, snap))
	require.NoError(t, repo.Import(ctx, snap), "re-import must upsert, not fail")

	games, err := repo.Games(ctx)
	require.NoError(t, err)
	assert.Len(t, games, len(snap.Games))

	deals, err := repo.Deals(ctx)
	require.NoError(t, err)
	assert.Len(t, deals, len(snap.Deals))
}
