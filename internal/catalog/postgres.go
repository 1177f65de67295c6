package catalog

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository serves the catalog from Postgres. It implements the same
// Repository contract as the in-memory snapshot, so the engine above it never
// notices the swap.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a repository over an established pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Connect opens a pgx pool and verifies connectivity.
func Connect(ctx context.Context, connString string, maxConns, minConns int) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("error parsing database config: %w", err)
	}
	config.MaxConns = int32(maxConns)
	config.MinConns = int32(minConns)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("error creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return pool, nil
}

// Schema creates the catalog tables. Used by the integration tests and by
// fresh deployments; production migrations live outside this service.
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	id             TEXT PRIMARY KEY,
	slug           TEXT UNIQUE NOT NULL,
	title          TEXT NOT NULL,
	developer      TEXT NOT NULL DEFAULT '',
	publisher      TEXT NOT NULL DEFAULT '',
	release_date   TIMESTAMPTZ NOT NULL,
	genres         TEXT[] NOT NULL DEFAULT '{}',
	platforms      TEXT[] NOT NULL DEFAULT '{}',
	features       TEXT[] NOT NULL DEFAULT '{}',
	best_price     DOUBLE PRECISION NOT NULL,
	original_price DOUBLE PRECISION NOT NULL,
	discount       INT NOT NULL,
	deal_score     INT NOT NULL,
	is_on_sale     BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS stores (
	id            TEXT PRIMARY KEY,
	slug          TEXT UNIQUE NOT NULL,
	name          TEXT NOT NULL,
	trust_score   DOUBLE PRECISION NOT NULL,
	trust_level   TEXT NOT NULL,
	is_official   BOOLEAN NOT NULL,
	delivery_time TEXT NOT NULL DEFAULT '',
	regions       TEXT[] NOT NULL DEFAULT '{}',
	payments      TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS prices (
	id             TEXT PRIMARY KEY,
	game_id        TEXT NOT NULL REFERENCES games(id),
	store_id       TEXT NOT NULL REFERENCES stores(id),
	edition_id     TEXT NOT NULL DEFAULT '',
	region         TEXT NOT NULL DEFAULT 'global',
	current_price  DOUBLE PRECISION NOT NULL,
	original_price DOUBLE PRECISION NOT NULL,
	discount       INT NOT NULL,
	deal_score     INT NOT NULL,
	in_stock       BOOLEAN NOT NULL,
	last_seen_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_prices_game_id ON prices(game_id);

CREATE TABLE IF NOT EXISTS deals (
	id         TEXT PRIMARY KEY,
	game_id    TEXT NOT NULL REFERENCES games(id),
	store_id   TEXT NOT NULL REFERENCES stores(id),
	tags       TEXT[] NOT NULL DEFAULT '{}',
	deal_score INT NOT NULL,
	breakdown  JSONB NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS price_points (
	game_id  TEXT NOT NULL REFERENCES games(id),
	store_id TEXT NOT NULL DEFAULT '',
	date     TIMESTAMPTZ NOT NULL,
	price    DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_price_points_game_id ON price_points(game_id);

CREATE TABLE IF NOT EXISTS predictions (
	game_id        TEXT PRIMARY KEY REFERENCES games(id),
	horizons       JSONB NOT NULL,
	recommendation TEXT NOT NULL,
	reasoning      TEXT NOT NULL DEFAULT ''
);
`

const gameColumns = `id, slug, title, developer, publisher, release_date,
	genres, platforms, features, best_price, original_price, discount,
	deal_score, is_on_sale`

func scanGame(row pgx.Row) (Game, error) {
	var g Game
	err := row.Scan(
		&g.ID, &g.Slug, &g.Title, &g.Developer, &g.Publisher, &g.ReleaseDate,
		&g.Genres, &g.Platforms, &g.Features, &g.BestPrice, &g.OriginalPrice,
		&g.Discount, &g.DealScore, &g.IsOnSale,
	)
	return g, err
}

func (r *PostgresRepository) Games(ctx context.Context) ([]Game, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+gameColumns+` FROM games ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *PostgresRepository) GameBySlug(ctx context.Context, slug string) (Game, bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE slug = $1`, slug)
	g, err := scanGame(row)
	if err == pgx.ErrNoRows {
		return Game{}, false, nil
	}
	if err != nil {
		return Game{}, false, fmt.Errorf("failed to query game by slug: %w", err)
	}
	return g, true, nil
}

const priceColumns = `id, game_id, store_id, edition_id, region, current_price,
	original_price, discount, deal_score, in_stock, last_seen_at`

func (r *PostgresRepository) queryPrices(ctx context.Context, query string, args ...any) ([]Price, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	var prices []Price
	for rows.Next() {
		var p Price
		if err := rows.Scan(
			&p.ID, &p.GameID, &p.StoreID, &p.EditionID, &p.Region,
			&p.CurrentPrice, &p.OriginalPrice, &p.Discount, &p.DealScore,
			&p.InStock, &p.LastSeenAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

func (r *PostgresRepository) Prices(ctx context.Context) ([]Price, error) {
	return r.queryPrices(ctx, `SELECT `+priceColumns+` FROM prices ORDER BY id`)
}

func (r *PostgresRepository) PricesForGame(ctx context.Context, gameID string) ([]Price, error) {
	return r.queryPrices(ctx, `SELECT `+priceColumns+` FROM prices WHERE game_id = $1 ORDER BY current_price`, gameID)
}

func (r *PostgresRepository) Stores(ctx context.Context) ([]Store, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, slug, name, trust_score, trust_level, is_official,
		       delivery_time, regions, payments
		FROM stores ORDER BY trust_score DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	var stores []Store
	for rows.Next() {
		var s Store
		if err := rows.Scan(
			&s.ID, &s.Slug, &s.Name, &s.TrustScore, &s.TrustLevel,
			&s.IsOfficial, &s.DeliveryTime, &s.Regions, &s.Payments,
		); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (r *PostgresRepository) Deals(ctx context.Context) ([]Deal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, game_id, store_id, tags, deal_score, breakdown, expires_at
		FROM deals ORDER BY deal_score DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	defer rows.Close()

	var deals []Deal
	for rows.Next() {
		var d Deal
		var tags []string
		var breakdown []byte
		if err := rows.Scan(&d.ID, &d.GameID, &d.StoreID, &tags, &d.DealScore, &breakdown, &d.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		for _, t := range tags {
			d.Tags = append(d.Tags, DealTag(t))
		}
		if err := json.Unmarshal(breakdown, &d.Breakdown); err != nil {
			return nil, fmt.Errorf("failed to decode deal breakdown: %w", err)
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

func (r *PostgresRepository) HistoryForGame(ctx context.Context, gameID string) (PriceHistory, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date, price, store_id
		FROM price_points WHERE game_id = $1 ORDER BY date`, gameID)
	if err != nil {
		return PriceHistory{}, false, fmt.Errorf("failed to query price points: %w", err)
	}
	defer rows.Close()

	h := PriceHistory{GameID: gameID}
	for rows.Next() {
		var p PricePoint
		if err := rows.Scan(&p.Date, &p.Price, &p.StoreID); err != nil {
			return PriceHistory{}, false, fmt.Errorf("failed to scan price point: %w", err)
		}
		h.Points = append(h.Points, p)
	}
	if err := rows.Err(); err != nil {
		return PriceHistory{}, false, err
	}
	if len(h.Points) == 0 {
		return PriceHistory{}, false, nil
	}

	// Aggregates are always derived from the stored points, never persisted.
	h.AllTimeLow = h.Points[0].Price
	h.AllTimeHigh = h.Points[0].Price
	sum := 0.0
	for _, p := range h.Points {
		if p.Price < h.AllTimeLow {
			h.AllTimeLow = p.Price
		}
		if p.Price > h.AllTimeHigh {
			h.AllTimeHigh = p.Price
		}
		sum += p.Price
	}
	h.AveragePrice = sum / float64(len(h.Points))

	return h, true, nil
}

func (r *PostgresRepository) PredictionForGame(ctx context.Context, gameID string) (PricePrediction, bool, error) {
	var (
		p        = PricePrediction{GameID: gameID}
		horizons []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT horizons, recommendation, reasoning
		FROM predictions WHERE game_id = $1`, gameID).
		Scan(&horizons, &p.Recommendation, &p.Reasoning)
	if err == pgx.ErrNoRows {
		return PricePrediction{}, false, nil
	}
	if err != nil {
		return PricePrediction{}, false, fmt.Errorf("failed to query prediction: %w", err)
	}
	if err := json.Unmarshal(horizons, &p.Horizons); err != nil {
		return PricePrediction{}, false, fmt.Errorf("failed to decode horizons: %w", err)
	}
	return p, true, nil
}

// Import loads a snapshot into Postgres, replacing existing rows by primary
// key. Used by the CLI to push the seed catalog into a fresh database.
func (r *PostgresRepository) Import(ctx context.Context, snap Snapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, g := range snap.Games {
		_, err := tx.Exec(ctx, `
			INSERT INTO games (`+gameColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
			ON CONFLICT (id) DO UPDATE SET
				best_price = EXCLUDED.best_price,
				original_price = EXCLUDED.original_price,
				discount = EXCLUDED.discount,
				deal_score = EXCLUDED.deal_score,
				is_on_sale = EXCLUDED.is_on_sale`,
			g.ID, g.Slug, g.Title, g.Developer, g.Publisher, g.ReleaseDate,
			g.Genres, g.Platforms, g.Features, g.BestPrice, g.OriginalPrice,
			g.Discount, g.DealScore, g.IsOnSale)
		if err != nil {
			return fmt.Errorf("failed to import game %s: %w", g.ID, err)
		}
	}

	for _, s := range snap.Stores {
		_, err := tx.Exec(ctx, `
			INSERT INTO stores (id, slug, name, trust_score, trust_level,
				is_official, delivery_time, regions, payments)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			ON CONFLICT (id) DO UPDATE SET
				trust_score = EXCLUDED.trust_score,
				trust_level = EXCLUDED.trust_level`,
			s.ID, s.Slug, s.Name, s.TrustScore, s.TrustLevel, s.IsOfficial,
			s.DeliveryTime, s.Regions, s.Payments)
		if err != nil {
			return fmt.Errorf("failed to import store %s: %w", s.ID, err)
		}
	}

	for _, p := range snap.Prices {
		_, err := tx.Exec(ctx, `
			INSERT INTO prices (`+priceColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			ON CONFLICT (id) DO UPDATE SET
				current_price = EXCLUDED.current_price,
				discount = EXCLUDED.discount,
				deal_score = EXCLUDED.deal_score,
				in_stock = EXCLUDED.in_stock,
				last_seen_at = EXCLUDED.last_seen_at`,
			p.ID, p.GameID, p.StoreID, p.EditionID, p.Region, p.CurrentPrice,
			p.OriginalPrice, p.Discount, p.DealScore, p.InStock, p.LastSeenAt)
		if err != nil {
			return fmt.Errorf("failed to import price %s: %w", p.ID, err)
		}
	}

	for _, d := range snap.Deals {
		breakdown, err := json.Marshal(d.Breakdown)
		if err != nil {
			return fmt.Errorf("failed to encode breakdown for %s: %w", d.ID, err)
		}
		tags := make([]string, 0, len(d.Tags))
		for _, t := range d.Tags {
			tags = append(tags, string(t))
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO deals (id, game_id, store_id, tags, deal_score, breakdown, expires_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (id) DO UPDATE SET
				deal_score = EXCLUDED.deal_score,
				breakdown = EXCLUDED.breakdown,
				expires_at = EXCLUDED.expires_at`,
			d.ID, d.GameID, d.StoreID, tags, d.DealScore, breakdown, d.ExpiresAt)
		if err != nil {
			return fmt.Errorf("failed to import deal %s: %w", d.ID, err)
		}
	}

	for _, h := range snap.Histories {
		if _, err := tx.Exec(ctx, `DELETE FROM price_points WHERE game_id = $1`, h.GameID); err != nil {
			return fmt.Errorf("failed to clear price points for %s: %w", h.GameID, err)
		}
		for _, p := range h.Points {
			_, err := tx.Exec(ctx, `
				INSERT INTO price_points (game_id, store_id, date, price)
				VALUES ($1,$2,$3,$4)`,
				h.GameID, p.StoreID, p.Date, p.Price)
			if err != nil {
				return fmt.Errorf("failed to import price point for %s: %w", h.GameID, err)
			}
		}
	}

	for _, pr := range snap.Predictions {
		horizons, err := json.Marshal(pr.Horizons)
		if err != nil {
			return fmt.Errorf("failed to encode horizons for %s: %w", pr.GameID, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO predictions (game_id, horizons, recommendation, reasoning)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (game_id) DO UPDATE SET
				horizons = EXCLUDED.horizons,
				recommendation = EXCLUDED.recommendation,
				reasoning = EXCLUDED.reasoning`,
			pr.GameID, horizons, pr.Recommendation, pr.Reasoning)
		if err != nil {
			return fmt.Errorf("failed to import prediction for %s: %w", pr.GameID, err)
		}
	}

	return tx.Commit(ctx)
}
