package catalog

import "context"

// Repository is the read-only data source boundary for the catalog.
// The filter/sort engine and search sessions only ever see this interface,
// so the seed snapshot can be swapped for a real backend without touching them.
type Repository interface {
	// Games returns every game in the catalog.
	Games(ctx context.Context) ([]Game, error)

	// GameBySlug looks a game up by slug. The bool is false when absent.
	GameBySlug(ctx context.Context, slug string) (Game, bool, error)

	// PricesForGame returns all price quotes referencing the game.
	PricesForGame(ctx context.Context, gameID string) ([]Price, error)

	// Prices returns every price quote.
	Prices(ctx context.Context) ([]Price, error)

	// Stores returns every storefront.
	Stores(ctx context.Context) ([]Store, error)

	// Deals returns the active promotional deals.
	Deals(ctx context.Context) ([]Deal, error)

	// HistoryForGame returns the price history series for a game.
	// The bool is false when no series exists.
	HistoryForGame(ctx context.Context, gameID string) (PriceHistory, bool, error)

	// PredictionForGame returns the price prediction for a game.
	// The bool is false when no prediction exists.
	PredictionForGame(ctx context.Context, gameID string) (PricePrediction, bool, error)
}
