package catalog

import "context"

// MemoryRepository serves the catalog from an immutable in-memory snapshot.
// It never fails; errors exist only to satisfy the Repository contract.
type MemoryRepository struct {
	games       []Game
	gamesBySlug map[string]Game
	prices      []Price
	pricesByGID map[string][]Price
	stores      []Store
	deals       []Deal
	histories   map[string]PriceHistory
	predictions map[string]PricePrediction
}

// Snapshot is the raw data a MemoryRepository is built from.
type Snapshot struct {
	Games       []Game
	Prices      []Price
	Stores      []Store
	Deals       []Deal
	Histories   []PriceHistory
	Predictions []PricePrediction
}

// NewMemoryRepository indexes the snapshot for lookup.
func NewMemoryRepository(snap Snapshot) *MemoryRepository {
	r := &MemoryRepository{
		games:       snap.Games,
		gamesBySlug: make(map[string]Game, len(snap.Games)),
		prices:      snap.Prices,
		pricesByGID: make(map[string][]Price),
		stores:      snap.Stores,
		deals:       snap.Deals,
		histories:   make(map[string]PriceHistory, len(snap.Histories)),
		predictions: make(map[string]PricePrediction, len(snap.Predictions)),
	}
	for _, g := range snap.Games {
		r.gamesBySlug[g.Slug] = g
	}
	for _, p := range snap.Prices {
		r.pricesByGID[p.GameID] = append(r.pricesByGID[p.GameID], p)
	}
	for _, h := range snap.Histories {
		r.histories[h.GameID] = h
	}
	for _, pr := range snap.Predictions {
		r.predictions[pr.GameID] = pr
	}
	return r
}

func (r *MemoryRepository) Games(ctx context.Context) ([]Game, error) {
	out := make([]Game, len(r.games))
	copy(out, r.games)
	return out, nil
}

func (r *MemoryRepository) GameBySlug(ctx context.Context, slug string) (Game, bool, error) {
	g, ok := r.gamesBySlug[slug]
	return g, ok, nil
}

func (r *MemoryRepository) PricesForGame(ctx context.Context, gameID string) ([]Price, error) {
	src := r.pricesByGID[gameID]
	out := make([]Price, len(src))
	copy(out, src)
	return out, nil
}

func (r *MemoryRepository) Prices(ctx context.Context) ([]Price, error) {
	out := make([]Price, len(r.prices))
	copy(out, r.prices)
	return out, nil
}

func (r *MemoryRepository) Stores(ctx context.Context) ([]Store, error) {
	out := make([]Store, len(r.stores))
	copy(out, r.stores)
	return out, nil
}

func (r *MemoryRepository) Deals(ctx context.Context) ([]Deal, error) {
	out := make([]Deal, len(r.deals))
	copy(out, r.deals)
	return out, nil
}

func (r *MemoryRepository) HistoryForGame(ctx context.Context, gameID string) (PriceHistory, bool, error) {
	h, ok := r.histories[gameID]
	return h, ok, nil
}

func (r *MemoryRepository) PredictionForGame(ctx context.Context, gameID string) (PricePrediction, bool, error) {
	p, ok := r.predictions[gameID]
	return p, ok, nil
}
