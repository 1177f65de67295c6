// Package seed builds the canonical in-memory snapshot the service runs on
// until a real catalog backend is wired in.
package seed

import (
	"time"

	"github.com/grabkey/deal-service/internal/catalog"
	"github.com/grabkey/deal-service/internal/dealscore"
	"github.com/grabkey/deal-service/internal/history"
	"github.com/grabkey/deal-service/internal/prediction"
	"github.com/grabkey/deal-service/internal/stores"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// lastSeen is the freshness timestamp stamped on every seed price quote.
var lastSeen = date(2025, time.September, 1)

// Snapshot assembles the seed catalog: games, stores, price quotes, deals
// with consistent score breakdowns, plus synthesized histories and the
// predictions derived from them.
func Snapshot() catalog.Snapshot {
	games := seedGames()
	stores := seedStores()
	prices := seedPrices(games)
	deals := seedDeals(games)

	histories := make([]catalog.PriceHistory, 0, len(games))
	predictions := make([]catalog.PricePrediction, 0, len(games))
	for _, g := range games {
		floor := floorFor(g)
		points := history.GenerateSeries(g.OriginalPrice, floor, g.ID, history.DefaultOptions())
		h := history.Build(g.ID, "", points)
		histories = append(histories, h)
		predictions = append(predictions, prediction.Derive(g.ID, h, g.BestPrice))
	}

	return catalog.Snapshot{
		Games:       games,
		Prices:      prices,
		Stores:      stores,
		Deals:       deals,
		Histories:   histories,
		Predictions: predictions,
	}
}

// floorFor picks the historical floor for a game's synthesized series.
func floorFor(g catalog.Game) float64 {
	floor := g.BestPrice * 0.85
	if floor < 4.99 {
		floor = 4.99
	}
	return float64(int(floor*100)) / 100
}

func game(id, slug, title, developer, publisher string, release time.Time, genres, platforms []string, original, best float64, score int) catalog.Game {
	return catalog.Game{
		ID:            id,
		Slug:          slug,
		Title:         title,
		Developer:     developer,
		Publisher:     publisher,
		ReleaseDate:   release,
		Genres:        genres,
		Platforms:     platforms,
		Features:      []string{"Single-player", "Achievements", "Cloud Saves"},
		Editions:      []catalog.Edition{{ID: id + "-std", Name: "Standard", Price: best}},
		BestPrice:     best,
		OriginalPrice: original,
		Discount:      catalog.DiscountPercent(original, best),
		DealScore:     score,
		IsOnSale:      best < original,
	}
}

func seedGames() []catalog.Game {
	return []catalog.Game{
		game("g-001", "elden-ring", "Elden Ring", "FromSoftware", "Bandai Namco",
			date(2022, time.February, 25), []string{"Action", "RPG"}, []string{"PC", "PS5", "Xbox"}, 59.99, 35.99, 87),
		game("g-002", "baldur-s-gate-3", "Baldur's Gate 3", "Larian Studios", "Larian Studios",
			date(2023, time.August, 3), []string{"RPG", "Strategy"}, []string{"PC", "PS5"}, 59.99, 53.99, 62),
		game("g-003", "cyberpunk-2077", "Cyberpunk 2077", "CD Projekt Red", "CD Projekt",
			date(2020, time.December, 10), []string{"Action", "RPG"}, []string{"PC", "PS5", "Xbox"}, 59.99, 23.99, 93),
		game("g-004", "hades-ii", "Hades II", "Supergiant Games", "Supergiant Games",
			date(2024, time.May, 6), []string{"Roguelike", "Action"}, []string{"PC"}, 29.99, 26.99, 48),
		game("g-005", "hollow-knight-silksong", "Hollow Knight: Silksong", "Team Cherry", "Team Cherry",
			date(2025, time.June, 4), []string{"Metroidvania", "Action"}, []string{"PC", "Switch"}, 19.99, 19.99, 22),
		game("g-006", "the-witcher-3-wild-hunt", "The Witcher 3: Wild Hunt", "CD Projekt Red", "CD Projekt",
			date(2015, time.May, 19), []string{"RPG", "Open World"}, []string{"PC", "PS5", "Xbox", "Switch"}, 39.99, 9.99, 95),
		game("g-007", "stardew-valley", "Stardew Valley", "ConcernedApe", "ConcernedApe",
			date(2016, time.February, 26), []string{"Simulation", "RPG"}, []string{"PC", "Switch", "Mobile"}, 14.99, 11.24, 58),
		game("g-008", "sekiro-shadows-die-twice", "Sekiro: Shadows Die Twice", "FromSoftware", "Activision",
			date(2019, time.March, 22), []string{"Action", "Adventure"}, []string{"PC", "PS5", "Xbox"}, 59.99, 29.99, 78),
		game("g-009", "factorio", "Factorio", "Wube Software", "Wube Software",
			date(2020, time.August, 14), []string{"Simulation", "Strategy"}, []string{"PC", "Switch"}, 35.00, 35.00, 15),
		game("g-010", "disco-elysium", "Disco Elysium", "ZA/UM", "ZA/UM",
			date(2019, time.October, 15), []string{"RPG", "Adventure"}, []string{"PC", "PS5", "Switch"}, 39.99, 9.99, 91),
	}
}

func seedStores() []catalog.Store {
	store := func(id, slug, name string, trust float64, official bool, delivery string) catalog.Store {
		return catalog.Store{
			ID:           id,
			Slug:         slug,
			Name:         name,
			TrustScore:   trust,
			TrustLevel:   dealscore.TrustLevelFromScore(trust),
			IsOfficial:   official,
			DeliveryTime: delivery,
			Regions:      []string{"us", "eu", "global"},
			Payments:     []string{"card", "paypal"},
		}
	}
	return []catalog.Store{
		store("st-steam", "steam", "Steam", 4.9, true, "instant"),
		store("st-gog", "gog", "GOG", 4.8, true, "instant"),
		store("st-gmg", "green-man-gaming", "Green Man Gaming", 4.4, false, "instant"),
		store("st-fanatical", "fanatical", "Fanatical", 4.2, false, "instant"),
		store("st-keyhub", "keyhub", "KeyHub Market", 3.1, false, "1-24h"),
	}
}

// seedPrices emits quotes per game across a few stores: the best price at one
// store, slightly worse quotes elsewhere.
func seedPrices(games []catalog.Game) []catalog.Price {
	storeSpread := []struct {
		storeID string
		markup  float64
	}{
		{"st-steam", 0},
		{"st-gog", 1.50},
		{"st-gmg", 3.00},
		{"st-keyhub", 5.50},
	}

	var prices []catalog.Price
	for i, g := range games {
		for j, sp := range storeSpread {
			current := g.BestPrice + sp.markup
			if current > g.OriginalPrice {
				current = g.OriginalPrice
			}
			prices = append(prices, catalog.Price{
				ID:            "p-" + g.ID + "-" + sp.storeID,
				GameID:        g.ID,
				StoreID:       sp.storeID,
				EditionID:     g.Editions[0].ID,
				Region:        "global",
				CurrentPrice:  current,
				OriginalPrice: g.OriginalPrice,
				Discount:      catalog.DiscountPercent(g.OriginalPrice, current),
				DealScore:     g.DealScore - j*3,
				InStock:       (i+j)%7 != 6,
				LastSeenAt:    lastSeen,
			})
		}
	}
	return prices
}

// seedDeals projects the on-sale games into deals. Every deal score is the
// weighted combination of its own breakdown.
func seedDeals(games []catalog.Game) []catalog.Deal {
	breakdowns := map[string]catalog.DealScoreBreakdown{
		"g-001": {HistoricalLow: 85, Prediction: 90, StoreTrust: 98, PriceTrend: 88, Region: 80, Edition: 75, TimeSensitivity: 90},
		"g-003": {HistoricalLow: 96, Prediction: 95, StoreTrust: 98, PriceTrend: 92, Region: 85, Edition: 90, TimeSensitivity: 85},
		"g-006": {HistoricalLow: 100, Prediction: 92, StoreTrust: 96, PriceTrend: 95, Region: 90, Edition: 95, TimeSensitivity: 80},
		"g-008": {HistoricalLow: 78, Prediction: 82, StoreTrust: 90, PriceTrend: 75, Region: 70, Edition: 72, TimeSensitivity: 88},
		"g-010": {HistoricalLow: 98, Prediction: 90, StoreTrust: 94, PriceTrend: 90, Region: 85, Edition: 88, TimeSensitivity: 82},
	}
	tags := map[string][]catalog.DealTag{
		"g-001": {catalog.TagFlashSale, catalog.TagTrending},
		"g-003": {catalog.TagHistoricalLow, catalog.TagEditorsPick},
		"g-006": {catalog.TagHistoricalLow, catalog.TagLimitedTime},
		"g-008": {catalog.TagFlashSale},
		"g-010": {catalog.TagHistoricalLow, catalog.TagEditorsPick},
	}

	var deals []catalog.Deal
	for _, g := range games {
		b, ok := breakdowns[g.ID]
		if !ok {
			continue
		}
		deals = append(deals, catalog.Deal{
			ID:        "d-" + g.ID,
			GameID:    g.ID,
			StoreID:   "st-steam",
			Tags:      tags[g.ID],
			DealScore: dealscore.Compute(b),
			Breakdown: b,
			ExpiresAt: lastSeen.AddDate(0, 0, 7),
		})
	}
	return deals
}

// Notifications is the initial feed seeded at process start when nothing was
// persisted yet.
func Notifications() []stores.Notification {
	return []stores.Notification{
		{
			ID:        "ntf-seed-001",
			Type:      stores.NotifyPriceDrop,
			Title:     "Price drop: The Witcher 3",
			Message:   "The Witcher 3: Wild Hunt dropped to $9.99, its all-time low.",
			GameID:    "g-006",
			CreatedAt: lastSeen.Add(-48 * time.Hour),
		},
		{
			ID:        "ntf-seed-002",
			Type:      stores.NotifyDealScore,
			Title:     "Legendary deal: Cyberpunk 2077",
			Message:   "Cyberpunk 2077 reached a deal score of 93.",
			GameID:    "g-003",
			CreatedAt: lastSeen.Add(-24 * time.Hour),
		},
		{
			ID:        "ntf-seed-003",
			Type:      stores.NotifySystem,
			Title:     "Welcome to GrabKey",
			Message:   "Track prices, set alerts and never overpay for a key again.",
			CreatedAt: lastSeen.Add(-72 * time.Hour),
		},
	}
}
