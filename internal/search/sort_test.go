package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grabkey/deal-service/internal/catalog"
)

func TestSortGamesPriceAsc(t *testing.T) {
	got := SortGames(fixtureGames(), SortPriceAsc)
	assert.Equal(t, []string{"g-003", "g-004", "g-002", "g-001"}, idsOf(got))
}

func TestSortGamesPriceDesc(t *testing.T) {
	got := SortGames(fixtureGames(), SortPriceDesc)
	assert.Equal(t, []string{"g-001", "g-002", "g-004", "g-003"}, idsOf(got))
}

func TestSortGamesDealScore(t *testing.T) {
	got := SortGames(fixtureGames(), SortDealScore)
	assert.Equal(t, []string{"g-004", "g-001", "g-003", "g-002"}, idsOf(got))
}

func TestSortGamesReleaseDateNewestFirst(t *testing.T) {
	got := SortGames(fixtureGames(), SortReleaseDate)
	assert.Equal(t, []string{"g-002", "g-001", "g-004", "g-003"}, idsOf(got))
}

func TestSortGamesNameAscAndDescMirror(t *testing.T) {
	asc := SortGames(fixtureGames(), SortNameAsc)
	desc := SortGames(fixtureGames(), SortNameDesc)

	assert.Equal(t, []string{"g-004", "g-001", "g-002", "g-003"}, idsOf(asc))
	assert.Equal(t, []string{"g-003", "g-002", "g-001", "g-004"}, idsOf(desc))
}

func TestSortGamesUnknownKeyFallsBackToDealScore(t *testing.T) {
	assert.Equal(t, idsOf(SortGames(fixtureGames(), SortDealScore)), idsOf(SortGames(fixtureGames(), SortKey("bogus"))))
}

func TestSortGamesTieBreaksOnID(t *testing.T) {
	games := []catalog.Game{
		{ID: "g-b", Title: "Same", BestPrice: 9.99, DealScore: 50},
		{ID: "g-a", Title: "Same", BestPrice: 9.99, DealScore: 50},
		{ID: "g-c", Title: "Same", BestPrice: 9.99, DealScore: 50},
	}

	for _, key := range []SortKey{SortPriceAsc, SortDealScore, SortNameAsc, SortRelevance} {
		got := SortGames(games, key)
		assert.Equal(t, []string{"g-a", "g-b", "g-c"}, idsOf(got), "key %s", key)
	}
}

func TestSortGamesDoesNotMutateInput(t *testing.T) {
	games := fixtureGames()
	before := idsOf(games)
	_ = SortGames(games, SortPriceAsc)
	assert.Equal(t, before, idsOf(games))
}
