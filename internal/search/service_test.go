package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grabkey/deal-service/internal/catalog"
)

func manyGames(n int) []catalog.Game {
	games := make([]catalog.Game, 0, n)
	for i := 0; i < n; i++ {
		games = append(games, catalog.Game{
			ID:        fmt.Sprintf("g-%03d", i+1),
			Title:     fmt.Sprintf("Game %03d", i+1),
			BestPrice: float64(i) + 0.99,
			DealScore: i % 100,
		})
	}
	return games
}

func TestHasMorePages(t *testing.T) {
	tests := []struct {
		page, pageSize, total int
		want                  bool
	}{
		{1, 24, 50, true},
		{2, 24, 50, true},
		{3, 24, 50, false},
		{1, 24, 24, false},
		{1, 24, 25, true},
		{1, 24, 0, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HasMorePages(tt.page, tt.pageSize, tt.total),
			"page=%d size=%d total=%d", tt.page, tt.pageSize, tt.total)
	}
}

func TestPaginateFiftyItems(t *testing.T) {
	items := manyGames(50)

	p1 := Paginate(items, 1, 24)
	assert.Len(t, p1.Items, 24)
	assert.Equal(t, 50, p1.TotalCount)
	assert.True(t, p1.HasMore)
	assert.Equal(t, "g-001", p1.Items[0].ID)

	p2 := Paginate(items, 2, 24)
	assert.Len(t, p2.Items, 24)
	assert.True(t, p2.HasMore)
	assert.Equal(t, "g-025", p2.Items[0].ID)

	p3 := Paginate(items, 3, 24)
	assert.Len(t, p3.Items, 2)
	assert.False(t, p3.HasMore)
}

func TestPaginatePastEndIsEmptyNotNil(t *testing.T) {
	p := Paginate(manyGames(10), 5, 24)
	require.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 10, p.TotalCount)
	assert.False(t, p.HasMore)
}

func TestPaginateDefaultsInvalidArguments(t *testing.T) {
	p := Paginate(manyGames(30), 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Len(t, p.Items, 24)
}

func TestServiceSearchPipeline(t *testing.T) {
	repo := catalog.NewMemoryRepository(catalog.Snapshot{Games: fixtureGames()})
	svc := NewService(repo)

	page, err := svc.Search(context.Background(), Filters{Genres: []string{"RPG"}, Sort: SortPriceAsc}, 1, 24)
	require.NoError(t, err)
	assert.Equal(t, []string{"g-003", "g-004", "g-001"}, idsOf(page.Items))
	assert.Equal(t, 3, page.TotalCount)
	assert.False(t, page.HasMore)
}
