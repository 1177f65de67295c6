package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grabkey/deal-service/internal/catalog"
	"github.com/grabkey/deal-service/internal/search"
)

// scriptedSearcher pops pre-programmed pages in call order.
type scriptedSearcher struct {
	mu    sync.Mutex
	pages []search.Page
	calls int
}

func (s *scriptedSearcher) Search(ctx context.Context, f search.Filters, page, pageSize int) (search.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.pages) == 0 {
		return search.Page{Page: page, PageSize: pageSize}, nil
	}
	next := s.pages[0]
	s.pages = s.pages[1:]
	return next, nil
}

func (s *scriptedSearcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func pageOf(page, total int, hasMore bool, ids ...string) search.Page {
	items := make([]catalog.Game, 0, len(ids))
	for _, id := range ids {
		items = append(items, catalog.Game{ID: id})
	}
	return search.Page{Items: items, Page: page, PageSize: 2, TotalCount: total, HasMore: hasMore}
}

func newTestSession(s Searcher) *Session {
	return New(s, 2, zerolog.Nop())
}

func TestSetFiltersLoadsFirstPage(t *testing.T) {
	searcher := &scriptedSearcher{pages: []search.Page{pageOf(1, 5, true, "g-001", "g-002")}}
	sess := newTestSession(searcher)

	snap, err := sess.SetFilters(context.Background(), search.Filters{Query: "ring"})
	require.NoError(t, err)

	assert.Equal(t, 1, snap.CurrentPage)
	assert.Equal(t, []string{"g-001", "g-002"}, resultIDs(snap))
	assert.Equal(t, 5, snap.TotalCount)
	assert.True(t, snap.HasMore)
	assert.False(t, snap.Loading)
}

func TestSetFiltersUnchangedIsNoOp(t *testing.T) {
	searcher := &scriptedSearcher{pages: []search.Page{pageOf(1, 2, false, "g-001", "g-002")}}
	sess := newTestSession(searcher)

	f := search.Filters{Query: "ring"}
	_, err := sess.SetFilters(context.Background(), f)
	require.NoError(t, err)
	require.Equal(t, 1, searcher.callCount())

	snap, err := sess.SetFilters(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, searcher.callCount(), "unchanged filters must not refetch")
	assert.Equal(t, []string{"g-001", "g-002"}, resultIDs(snap))
}

func TestSetFiltersChangeResetsAccumulation(t *testing.T) {
	searcher := &scriptedSearcher{pages: []search.Page{
		pageOf(1, 4, true, "g-001", "g-002"),
		pageOf(2, 4, false, "g-003", "g-004"),
		pageOf(1, 1, false, "g-009"),
	}}
	sess := newTestSession(searcher)

	_, err := sess.SetFilters(context.Background(), search.Filters{Query: "a"})
	require.NoError(t, err)
	_, err = sess.LoadMore(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"g-001", "g-002", "g-003", "g-004"}, resultIDs(sess.State()))

	snap, err := sess.SetFilters(context.Background(), search.Filters{Query: "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"g-009"}, resultIDs(snap))
	assert.Equal(t, 1, snap.CurrentPage)
}

func TestLoadMoreAppends(t *testing.T) {
	searcher := &scriptedSearcher{pages: []search.Page{
		pageOf(1, 5, true, "g-001", "g-002"),
		pageOf(2, 5, true, "g-003", "g-004"),
		pageOf(3, 5, false, "g-005"),
	}}
	sess := newTestSession(searcher)

	_, err := sess.SetFilters(context.Background(), search.Filters{})
	require.NoError(t, err)

	snap, err := sess.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, snap.CurrentPage)
	assert.Equal(t, []string{"g-001", "g-002", "g-003", "g-004"}, resultIDs(snap))
	assert.True(t, snap.HasMore)

	snap, err = sess.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, snap.CurrentPage)
	assert.Equal(t, []string{"g-001", "g-002", "g-003", "g-004", "g-005"}, resultIDs(snap))
	assert.False(t, snap.HasMore)
}

func TestLoadMoreNoOpWhenExhausted(t *testing.T) {
	searcher := &scriptedSearcher{pages: []search.Page{pageOf(1, 2, false, "g-001", "g-002")}}
	sess := newTestSession(searcher)

	_, err := sess.SetFilters(context.Background(), search.Filters{})
	require.NoError(t, err)

	snap, err := sess.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, searcher.callCount(), "no fetch past the last page")
	assert.Equal(t, []string{"g-001", "g-002"}, resultIDs(snap))
}

func TestLoadMoreSkipsAlreadyMergedPage(t *testing.T) {
	// The fetch returns the trailing page again (a retried response); the
	// session must not append it twice.
	searcher := &scriptedSearcher{pages: []search.Page{
		pageOf(1, 4, true, "g-001", "g-002"),
		pageOf(2, 4, true, "g-003", "g-004"),
		pageOf(3, 4, false, "g-003", "g-004"),
	}}
	sess := newTestSession(searcher)

	_, err := sess.SetFilters(context.Background(), search.Filters{})
	require.NoError(t, err)
	_, err = sess.LoadMore(context.Background())
	require.NoError(t, err)

	snap, err := sess.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"g-001", "g-002", "g-003", "g-004"}, resultIDs(snap))
}

// blockingSearcher parks calls whose query is "slow" until released.
type blockingSearcher struct {
	started chan struct{}
	release chan struct{}
	slow    search.Page
	fast    search.Page
}

func (b *blockingSearcher) Search(ctx context.Context, f search.Filters, page, pageSize int) (search.Page, error) {
	if f.Query == "slow" {
		b.started <- struct{}{}
		<-b.release
		return b.slow, nil
	}
	return b.fast, nil
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	searcher := &blockingSearcher{
		started: make(chan struct{}),
		release: make(chan struct{}),
		slow:    pageOf(1, 2, false, "g-old-1", "g-old-2"),
		fast:    pageOf(1, 1, false, "g-new"),
	}
	sess := newTestSession(searcher)

	done := make(chan Snapshot)
	go func() {
		snap, _ := sess.SetFilters(context.Background(), search.Filters{Query: "slow"})
		done <- snap
	}()

	<-searcher.started

	// A newer filter change lands while the first fetch is still in flight.
	snap, err := sess.SetFilters(context.Background(), search.Filters{Query: "fast"})
	require.NoError(t, err)
	require.Equal(t, []string{"g-new"}, resultIDs(snap))

	close(searcher.release)
	<-done

	// The superseded response must not overwrite the newer result set.
	assert.Equal(t, []string{"g-new"}, resultIDs(sess.State()))
}

// pagedBlockingSearcher parks calls on per-(query,page) gates so tests can
// interleave responses precisely.
type pagedBlockingSearcher struct {
	started map[string]chan struct{}
	release map[string]chan struct{}
	pages   map[string]search.Page
}

func (b *pagedBlockingSearcher) Search(ctx context.Context, f search.Filters, page, pageSize int) (search.Page, error) {
	key := fmt.Sprintf("%s/%d", f.Query, page)
	if started, ok := b.started[key]; ok {
		started <- struct{}{}
		<-b.release[key]
	}
	return b.pages[key], nil
}

func TestStaleLoadMoreLeavesNewFetchLoading(t *testing.T) {
	searcher := &pagedBlockingSearcher{
		started: map[string]chan struct{}{
			"first/2":  make(chan struct{}),
			"second/1": make(chan struct{}),
		},
		release: map[string]chan struct{}{
			"first/2":  make(chan struct{}),
			"second/1": make(chan struct{}),
		},
		pages: map[string]search.Page{
			"first/1":  pageOf(1, 4, true, "g-001", "g-002"),
			"first/2":  pageOf(2, 4, false, "g-003", "g-004"),
			"second/1": pageOf(1, 1, false, "g-new"),
		},
	}
	sess := newTestSession(searcher)

	_, err := sess.SetFilters(context.Background(), search.Filters{Query: "first"})
	require.NoError(t, err)

	moreDone := make(chan struct{})
	go func() {
		_, _ = sess.LoadMore(context.Background())
		close(moreDone)
	}()
	<-searcher.started["first/2"]

	setDone := make(chan Snapshot)
	go func() {
		snap, _ := sess.SetFilters(context.Background(), search.Filters{Query: "second"})
		setDone <- snap
	}()
	<-searcher.started["second/1"]

	// The superseded page-2 response lands while the newer page-1 fetch is
	// still in flight; it must not clear the in-flight flag.
	close(searcher.release["first/2"])
	<-moreDone

	snap := sess.State()
	assert.True(t, snap.Loading)
	assert.Empty(t, resultIDs(snap))

	close(searcher.release["second/1"])
	final := <-setDone
	assert.Equal(t, []string{"g-new"}, resultIDs(final))
	assert.False(t, sess.State().Loading)
}

func TestToggleViewLeavesResultsAlone(t *testing.T) {
	searcher := &scriptedSearcher{pages: []search.Page{pageOf(1, 2, false, "g-001", "g-002")}}
	sess := newTestSession(searcher)

	_, err := sess.SetFilters(context.Background(), search.Filters{})
	require.NoError(t, err)

	assert.Equal(t, ViewList, sess.ToggleView())
	assert.Equal(t, ViewGrid, sess.ToggleView())
	assert.Equal(t, []string{"g-001", "g-002"}, resultIDs(sess.State()))
}

func resultIDs(snap Snapshot) []string {
	ids := make([]string, 0, len(snap.Results))
	for _, g := range snap.Results {
		ids = append(ids, g.ID)
	}
	return ids
}
