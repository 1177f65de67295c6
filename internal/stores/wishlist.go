package stores

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/grabkey/deal-service/internal/storage"
)

// WishlistItem is a wishlisted game, unique per game ID.
type WishlistItem struct {
	GameID      string    `json:"gameId"`
	AddedAt     time.Time `json:"addedAt"`
	TargetPrice *float64  `json:"targetPrice,omitempty"`
}

// Wishlist is the persistent wishlist container.
type Wishlist struct {
	mu      sync.RWMutex
	items   []WishlistItem
	persist persister
	now     func() time.Time
}

// NewWishlist creates a wishlist rehydrated from storage.
func NewWishlist(st storage.Storage, logger zerolog.Logger) *Wishlist {
	w := &Wishlist{
		persist: newPersister(st, KeyWishlist, logger.With().Str("store", "wishlist").Logger()),
		now:     time.Now,
	}
	w.persist.load(context.Background(), &w.items)
	return w
}

// Add puts a game on the wishlist. Adding a game already present is a no-op,
// so repeated adds never create duplicates.
func (w *Wishlist) Add(ctx context.Context, gameID string, targetPrice *float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, item := range w.items {
		if item.GameID == gameID {
			return
		}
	}
	w.items = append(w.items, WishlistItem{
		GameID:      gameID,
		AddedAt:     w.now(),
		TargetPrice: targetPrice,
	})
	w.persist.commit(ctx, w.items)
}

// Remove drops a game from the wishlist. Removing an absent game is a no-op.
func (w *Wishlist) Remove(ctx context.Context, gameID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, item := range w.items {
		if item.GameID == gameID {
			w.items = append(w.items[:i], w.items[i+1:]...)
			w.persist.commit(ctx, w.items)
			return
		}
	}
}

// UpdateTargetPrice sets the target price for a wishlisted game. Absent game
// is a no-op.
func (w *Wishlist) UpdateTargetPrice(ctx context.Context, gameID string, targetPrice *float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.items {
		if w.items[i].GameID == gameID {
			w.items[i].TargetPrice = targetPrice
			w.persist.commit(ctx, w.items)
			return
		}
	}
}

// Contains reports whether the game is wishlisted.
func (w *Wishlist) Contains(gameID string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, item := range w.items {
		if item.GameID == gameID {
			return true
		}
	}
	return false
}

// Items returns a copy of the wishlist, in insertion order.
func (w *Wishlist) Items() []WishlistItem {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]WishlistItem, len(w.items))
	copy(out, w.items)
	return out
}

// Clear empties the wishlist.
func (w *Wishlist) Clear(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = nil
	w.persist.commit(ctx, w.items)
}
