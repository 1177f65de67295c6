package stores

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/grabkey/deal-service/internal/pkg/cuid2"
	"github.com/grabkey/deal-service/internal/storage"
)

// NotificationType is the closed set of notification kinds.
type NotificationType string

const (
	NotifyPriceDrop      NotificationType = "price-drop"
	NotifyAlertTriggered NotificationType = "alert-triggered"
	NotifyDealScore      NotificationType = "deal-score"
	NotifySystem         NotificationType = "system"
)

// Notification is one entry in the user's notification feed.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	GameID    string           `json:"gameId,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Notifications is the persistent notification feed, newest first.
type Notifications struct {
	mu      sync.RWMutex
	items   []Notification
	persist persister
	now     func() time.Time
	newID   func() string
}

// NewNotifications creates a notification store rehydrated from storage.
// When nothing was persisted yet the feed starts from the given seed set.
func NewNotifications(st storage.Storage, seed []Notification, logger zerolog.Logger) *Notifications {
	n := &Notifications{
		persist: newPersister(st, KeyNotifications, logger.With().Str("store", "notifications").Logger()),
		now:     time.Now,
		newID:   func() string { return cuid2.New("ntf") },
	}
	if !n.persist.load(context.Background(), &n.items) {
		n.items = append(n.items, seed...)
	}
	return n
}

// Add prepends a fresh unread notification.
func (n *Notifications) Add(ctx context.Context, typ NotificationType, title, message, gameID string) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	item := Notification{
		ID:        n.newID(),
		Type:      typ,
		Title:     title,
		Message:   message,
		GameID:    gameID,
		Read:      false,
		CreatedAt: n.now(),
	}
	n.items = append([]Notification{item}, n.items...)
	n.persist.commit(ctx, n.items)
	return item
}

// MarkRead flips one notification to read. Unknown ids are a no-op.
func (n *Notifications) MarkRead(ctx context.Context, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.items {
		if n.items[i].ID == id {
			if !n.items[i].Read {
				n.items[i].Read = true
				n.persist.commit(ctx, n.items)
			}
			return
		}
	}
}

// MarkAllRead flips every notification to read.
func (n *Notifications) MarkAllRead(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	changed := false
	for i := range n.items {
		if !n.items[i].Read {
			n.items[i].Read = true
			changed = true
		}
	}
	if changed {
		n.persist.commit(ctx, n.items)
	}
}

// Remove deletes one notification. Unknown ids are a no-op.
func (n *Notifications) Remove(ctx context.Context, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.items {
		if n.items[i].ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			n.persist.commit(ctx, n.items)
			return
		}
	}
}

// Clear empties the feed.
func (n *Notifications) Clear(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = nil
	n.persist.commit(ctx, n.items)
}

// All returns a copy of the feed, newest first.
func (n *Notifications) All() []Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

// UnreadCount is the number of unread notifications.
func (n *Notifications) UnreadCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	count := 0
	for _, item := range n.items {
		if !item.Read {
			count++
		}
	}
	return count
}
