package stores

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grabkey/deal-service/internal/storage"
)

func seedFeed() []Notification {
	return []Notification{
		{ID: "ntf-1", Type: NotifySystem, Title: "Welcome", Read: true, CreatedAt: time.Now()},
		{ID: "ntf-2", Type: NotifyPriceDrop, Title: "Price drop", Read: false, CreatedAt: time.Now()},
	}
}

func TestNotificationsSeedUsedOnFirstRun(t *testing.T) {
	n := NewNotifications(storage.NewMemoryStorage(), seedFeed(), zerolog.Nop())

	assert.Len(t, n.All(), 2)
	assert.Equal(t, 1, n.UnreadCount())
}

func TestNotificationsSeedIgnoredAfterPersist(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()

	first := NewNotifications(st, seedFeed(), zerolog.Nop())
	first.Clear(ctx)

	second := NewNotifications(st, seedFeed(), zerolog.Nop())
	assert.Empty(t, second.All(), "persisted empty feed wins over the seed")
}

func TestNotificationsAddPrependsUnread(t *testing.T) {
	ctx := context.Background()
	n := NewNotifications(storage.NewMemoryStorage(), seedFeed(), zerolog.Nop())

	added := n.Add(ctx, NotifyAlertTriggered, "Alert hit", "Elden Ring fell below $30", "g-001")

	all := n.All()
	require.Len(t, all, 3)
	assert.Equal(t, added.ID, all[0].ID, "newest first")
	assert.False(t, all[0].Read)
	assert.Equal(t, 2, n.UnreadCount())
}

func TestNotificationsMarkRead(t *testing.T) {
	ctx := context.Background()
	n := NewNotifications(storage.NewMemoryStorage(), seedFeed(), zerolog.Nop())

	n.MarkRead(ctx, "ntf-2")
	assert.Zero(t, n.UnreadCount())

	// Unknown ids are tolerated.
	n.MarkRead(ctx, "ntf-404")
	assert.Zero(t, n.UnreadCount())
}

func TestNotificationsMarkAllRead(t *testing.T) {
	ctx := context.Background()
	n := NewNotifications(storage.NewMemoryStorage(), nil, zerolog.Nop())

	n.Add(ctx, NotifyPriceDrop, "a", "", "")
	n.Add(ctx, NotifyPriceDrop, "b", "", "")
	require.Equal(t, 2, n.UnreadCount())

	n.MarkAllRead(ctx)
	assert.Zero(t, n.UnreadCount())
}

func TestNotificationsRemove(t *testing.T) {
	ctx := context.Background()
	n := NewNotifications(storage.NewMemoryStorage(), seedFeed(), zerolog.Nop())

	n.Remove(ctx, "ntf-1")
	all := n.All()
	require.Len(t, all, 1)
	assert.Equal(t, "ntf-2", all[0].ID)
}
