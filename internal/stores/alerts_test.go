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

func newTestAlerts() *Alerts {
	return NewAlerts(storage.NewMemoryStorage(), zerolog.Nop())
}

func TestAlertsAddStartsActive(t *testing.T) {
	ctx := context.Background()
	a := newTestAlerts()

	alert := a.Add(ctx, "g-001", 29.99, 39.99, []string{"in-app"}, nil)

	assert.NotEmpty(t, alert.ID)
	assert.Equal(t, AlertActive, alert.Status)
	assert.Equal(t, 29.99, alert.TargetPrice)
	assert.False(t, alert.CreatedAt.IsZero())

	got, ok := a.Get(alert.ID)
	require.True(t, ok)
	assert.Equal(t, alert.ID, got.ID)
}

func TestAlertsToggleFlipsActivePaused(t *testing.T) {
	ctx := context.Background()
	a := newTestAlerts()

	alert := a.Add(ctx, "g-001", 29.99, 39.99, nil, nil)

	a.Toggle(ctx, alert.ID)
	got, _ := a.Get(alert.ID)
	assert.Equal(t, AlertPaused, got.Status)

	a.Toggle(ctx, alert.ID)
	got, _ = a.Get(alert.ID)
	assert.Equal(t, AlertActive, got.Status)
}

func TestAlertsToggleTerminalStatesAreNoOps(t *testing.T) {
	ctx := context.Background()
	a := newTestAlerts()

	triggered := a.Add(ctx, "g-001", 29.99, 39.99, nil, nil)
	require.True(t, a.MarkTriggered(ctx, triggered.ID, 28.99))

	a.Toggle(ctx, triggered.ID)
	got, _ := a.Get(triggered.ID)
	assert.Equal(t, AlertTriggered, got.Status, "triggered is terminal")

	expired := a.Add(ctx, "g-002", 19.99, 24.99, nil, nil)
	require.True(t, a.MarkExpired(ctx, expired.ID))

	a.Toggle(ctx, expired.ID)
	got, _ = a.Get(expired.ID)
	assert.Equal(t, AlertExpired, got.Status, "expired is terminal")
}

func TestAlertsMarkTriggeredOnlyFromActive(t *testing.T) {
	ctx := context.Background()
	a := newTestAlerts()

	alert := a.Add(ctx, "g-001", 29.99, 39.99, nil, nil)
	a.Toggle(ctx, alert.ID) // paused

	assert.False(t, a.MarkTriggered(ctx, alert.ID, 28.99), "paused alerts must not trigger")

	a.Toggle(ctx, alert.ID) // active again
	assert.True(t, a.MarkTriggered(ctx, alert.ID, 28.99))

	got, _ := a.Get(alert.ID)
	assert.Equal(t, AlertTriggered, got.Status)
	require.NotNil(t, got.TriggeredAt)

	// A second trigger on the same alert is rejected.
	assert.False(t, a.MarkTriggered(ctx, alert.ID, 27.99))
}

func TestAlertsUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	a := newTestAlerts()

	alert := a.Add(ctx, "g-001", 29.99, 39.99, []string{"in-app"}, nil)

	newTarget := 24.99
	expires := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	a.Update(ctx, alert.ID, AlertUpdate{TargetPrice: &newTarget, ExpiresAt: &expires})

	got, _ := a.Get(alert.ID)
	assert.Equal(t, 24.99, got.TargetPrice)
	require.NotNil(t, got.ExpiresAt)
	assert.Equal(t, expires, *got.ExpiresAt)
	assert.Equal(t, []string{"in-app"}, got.Channels, "unset fields stay put")
}

func TestAlertsForGameAndActive(t *testing.T) {
	ctx := context.Background()
	a := newTestAlerts()

	first := a.Add(ctx, "g-001", 29.99, 39.99, nil, nil)
	a.Add(ctx, "g-001", 24.99, 39.99, nil, nil)
	a.Add(ctx, "g-002", 9.99, 14.99, nil, nil)

	assert.Len(t, a.ForGame("g-001"), 2)
	assert.Len(t, a.All(), 3)

	a.Toggle(ctx, first.ID)
	assert.Len(t, a.Active(), 2)
}

func TestAlertsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()

	first := NewAlerts(st, zerolog.Nop())
	alert := first.Add(ctx, "g-001", 29.99, 39.99, []string{"email"}, nil)

	second := NewAlerts(st, zerolog.Nop())
	got, ok := second.Get(alert.ID)
	require.True(t, ok)
	assert.Equal(t, AlertActive, got.Status)
	assert.Equal(t, []string{"email"}, got.Channels)
}

func TestAlertsRemove(t *testing.T) {
	ctx := context.Background()
	a := newTestAlerts()

	alert := a.Add(ctx, "g-001", 29.99, 39.99, nil, nil)
	a.Remove(ctx, alert.ID)

	_, ok := a.Get(alert.ID)
	assert.False(t, ok)
	assert.Empty(t, a.All())
}
