package stores

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grabkey/deal-service/internal/storage"
)

func TestPreferencesDefaults(t *testing.T) {
	p := NewPreferences(storage.NewMemoryStorage(), zerolog.Nop())

	state := p.State()
	assert.Equal(t, "us", state.Region)
	assert.Equal(t, "USD", state.Currency)
	assert.Empty(t, state.Platforms)
}

func TestPreferencesUpdatesAreIndependent(t *testing.T) {
	ctx := context.Background()
	p := NewPreferences(storage.NewMemoryStorage(), zerolog.Nop())

	p.SetRegion(ctx, "eu")
	assert.Equal(t, "USD", p.State().Currency, "region change leaves currency alone")

	p.SetCurrency(ctx, "EUR")
	p.SetPlatforms(ctx, []string{"windows", "linux"})

	state := p.State()
	assert.Equal(t, "eu", state.Region)
	assert.Equal(t, "EUR", state.Currency)
	assert.Equal(t, []string{"windows", "linux"}, state.Platforms)
}

func TestPreferencesSurviveRestart(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()

	first := NewPreferences(st, zerolog.Nop())
	first.SetRegion(ctx, "uk")
	first.SetCurrency(ctx, "GBP")

	second := NewPreferences(st, zerolog.Nop())
	state := second.State()
	assert.Equal(t, "uk", state.Region)
	assert.Equal(t, "GBP", state.Currency)
}

func TestAuthLoginLogout(t *testing.T) {
	ctx := context.Background()
	a := NewAuth(storage.NewMemoryStorage(), zerolog.Nop())

	assert.False(t, a.IsAuthenticated())
	_, ok := a.Current()
	assert.False(t, ok)

	a.Login(ctx, User{ID: "u-1", Email: "sam@example.com", Name: "Sam"})
	assert.True(t, a.IsAuthenticated())

	user, ok := a.Current()
	require.True(t, ok)
	assert.Equal(t, "sam@example.com", user.Email)

	a.Logout(ctx)
	assert.False(t, a.IsAuthenticated())
	_, ok = a.Current()
	assert.False(t, ok)
}

func TestAuthUpdateUser(t *testing.T) {
	ctx := context.Background()
	a := NewAuth(storage.NewMemoryStorage(), zerolog.Nop())

	// No user: update is a no-op, not a login.
	name := "Nobody"
	a.UpdateUser(ctx, UserUpdate{Name: &name})
	assert.False(t, a.IsAuthenticated())

	a.Login(ctx, User{ID: "u-1", Email: "sam@example.com", Name: "Sam"})

	newName := "Samantha"
	a.UpdateUser(ctx, UserUpdate{Name: &newName})

	user, _ := a.Current()
	assert.Equal(t, "Samantha", user.Name)
	assert.Equal(t, "sam@example.com", user.Email, "unset fields stay put")
}

func TestAuthSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()

	first := NewAuth(st, zerolog.Nop())
	first.Login(ctx, User{ID: "u-1", Email: "sam@example.com"})

	second := NewAuth(st, zerolog.Nop())
	assert.True(t, second.IsAuthenticated())
	user, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, "u-1", user.ID)
}
