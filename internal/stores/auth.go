package stores

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/grabkey/deal-service/internal/storage"
)

// User is the profile held by the auth session.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// UserUpdate holds the fields of a partial profile update.
type UserUpdate struct {
	Email     *string `json:"email,omitempty"`
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

type authState struct {
	User            *User `json:"user,omitempty"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}

// Auth is the persistent auth session container.
type Auth struct {
	mu      sync.RWMutex
	state   authState
	persist persister
}

// NewAuth creates an auth store rehydrated from storage.
func NewAuth(st storage.Storage, logger zerolog.Logger) *Auth {
	a := &Auth{
		persist: newPersister(st, KeyAuth, logger.With().Str("store", "auth").Logger()),
	}
	a.persist.load(context.Background(), &a.state)
	return a
}

// Login replaces the current user and marks the session authenticated.
func (a *Auth) Login(ctx context.Context, user User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.User = &user
	a.state.IsAuthenticated = true
	a.persist.commit(ctx, a.state)
}

// Logout clears the user and the authenticated flag.
func (a *Auth) Logout(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.User = nil
	a.state.IsAuthenticated = false
	a.persist.commit(ctx, a.state)
}

// UpdateUser merges the non-nil fields into the current user. A no-op when
// nobody is logged in.
func (a *Auth) UpdateUser(ctx context.Context, upd UserUpdate) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.User == nil {
		return
	}
	if upd.Email != nil {
		a.state.User.Email = *upd.Email
	}
	if upd.Name != nil {
		a.state.User.Name = *upd.Name
	}
	if upd.AvatarURL != nil {
		a.state.User.AvatarURL = *upd.AvatarURL
	}
	a.persist.commit(ctx, a.state)
}

// Current returns the logged-in user, if any.
func (a *Auth) Current() (User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.state.User == nil {
		return User{}, false
	}
	return *a.state.User, true
}

// IsAuthenticated reports whether a user session is active.
func (a *Auth) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.IsAuthenticated
}
