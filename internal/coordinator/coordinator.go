// Package coordinator wires the user store's login state to the favorite
// store: logging in loads the favorite ids, logging out clears them. It is
// the one cross-store rule in the application, registered once at startup
// instead of being buried inside either store.
package coordinator

import "context"

// LoginState is the observable side of the user store.
type LoginState interface {
	Changed() <-chan struct{}
	IsLoggedIn() bool
}

// FavoriteActions is what the coordinator drives on the favorite store.
type FavoriteActions interface {
	LoadFavorites(ctx context.Context)
	ClearFavorites()
}

type Coordinator struct {
	users     LoginState
	favorites FavoriteActions
}

func New(users LoginState, favorites FavoriteActions) *Coordinator {
	return &Coordinator{users: users, favorites: favorites}
}

// Run observes login-state transitions until ctx ends, firing exactly once
// per transition no matter how many state changes the user store
// broadcasts. It primes from "logged out", so a session hydrated from
// storage before Run counts as a login and fires one LoadFavorites; that
// load fully replaces the id collection, so firing it again is safe.
func (c *Coordinator) Run(ctx context.Context) {
	loggedIn := false
	for {
		ch := c.users.Changed()
		if now := c.users.IsLoggedIn(); now != loggedIn {
			loggedIn = now
			if now {
				c.favorites.LoadFavorites(ctx)
			} else {
				c.favorites.ClearFavorites()
			}
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return
		}
	}
}
