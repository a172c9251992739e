package store

import (
	"context"
	"errors"

	"github.com/mkolev/recipe-club/internal/gateway"
	"github.com/mkolev/recipe-club/internal/model"
	"github.com/mkolev/recipe-club/internal/notify"
	"github.com/mkolev/recipe-club/internal/session"
)

// SessionStorage is the durable token+user storage behind the user store.
// Token and user are written together and removed together; Load reports
// session.ErrNoSession for anything partial.
type SessionStorage interface {
	Save(ctx context.Context, token string, user model.User) error
	SaveUser(ctx context.Context, user model.User) error
	Load(ctx context.Context) (string, model.User, error)
	Clear(ctx context.Context) error
}

// ExpiryWatcher schedules a callback at the bearer token's expiry.
type ExpiryWatcher interface {
	Start(token string, onExpired func())
	Stop()
}

// UserState is the read snapshot of the user store.
type UserState struct {
	User         *model.User
	Token        string
	Loading      bool
	Error        string
	Users        []model.User
	Params       model.UserFilters
	TotalResults int
}

// UserStore owns the authenticated session and the admin user list.
type UserStore struct {
	pipeline
	gw      gateway.UserGateway
	storage SessionStorage
	watcher ExpiryWatcher
	nav     notify.Navigator

	listOp op

	user         *model.User
	token        string
	users        []model.User
	params       model.UserFilters
	totalResults int
}

// NewUserStore builds the store and hydrates it from durable storage: if a
// complete session is stored, state is seeded from it and the expiration
// watch restarted. This is the only place state is seeded outside an
// operation call.
func NewUserStore(gw gateway.UserGateway, storage SessionStorage, watcher ExpiryWatcher, notifier notify.Notifier, nav notify.Navigator) *UserStore {
	s := &UserStore{
		pipeline: newPipeline("users", notifier),
		gw:       gw,
		storage:  storage,
		watcher:  watcher,
		nav:      nav,
		params:   model.DefaultUserFilters(),
	}

	token, user, err := storage.Load(context.Background())
	if err == nil {
		s.user = &user
		s.token = token
		watcher.Start(token, s.expire)
	} else if !errors.Is(err, session.ErrNoSession) {
		notifier.Error("stored session could not be read")
	}
	return s
}

// State returns a copy of the current state.
func (s *UserStore) State() UserState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return UserState{
		User:         s.user,
		Token:        s.token,
		Loading:      s.loading,
		Error:        s.err,
		Users:        s.users,
		Params:       s.params,
		TotalResults: s.totalResults,
	}
}

// IsLoggedIn reports token presence. Computed on every read, never stored.
func (s *UserStore) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

func (s *UserStore) IsUserAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.IsAdmin()
}

func (s *UserStore) IsUserSuperAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.IsSuperAdmin()
}

// Login authenticates and, on success, persists the session, patches
// state and starts the expiration watch.
func (s *UserStore) Login(ctx context.Context, req model.LoginRequest) {
	s.authenticate(ctx, "login failed", func(ctx context.Context) (gateway.Result[model.AuthResponse], error) {
		return s.gw.Login(ctx, req)
	})
}

// Signup registers a new account; its success path is identical to Login.
func (s *UserStore) Signup(ctx context.Context, req model.SignupRequest) {
	s.authenticate(ctx, "signup failed", func(ctx context.Context) (gateway.Result[model.AuthResponse], error) {
		return s.gw.Signup(ctx, req)
	})
}

func (s *UserStore) authenticate(ctx context.Context, fallback string, call func(context.Context) (gateway.Result[model.AuthResponse], error)) {
	s.start(nil)
	go func() {
		res, err := call(ctx)
		if err != nil {
			s.fail(nil, 0, err, fallback, func() {
				s.user = nil
				s.token = ""
			})
			return
		}
		if err := s.storage.Save(ctx, res.Data.Token, res.Data.User); err != nil {
			s.fail(nil, 0, err, "could not persist session", nil)
			return
		}
		s.succeed(nil, 0, func() {
			u := res.Data.User
			s.user = &u
			s.token = res.Data.Token
		})
		s.notifier.Success(res.Message)
		s.watcher.Start(res.Data.Token, s.expire)
	}()
}

// expire is the expiration watch callback: durable storage is cleared,
// state drops to initial, and the user lands on the login view.
func (s *UserStore) expire() {
	_ = s.storage.Clear(context.Background())
	s.reset()
	s.nav.NavigateTo("/login")
}

func (s *UserStore) reset() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.loading = false
	s.err = ""
	s.users = nil
	s.params = model.DefaultUserFilters()
	s.totalResults = 0
	s.mu.Unlock()
	s.bc.notify()
}

// Logout clears durable storage, resets state to initial and stops the
// expiration watch. Synchronous, not a pipeline, and idempotent: calling
// it while logged out leaves the same initial state.
func (s *UserStore) Logout(ctx context.Context) {
	_ = s.storage.Clear(ctx)
	s.watcher.Stop()
	s.reset()
	s.notifier.Info("signed out")
}

// UpdateUser submits profile changes for the logged-in user. Only the user
// field is patched; the token is untouched.
func (s *UserStore) UpdateUser(ctx context.Context, payload gateway.ProfilePayload) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		s.notifier.Error("not logged in")
		return
	}
	userID := s.user.ID
	s.mu.Unlock()

	s.start(nil)
	go func() {
		res, err := s.gw.UpdateProfile(ctx, userID, payload)
		if err != nil {
			s.fail(nil, 0, err, "failed to update profile", nil)
			return
		}
		if err := s.storage.SaveUser(ctx, res.Data); err != nil {
			s.fail(nil, 0, err, "could not persist profile", nil)
			return
		}
		s.succeed(nil, 0, func() {
			u := res.Data
			s.user = &u
		})
		s.notifier.Success(res.Message)
	}()
}

// GetAllUsers fetches one page of the admin user list; the input filters
// become the store's params.
func (s *UserStore) GetAllUsers(ctx context.Context, filters model.UserFilters) {
	token := s.listOp.begin()
	s.start(func() { s.params = filters })
	go func() {
		res, err := s.gw.ListAll(ctx, filters)
		if err != nil {
			s.fail(&s.listOp, token, err, "failed to load users", func() {
				s.users = nil
				s.totalResults = 0
			})
			return
		}
		s.succeed(&s.listOp, token, func() {
			s.users = res.Data.Users
			s.totalResults = res.Data.TotalResults
		})
	}()
}

// PromoteUserToAdmin grants the admin role; success re-fetches the user
// list with the current params so totals stay correct.
func (s *UserStore) PromoteUserToAdmin(ctx context.Context, userID string) {
	s.moderate(ctx, userID, s.gw.Promote, "failed to promote user")
}

// DemoteAdminToUser revokes the admin role.
func (s *UserStore) DemoteAdminToUser(ctx context.Context, userID string) {
	s.moderate(ctx, userID, s.gw.Demote, "failed to demote user")
}

// AdminDeleteUser removes an account.
func (s *UserStore) AdminDeleteUser(ctx context.Context, userID string) {
	s.moderate(ctx, userID, s.gw.AdminDelete, "failed to delete user")
}

func (s *UserStore) moderate(ctx context.Context, userID string, call func(context.Context, string) (gateway.Result[model.User], error), fallback string) {
	s.start(nil)
	go func() {
		res, err := call(ctx, userID)
		if err != nil {
			s.fail(nil, 0, err, fallback, nil)
			return
		}
		s.succeed(nil, 0, nil)
		s.notifier.Success(res.Message)
		s.mu.Lock()
		params := s.params
		s.mu.Unlock()
		s.GetAllUsers(ctx, params)
	}()
}

// ForgotPassword requests a reset email.
func (s *UserStore) ForgotPassword(ctx context.Context, email string) {
	s.start(nil)
	go func() {
		res, err := s.gw.ForgotPassword(ctx, email)
		if err != nil {
			s.fail(nil, 0, err, "failed to request password reset", nil)
			return
		}
		s.succeed(nil, 0, nil)
		s.notifier.Success(res.Message)
	}()
}

// ResetPassword redeems a reset token; success lands on the login view.
func (s *UserStore) ResetPassword(ctx context.Context, token, newPassword string) {
	s.start(nil)
	go func() {
		res, err := s.gw.ResetPassword(ctx, token, newPassword)
		if err != nil {
			s.fail(nil, 0, err, "failed to reset password", nil)
			return
		}
		s.succeed(nil, 0, nil)
		s.notifier.Success(res.Message)
		s.nav.NavigateTo("/login")
	}()
}

// SetParams replaces the filter descriptor without fetching.
func (s *UserStore) SetParams(params model.UserFilters) {
	s.mu.Lock()
	s.params = params
	s.mu.Unlock()
	s.bc.notify()
}

// ClearParams resets the filter descriptor to its defaults.
func (s *UserStore) ClearParams() {
	s.SetParams(model.DefaultUserFilters())
}

func (s *UserStore) ClearUsers() {
	s.mu.Lock()
	s.users = nil
	s.mu.Unlock()
	s.bc.notify()
}

func (s *UserStore) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
	s.bc.notify()
}
