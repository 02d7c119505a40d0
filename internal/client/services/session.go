// Package services holds the client application services: the session
// store that owns authentication state, and the account operations built
// on top of it.
package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/profilespaces/internal/client/client"
	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/client/nav"
	"github.com/dmitrijs2005/profilespaces/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
	"github.com/dmitrijs2005/profilespaces/internal/common"
	"github.com/dmitrijs2005/profilespaces/internal/logging"
)

// SessionState is a snapshot of the authentication state. A non-empty
// token is not authenticated while Restoring is set.
type SessionState struct {
	Token     string
	User      *models.User
	ExpiresAt *time.Time
	Restoring bool
}

// Authenticated reports whether the session is usable.
func (s SessionState) Authenticated() bool {
	return s.Token != "" && s.User != nil && !s.Restoring
}

// Persister stores the session record durably.
type Persister interface {
	Load(ctx context.Context) (*metadata.SessionRecord, error)
	Save(ctx context.Context, rec metadata.SessionRecord) error
	Clear(ctx context.Context) error
}

// ThemeApplier receives the presentation theme of the signed-in user.
type ThemeApplier interface {
	ApplyTheme(theme models.Theme)
	ClearTheme()
}

type nopTheme struct{}

func (nopTheme) ApplyTheme(models.Theme) {}
func (nopTheme) ClearTheme()             {}

// SessionService owns the session. It is safe for concurrent use.
type SessionService struct {
	api   client.Client
	store Persister
	theme ThemeApplier
	nav   nav.Navigator
	log   logging.Logger

	mu        sync.RWMutex
	state     SessionState
	listeners []func(SessionState)
}

// SessionOption customizes a SessionService.
type SessionOption func(*SessionService)

func WithThemeApplier(t ThemeApplier) SessionOption {
	return func(s *SessionService) { s.theme = t }
}

func WithNavigator(n nav.Navigator) SessionOption {
	return func(s *SessionService) { s.nav = n }
}

func WithLogger(l logging.Logger) SessionOption {
	return func(s *SessionService) { s.log = l }
}

// NewSessionService returns an unauthenticated session bound to api and store.
func NewSessionService(api client.Client, store Persister, opts ...SessionOption) *SessionService {
	s := &SessionService{
		api:   api,
		store: store,
		theme: nopTheme{},
		nav:   nav.Discard,
		log:   logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// OnChange registers a listener called after every state change.
func (s *SessionService) OnChange(fn func(SessionState)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// State returns a snapshot of the session.
func (s *SessionService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Token returns the session token, or "" unless authenticated.
func (s *SessionService) Token() string {
	st := s.State()
	if !st.Authenticated() {
		return ""
	}
	return st.Token
}

// User returns a copy of the signed-in user, or nil.
func (s *SessionService) User() *models.User {
	return s.State().User
}

// Restore hydrates the session from storage and silently revalidates it.
// Restoration always completes: any failure leaves the session
// unauthenticated. A record that cannot be read is removed.
func (s *SessionService) Restore(ctx context.Context) error {
	rec, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, common.ErrNotFound):
		s.set(SessionState{})
		return nil
	case errors.Is(err, common.ErrCorruptRecord):
		s.log.Warn(ctx, "dropping unreadable session record", "error", err)
		if cerr := s.store.Clear(ctx); cerr != nil {
			s.log.Error(ctx, "clear session record", "error", cerr)
		}
		s.set(SessionState{})
		return nil
	case err != nil:
		s.set(SessionState{})
		return fmt.Errorf("load session record: %w", err)
	}

	user := rec.User
	s.set(SessionState{Token: rec.Token, User: &user, ExpiresAt: rec.ExpiresAt, Restoring: true})

	if _, err := s.RefreshSession(ctx, rec.Token, true); err != nil {
		return err
	}

	s.mu.Lock()
	if s.state.Token == rec.Token && s.state.Restoring {
		s.state.Restoring = false
	}
	s.mu.Unlock()
	return nil
}

// RefreshSession revalidates token with the server. On success the user is
// updated and persisted. On failure a silent refresh clears the session and
// returns nil; otherwise the error is returned and the state kept.
func (s *SessionService) RefreshSession(ctx context.Context, token string, silent bool) (*models.User, error) {
	user, err := s.api.Session(ctx, token)
	if err != nil {
		if silent {
			s.log.Info(ctx, "session revalidation failed", "error", err)
			s.mu.RLock()
			same := s.state.Token == token
			s.mu.RUnlock()
			if same {
				_ = s.ClearAuth(ctx)
			}
			return nil, nil
		}
		return nil, formError("refresh session", err)
	}

	s.mu.Lock()
	if s.state.Token != token {
		// the session changed while the request was in flight
		s.mu.Unlock()
		return user, nil
	}
	s.state.User = user
	s.state.Restoring = false
	st := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, st)
	s.changed(st)
	return user, nil
}

// Login validates c, authenticates and persists the new session.
func (s *SessionService) Login(ctx context.Context, c models.Credentials) (*models.User, error) {
	if errs := validation.Login(c); !errs.Empty() {
		return nil, invalid(errs)
	}

	res, err := s.api.Login(ctx, c)
	if err != nil {
		return nil, formError("login", err)
	}

	s.adopt(ctx, res)
	s.log.Info(ctx, "logged in", "user", res.User.Username)
	s.nav.Navigate(nav.Profile)
	return &res.User, nil
}

// Signup validates f, creates the account and persists the new session.
func (s *SessionService) Signup(ctx context.Context, f models.SignupFields) (*models.User, error) {
	if errs := validation.Signup(f); !errs.Empty() {
		return nil, invalid(errs)
	}

	res, err := s.api.Signup(ctx, f)
	if err != nil {
		return nil, formError("signup", err)
	}

	s.adopt(ctx, res)
	s.log.Info(ctx, "signed up", "user", res.User.Username)
	s.nav.Navigate(nav.Profile)
	return &res.User, nil
}

// Logout notifies the server and clears the session. The server call is
// best effort; local state is cleared regardless.
func (s *SessionService) Logout(ctx context.Context) error {
	return s.logout(ctx, s.api.Logout)
}

// LogoutAll ends every session of the user, then clears local state.
func (s *SessionService) LogoutAll(ctx context.Context) error {
	return s.logout(ctx, s.api.LogoutAll)
}

func (s *SessionService) logout(ctx context.Context, call func(context.Context, string) error) error {
	token := s.State().Token
	if token != "" {
		if err := call(ctx, token); err != nil {
			s.log.Warn(ctx, "logout request failed", "error", err)
		}
	}

	err := s.ClearAuth(ctx)
	s.nav.Navigate(nav.Login)
	return err
}

// ClearAuth drops the session from memory and storage.
func (s *SessionService) ClearAuth(ctx context.Context) error {
	s.set(SessionState{})

	if err := s.store.Clear(ctx); err != nil {
		s.log.Error(ctx, "clear session record", "error", err)
		return fmt.Errorf("clear session record: %w", err)
	}
	return nil
}

// SetUser replaces the signed-in user, e.g. after a profile update.
func (s *SessionService) SetUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	if s.state.Token == "" {
		s.mu.Unlock()
		return common.ErrNotAuthenticated
	}
	s.state.User = &user
	st := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, st)
	s.changed(st)
	return nil
}

// Rotate adopts a token issued by the server after a password change or
// reset.
func (s *SessionService) Rotate(ctx context.Context, res *models.AuthResult) {
	s.adopt(ctx, res)
}

func (s *SessionService) adopt(ctx context.Context, res *models.AuthResult) {
	var exp *time.Time
	if !res.ExpiresAt.IsZero() {
		t := res.ExpiresAt
		exp = &t
	}
	user := res.User
	st := SessionState{Token: res.Token, User: &user, ExpiresAt: exp}
	s.set(st)
	s.persist(ctx, st)
}

func (s *SessionService) persist(ctx context.Context, st SessionState) {
	if st.Token == "" || st.User == nil {
		return
	}
	rec := metadata.SessionRecord{Token: st.Token, User: *st.User, ExpiresAt: st.ExpiresAt}
	if err := s.store.Save(ctx, rec); err != nil {
		s.log.Error(ctx, "persist session record", "error", err)
	}
}

func (s *SessionService) set(st SessionState) {
	s.mu.Lock()
	s.state = st
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
}

func (s *SessionService) changed(st SessionState) {
	if st.User != nil {
		s.theme.ApplyTheme(st.User.Theme)
	} else {
		s.theme.ClearTheme()
	}

	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(st)
	}
}

func (s *SessionService) snapshotLocked() SessionState {
	st := s.state
	if st.User != nil {
		u := *st.User
		u.Interests = append([]string(nil), st.User.Interests...)
		st.User = &u
	}
	return st
}
