package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/scapet/scapet-go/pkg/errors"
)

// Manager owns the authenticated-user lifecycle. All session mutation goes
// through it; shared state is exposed read-only through the accessors.
type Manager interface {
	Restore(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password, fullName string) error
	Logout(ctx context.Context)
	RefreshProfile(ctx context.Context) error
	UpdateProfile(ctx context.Context, fullName string) error
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error

	State() State
	Loading() bool
	Authenticated() bool
	CurrentUser() (User, bool)
	Credits() int
	Token() string
	TokenExpiry() (time.Time, bool)

	HandleUnauthorized(ctx context.Context)
}

type manager struct {
	store   Store
	auth    AuthClient
	profile ProfileClient
	logger  *slog.Logger

	mu      sync.RWMutex
	state   State
	loading bool
	token   string
	user    User
}

// NewManager wires up the session lifecycle.
func NewManager(store Store, auth AuthClient, profile ProfileClient, logger *slog.Logger) Manager {
	return &manager{
		store:   store,
		auth:    auth,
		profile: profile,
		logger:  logger.With("component", "session.manager"),
		state:   StateUnauthenticated,
	}
}

// Restore rebuilds the session from the persisted snapshot. The cached
// identity is adopted optimistically, then verified against the profile
// endpoint; any verification failure tears the session down rather than
// leaving an expired credential looking valid.
func (m *manager) Restore(ctx context.Context) error {
	snap, ok, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn("session snapshot unreadable, discarding", "error", err)
		m.teardown(ctx)
		return nil
	}
	if !ok || snap.Token == "" || snap.User.Email == "" {
		return nil
	}

	m.mu.Lock()
	m.state = StateRestoring
	m.loading = true
	m.token = snap.Token
	m.user = snap.User
	m.mu.Unlock()

	profile, err := m.profile.Me(ctx)
	if err != nil {
		m.logger.Warn("session restore verification failed", "error", err)
		m.teardown(ctx)
		m.setLoading(false)
		return nil
	}

	user := toUser(profile)
	m.persist(ctx, Snapshot{Token: snap.Token, User: user})

	m.mu.Lock()
	m.state = StateAuthenticated
	m.loading = false
	m.user = user
	m.mu.Unlock()

	m.logger.Info("session restored", "email", user.Email)
	return nil
}

// Login authenticates and establishes a fresh session. A rejected
// credential leaves any existing session untouched.
func (m *manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return apperrors.Wrap("auth_error", Translate(err), err)
	}
	return m.establish(ctx, resp.AccessToken)
}

// Register creates the account and authenticates in the same step; there
// is no separate verification round-trip.
func (m *manager) Register(ctx context.Context, email, password, fullName string) error {
	resp, err := m.auth.Register(ctx, email, password, fullName)
	if err != nil {
		return apperrors.Wrap("auth_error", Translate(err), err)
	}
	return m.establish(ctx, resp.AccessToken)
}

// establish adopts a freshly issued token, fetches the profile behind it
// and commits the complete snapshot in a single write. A profile fetch
// failure at this point tears everything down: a token without a verified
// identity is not a session worth keeping.
func (m *manager) establish(ctx context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	profile, err := m.profile.Me(ctx)
	if err != nil {
		m.teardown(ctx)
		return apperrors.Wrap("auth_error", Translate(err), err)
	}

	user := toUser(profile)
	m.persist(ctx, Snapshot{Token: token, User: user})

	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = user
	m.mu.Unlock()

	m.logger.Info("session established", "email", user.Email)
	return nil
}

// Logout is local-only: it clears the snapshot and resets in-memory state.
// The remote service is never called.
func (m *manager) Logout(ctx context.Context) {
	m.teardown(ctx)
}

// RefreshProfile refetches the profile, typically after guide generation
// changed the credit balance. Unlike the startup restore check, a failure
// here only reports: mid-session the cached profile is still the best
// available answer and a transient blip must not log the user out.
func (m *manager) RefreshProfile(ctx context.Context) error {
	token := m.Token()
	if token == "" {
		return ErrNoSession
	}

	profile, err := m.profile.Me(ctx)
	if err != nil {
		m.logger.Warn("profile refresh failed", "error", err)
		return err
	}

	user := toUser(profile)
	m.persist(ctx, Snapshot{Token: token, User: user})

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return nil
}

// UpdateProfile renames the account and syncs the cached profile.
func (m *manager) UpdateProfile(ctx context.Context, fullName string) error {
	token := m.Token()
	if token == "" {
		return ErrNoSession
	}

	profile, err := m.profile.UpdateProfile(ctx, fullName)
	if err != nil {
		return apperrors.Wrap("profile_error", Translate(err), err)
	}

	user := toUser(profile)
	m.persist(ctx, Snapshot{Token: token, User: user})

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return nil
}

// ChangePassword rotates the password for the current account.
func (m *manager) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if m.Token() == "" {
		return ErrNoSession
	}
	if err := m.profile.ChangePassword(ctx, currentPassword, newPassword); err != nil {
		return apperrors.Wrap("profile_error", Translate(err), err)
	}
	return nil
}

// HandleUnauthorized is registered with the transport and fires when any
// request outside the auth endpoints comes back 401.
func (m *manager) HandleUnauthorized(ctx context.Context) {
	m.logger.Info("credential rejected by server, clearing session")
	m.teardown(ctx)
}

func (m *manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Authenticated reports whether a token is currently held and not yet
// invalidated. True during the optimistic restore window.
func (m *manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

func (m *manager) CurrentUser() (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" {
		return User{}, false
	}
	return m.user, true
}

func (m *manager) Credits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Credits
}

// Token satisfies the transport's TokenSource.
func (m *manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// TokenExpiry reads the exp claim without verifying the signature; the
// server remains the authority, this is informational only.
func (m *manager) TokenExpiry() (time.Time, bool) {
	token := m.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (m *manager) setLoading(loading bool) {
	m.mu.Lock()
	m.loading = loading
	m.mu.Unlock()
}

// persist writes the snapshot; persistence trouble is logged, not fatal,
// because the in-memory session stays usable either way.
func (m *manager) persist(ctx context.Context, snap Snapshot) {
	if err := m.store.Save(ctx, snap); err != nil {
		m.logger.Warn("persist session snapshot failed", "error", err)
	}
}

func (m *manager) teardown(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("clear session snapshot failed", "error", err)
	}
	m.mu.Lock()
	m.state = StateUnauthenticated
	m.token = ""
	m.user = User{}
	m.mu.Unlock()
}
