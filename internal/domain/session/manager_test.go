package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/scapet/scapet-go/internal/infra/api"
	apperrors "github.com/scapet/scapet-go/pkg/errors"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeStore struct {
	snap   Snapshot
	held   bool
	saves  int
	clears int
}

func (s *fakeStore) Load(context.Context) (Snapshot, bool, error) {
	return s.snap, s.held, nil
}

func (s *fakeStore) Save(_ context.Context, snap Snapshot) error {
	s.snap = snap
	s.held = true
	s.saves++
	return nil
}

func (s *fakeStore) Clear(context.Context) error {
	s.snap = Snapshot{}
	s.held = false
	s.clears++
	return nil
}

type fakeAuth struct {
	token string
	err   error
}

func (a *fakeAuth) Login(context.Context, string, string) (api.TokenResponse, error) {
	if a.err != nil {
		return api.TokenResponse{}, a.err
	}
	return api.TokenResponse{AccessToken: a.token, TokenType: "bearer"}, nil
}

func (a *fakeAuth) Register(context.Context, string, string, string) (api.TokenResponse, error) {
	return a.Login(nil, "", "")
}

type fakeProfile struct {
	profile api.UserProfile
	err     error
	calls   int
}

func (p *fakeProfile) Me(context.Context) (api.UserProfile, error) {
	p.calls++
	if p.err != nil {
		return api.UserProfile{}, p.err
	}
	return p.profile, nil
}

func (p *fakeProfile) UpdateProfile(_ context.Context, fullName string) (api.UserProfile, error) {
	if p.err != nil {
		return api.UserProfile{}, p.err
	}
	updated := p.profile
	updated.FullName = fullName
	p.profile = updated
	return updated, nil
}

func (p *fakeProfile) ChangePassword(context.Context, string, string) error {
	return p.err
}

func testProfile() api.UserProfile {
	return api.UserProfile{ID: 7, Email: "ana@example.com", FullName: "Ana", Credits: 400}
}

func TestRestoreAdoptsAndVerifiesSnapshot(t *testing.T) {
	store := &fakeStore{
		snap: Snapshot{Token: "tok-1", User: User{Email: "ana@example.com", Credits: 100}},
		held: true,
	}
	profile := &fakeProfile{profile: testProfile()}
	mgr := NewManager(store, &fakeAuth{}, profile, newTestLogger())

	require.NoError(t, mgr.Restore(context.Background()))

	require.Equal(t, StateAuthenticated, mgr.State())
	require.True(t, mgr.Authenticated())
	require.False(t, mgr.Loading())
	require.Equal(t, "tok-1", mgr.Token())
	// The cached credits were stale; the live profile wins and is persisted.
	require.Equal(t, 400, mgr.Credits())
	require.Equal(t, 400, store.snap.User.Credits)
	require.Equal(t, 1, profile.calls)
}

func TestRestoreTearsDownOnVerificationFailure(t *testing.T) {
	store := &fakeStore{
		snap: Snapshot{Token: "tok-stale", User: User{Email: "ana@example.com"}},
		held: true,
	}
	profile := &fakeProfile{err: &api.Error{Status: 401, Message: "Invalid token"}}
	mgr := NewManager(store, &fakeAuth{}, profile, newTestLogger())

	require.NoError(t, mgr.Restore(context.Background()))

	require.Equal(t, StateUnauthenticated, mgr.State())
	require.False(t, mgr.Authenticated())
	require.False(t, mgr.Loading())
	require.Empty(t, mgr.Token())
	require.False(t, store.held, "storage must be cleared")
}

func TestRestoreWithoutSnapshotStaysUnauthenticated(t *testing.T) {
	profile := &fakeProfile{profile: testProfile()}
	mgr := NewManager(&fakeStore{}, &fakeAuth{}, profile, newTestLogger())

	require.NoError(t, mgr.Restore(context.Background()))

	require.Equal(t, StateUnauthenticated, mgr.State())
	require.Zero(t, profile.calls, "no verification without a persisted session")
}

func TestLoginEstablishesSession(t *testing.T) {
	store := &fakeStore{}
	mgr := NewManager(store, &fakeAuth{token: "tok-new"}, &fakeProfile{profile: testProfile()}, newTestLogger())

	require.NoError(t, mgr.Login(context.Background(), "ana@example.com", "secret12"))

	require.True(t, mgr.Authenticated())
	user, ok := mgr.CurrentUser()
	require.True(t, ok)
	require.Equal(t, "Ana", user.FullName)
	require.True(t, store.held)
	require.Equal(t, "tok-new", store.snap.Token)
	require.Equal(t, "ana@example.com", store.snap.User.Email)
}

func TestLoginFailureTranslatesAndKeepsState(t *testing.T) {
	store := &fakeStore{}
	auth := &fakeAuth{err: &api.Error{Status: 401, Message: "Invalid credentials"}}
	mgr := NewManager(store, auth, &fakeProfile{}, newTestLogger())

	err := mgr.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)
	require.Equal(t, "Email o contraseña incorrectos.", apperrors.UserMessage(err))
	require.True(t, apperrors.IsCode(err, "auth_error"))

	require.False(t, mgr.Authenticated())
	require.Zero(t, store.saves)
	require.Zero(t, store.clears)
}

func TestLoginTearsDownWhenProfileFetchFails(t *testing.T) {
	store := &fakeStore{}
	mgr := NewManager(store, &fakeAuth{token: "tok-new"}, &fakeProfile{err: errors.New("boom")}, newTestLogger())

	require.Error(t, mgr.Login(context.Background(), "ana@example.com", "secret12"))
	require.False(t, mgr.Authenticated())
	require.False(t, store.held)
}

func TestLogoutIsLocalOnly(t *testing.T) {
	store := &fakeStore{}
	mgr := NewManager(store, &fakeAuth{token: "tok"}, &fakeProfile{profile: testProfile()}, newTestLogger())
	require.NoError(t, mgr.Login(context.Background(), "ana@example.com", "secret12"))

	mgr.Logout(context.Background())

	require.False(t, mgr.Authenticated())
	require.Equal(t, StateUnauthenticated, mgr.State())
	require.False(t, store.held)
	_, ok := mgr.CurrentUser()
	require.False(t, ok)
}

func TestRefreshProfileFailureKeepsSession(t *testing.T) {
	store := &fakeStore{}
	profile := &fakeProfile{profile: testProfile()}
	mgr := NewManager(store, &fakeAuth{token: "tok"}, profile, newTestLogger())
	require.NoError(t, mgr.Login(context.Background(), "ana@example.com", "secret12"))

	profile.err = &api.Error{Message: api.MsgNoResponse}
	err := mgr.RefreshProfile(context.Background())
	require.Error(t, err)

	// A mid-session refresh blip must not log the user out.
	require.True(t, mgr.Authenticated())
	require.Equal(t, StateAuthenticated, mgr.State())
	require.True(t, store.held)
}

func TestRefreshProfileUpdatesCredits(t *testing.T) {
	store := &fakeStore{}
	profile := &fakeProfile{profile: testProfile()}
	mgr := NewManager(store, &fakeAuth{token: "tok"}, profile, newTestLogger())
	require.NoError(t, mgr.Login(context.Background(), "ana@example.com", "secret12"))

	profile.profile.Credits = 150
	require.NoError(t, mgr.RefreshProfile(context.Background()))

	require.Equal(t, 150, mgr.Credits())
	require.Equal(t, 150, store.snap.User.Credits)
}

func TestRefreshProfileWithoutSession(t *testing.T) {
	mgr := NewManager(&fakeStore{}, &fakeAuth{}, &fakeProfile{}, newTestLogger())
	require.ErrorIs(t, mgr.RefreshProfile(context.Background()), ErrNoSession)
}

func TestUpdateProfileSyncsSnapshot(t *testing.T) {
	store := &fakeStore{}
	profile := &fakeProfile{profile: testProfile()}
	mgr := NewManager(store, &fakeAuth{token: "tok"}, profile, newTestLogger())
	require.NoError(t, mgr.Login(context.Background(), "ana@example.com", "secret12"))

	require.NoError(t, mgr.UpdateProfile(context.Background(), "Ana María"))

	user, _ := mgr.CurrentUser()
	require.Equal(t, "Ana María", user.FullName)
	require.Equal(t, "Ana María", store.snap.User.FullName)
}

func TestHandleUnauthorizedClearsSession(t *testing.T) {
	store := &fakeStore{}
	mgr := NewManager(store, &fakeAuth{token: "tok"}, &fakeProfile{profile: testProfile()}, newTestLogger())
	require.NoError(t, mgr.Login(context.Background(), "ana@example.com", "secret12"))

	mgr.HandleUnauthorized(context.Background())

	require.False(t, mgr.Authenticated())
	require.False(t, store.held)
}

func TestTokenExpiryFromClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	store := &fakeStore{}
	mgr := NewManager(store, &fakeAuth{token: signed}, &fakeProfile{profile: testProfile()}, newTestLogger())
	require.NoError(t, mgr.Login(context.Background(), "ana@example.com", "secret12"))

	got, ok := mgr.TokenExpiry()
	require.True(t, ok)
	require.True(t, got.Equal(exp))

	mgr.Logout(context.Background())
	_, ok = mgr.TokenExpiry()
	require.False(t, ok)
}
