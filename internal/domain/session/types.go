package session

import (
	"context"
	"time"

	"github.com/scapet/scapet-go/internal/infra/api"
)

// State captures where the session lifecycle currently is.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateRestoring       State = "restoring"
	StateAuthenticated   State = "authenticated"
)

// User is the cached remote profile.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is the single durable session document: bearer token plus the
// cached profile, written and cleared as one value so a crash can never
// leave the two halves inconsistent.
type Snapshot struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Store persists session snapshots. Load reports presence via its second
// return; a missing snapshot is not an error.
type Store interface {
	Load(ctx context.Context) (Snapshot, bool, error)
	Save(ctx context.Context, snap Snapshot) error
	Clear(ctx context.Context) error
}

// AuthClient talks to the authentication endpoints.
type AuthClient interface {
	Register(ctx context.Context, email, password, fullName string) (api.TokenResponse, error)
	Login(ctx context.Context, email, password string) (api.TokenResponse, error)
}

// ProfileClient talks to the profile endpoints using the current bearer token.
type ProfileClient interface {
	Me(ctx context.Context) (api.UserProfile, error)
	UpdateProfile(ctx context.Context, fullName string) (api.UserProfile, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
}

func toUser(profile api.UserProfile) User {
	return User{
		ID:        profile.ID,
		Email:     profile.Email,
		FullName:  profile.FullName,
		Credits:   profile.Credits,
		CreatedAt: profile.CreatedAt,
	}
}
