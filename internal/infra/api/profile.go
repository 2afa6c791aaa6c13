package api

import "context"

// ProfileAPI covers the account profile endpoints.
type ProfileAPI struct {
	client *Client
}

// NewProfileAPI builds the profile surface on the shared transport.
func NewProfileAPI(client *Client) *ProfileAPI {
	return &ProfileAPI{client: client}
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Me fetches the current account profile.
func (p *ProfileAPI) Me(ctx context.Context) (UserProfile, error) {
	var profile UserProfile
	err := p.client.Get(ctx, "/auth/me", &profile)
	return profile, err
}

// UpdateProfile changes the display name and returns the updated profile.
func (p *ProfileAPI) UpdateProfile(ctx context.Context, fullName string) (UserProfile, error) {
	var profile UserProfile
	err := p.client.Put(ctx, "/auth/me", updateProfileRequest{FullName: fullName}, &profile)
	return profile, err
}

// ChangePassword rotates the account password.
func (p *ProfileAPI) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return p.client.Post(ctx, "/profile/change-password", changePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, nil)
}
