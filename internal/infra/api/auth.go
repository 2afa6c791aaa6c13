package api

import "context"

// AuthAPI covers the credential endpoints.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI builds the auth surface on the shared transport.
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns its first bearer token.
func (a *AuthAPI) Register(ctx context.Context, email, password, fullName string) (TokenResponse, error) {
	var resp TokenResponse
	err := a.client.Post(ctx, "/auth/register", registerRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	}, &resp)
	return resp, err
}

// Login exchanges credentials for a bearer token.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	var resp TokenResponse
	err := a.client.Post(ctx, "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	return resp, err
}
