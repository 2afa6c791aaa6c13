package api

import "time"

// TokenResponse is the payload of the login and register endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UserProfile is the account document served by GET /auth/me.
type UserProfile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidationItem mirrors one entry of a FastAPI-style 422 response body.
type ValidationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}
