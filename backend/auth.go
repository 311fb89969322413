package backend

import (
	"context"
	"net/http"

	apperrors "github.com/campushub/admission-portal/internal/errors"
)

// Auth endpoint paths (trailing slashes are part of the backend contract)
const (
	PathLogin    = "/auth/login/"
	PathRegister = "/auth/register/"
	PathProfile  = "/auth/profile/"
	PathRefresh  = "/auth/token/refresh/"
)

// TokenPairResponse is the login response: a short-lived access token plus a
// longer-lived refresh token.
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterRequest carries the self-registration fields. Role is CANDIDAT or
// ETUDIANT; the backend rejects everything else.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	Role      string `json:"role"`
}

// Profile is the authenticated user's profile as the backend reports it
type Profile struct {
	ID          int64        `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Role        string       `json:"role"`
	Active      bool         `json:"is_active"`
	Institution *Institution `json:"institution,omitempty"`
}

// Login exchanges credentials for a token pair. A backend rejection comes
// back as *APIError, a network failure as ErrConnection.
func (c *Client) Login(ctx context.Context, username, password string) (TokenPairResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var pair TokenPairResponse
	if err := c.postJSON(ctx, PathLogin, body, &pair); err != nil {
		return TokenPairResponse{}, err
	}
	return pair, nil
}

// Register creates a new account. It does not log the user in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.postJSON(ctx, PathRegister, req, nil)
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself is reused, not rotated.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	body := map[string]string{"refresh": refreshToken}
	var out struct {
		Access string `json:"access"`
	}
	if err := c.postJSON(ctx, PathRefresh, body, &out); err != nil {
		return "", err
	}
	if out.Access == "" {
		return "", apperrors.ErrMalformedResponse
	}
	return out.Access, nil
}

// FetchProfile fetches the profile for a bare access token. Used during
// session initialization, before a Doer exists.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+accessToken)
	req, err := c.NewRequest(ctx, http.MethodGet, PathProfile, header, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, errorFromResponse(resp)
	}
	var profile Profile
	if err := decodeBody(resp.Body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
