package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dtroode/portfolio/internal/client/session"
)

var _ session.Authenticator = (*AuthAPI)(nil)

// AuthAPI signs in against the backend's own email/password endpoints.
type AuthAPI struct {
	client *Client
}

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	Admin        bool      `json:"admin"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func (a *AuthAPI) SignIn(ctx context.Context, email, password string) (session.Identity, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return session.Identity{}, fmt.Errorf("failed to encode login request: %w", err)
	}

	var out loginResponse
	if _, err := a.client.do(ctx, http.MethodPost, "/api/auth/login", bytes.NewReader(body), "application/json", &out); err != nil {
		return session.Identity{}, err
	}

	return session.Identity{
		Token:        out.AccessToken,
		RefreshToken: out.RefreshToken,
		UID:          out.UID,
		Email:        out.Email,
		Admin:        out.Admin,
		ExpiresAt:    out.ExpiresAt,
	}, nil
}

// SignOut revokes the refresh token of identity on the server.
func (a *AuthAPI) SignOut(ctx context.Context, identity session.Identity) error {
	body, err := json.Marshal(map[string]string{"refreshToken": identity.RefreshToken})
	if err != nil {
		return fmt.Errorf("failed to encode logout request: %w", err)
	}

	_, err = a.client.do(ctx, http.MethodPost, "/api/auth/logout", bytes.NewReader(body), "application/json", nil)
	return err
}
