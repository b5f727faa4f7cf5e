package api

import (
	"context"

	"github.com/jrsteele09/storedesk/stores"
	"github.com/jrsteele09/storedesk/users"
)

const (
	RouteAuthLogin        = "/auth/login"
	RouteAuthRefreshStore = "/auth/refresh-store-token"
	RouteAuthMe           = "/auth/me"
	RouteStores           = "/stores"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        users.Profile `json:"user"`
	AccessToken string        `json:"accessToken"`
}

type RefreshStoreTokenRequest struct {
	StoreID string `json:"storeId"`
}

// TokenResponse is returned by the store-scoped refresh endpoint.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// AuthAPI groups the authentication endpoints.
type AuthAPI struct {
	client *Client
}

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := Post[LoginResponse](ctx, a.client, RouteAuthLogin, LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}
	return &resp, nil
}

// RefreshStoreToken exchanges the current credential for one scoped to storeID.
// A successful call without an access token is reported as ErrMissingAccessToken.
func (a *AuthAPI) RefreshStoreToken(ctx context.Context, storeID string) (string, error) {
	resp, err := Post[TokenResponse](ctx, a.client, RouteAuthRefreshStore, RefreshStoreTokenRequest{StoreID: storeID})
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", ErrMissingAccessToken
	}
	return resp.AccessToken, nil
}

func (a *AuthAPI) Me(ctx context.Context) (*users.Profile, error) {
	p, err := Get[users.Profile](ctx, a.client, RouteAuthMe)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Stores lists the stores the authenticated user may switch to.
func (a *AuthAPI) Stores(ctx context.Context) ([]stores.Store, error) {
	return Get[[]stores.Store](ctx, a.client, RouteStores)
}
