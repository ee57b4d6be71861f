package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/myanycart/anycart-go/internal/model"
)

const (
	loginPath    = "/api/token/"
	googlePath   = "/api/auth/google/"
	registerPath = "/api/users/"
)

// Login exchanges username/password credentials for a token pair.
func (c *Client) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	body, err := json.Marshal(model.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	var out model.TokenResponse
	if err := c.DoJSON(ctx, http.MethodPost, loginPath, RequestOptions{Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginGoogle exchanges a Google id_token for a token pair.
func (c *Client) LoginGoogle(ctx context.Context, idToken string) (*model.TokenResponse, error) {
	body, err := json.Marshal(model.GoogleLoginRequest{IDToken: idToken, Credential: idToken})
	if err != nil {
		return nil, err
	}

	var out model.TokenResponse
	if err := c.DoJSON(ctx, http.MethodPost, googlePath, RequestOptions{Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account. Registration also logs the account in, so
// the response carries a token pair alongside the profile fields.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.RegisterResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var out model.RegisterResponse
	if err := c.DoJSON(ctx, http.MethodPost, registerPath, RequestOptions{Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
