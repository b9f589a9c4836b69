package api

import (
	"context"
	"net/http"
)

// loginResponse is the token envelope issued by the service.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token and persists it.
// Auth calls are never deferred to the offline queue: a login that
// cannot reach the service has simply failed.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return err
	}
	return c.tokens.Save(resp.AccessToken)
}

// Logout invalidates the session server-side (best effort) and always
// clears the persisted token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	if cerr := c.tokens.Clear(); err == nil {
		err = cerr
	}
	return err
}
