// Package authapi is the REST client other services (the frontend, the admin
// CLI) use to talk to the auth backend. Every request carries the static
// service API key; user-scoped calls additionally carry a bearer token.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/edusys/eduauth/internal/common"
)

// User is the wire representation of a listed user.
type User struct {
	Username string `json:"username"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client for the auth service at baseURL (scheme + host +
// port, no trailing slash). httpClient may be nil; a default with a sane
// timeout is used then.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, http: httpClient}
}

func (c *Client) url(path string) string {
	return c.baseURL + common.APIBasePath + path
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.APIKeyHeaderName, c.apiKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// statusError maps boundary status codes back onto the shared sentinels so
// callers can use errors.Is on either side of the wire.
func statusError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = common.ErrorInvalidArgument
	case http.StatusUnauthorized:
		sentinel = common.ErrorUnauthorized
	case http.StatusForbidden:
		sentinel = common.ErrorForbidden
	case http.StatusNotFound:
		sentinel = common.ErrorUserNotFound
	case http.StatusConflict:
		sentinel = common.ErrorAlreadyExists
	default:
		return fmt.Errorf("auth service: unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return fmt.Errorf("%w: %s", sentinel, bytes.TrimSpace(msg))
}

func (c *Client) do(req *http.Request, wantStatus int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth", "", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(username, password)
	return c.tokenRequest(req)
}

// Refresh trades a still-valid token for a fresh one.
func (c *Client) Refresh(ctx context.Context, token string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth", token, nil)
	if err != nil {
		return "", err
	}
	return c.tokenRequest(req)
}

func (c *Client) tokenRequest(req *http.Request) (string, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}
	token, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// ListUsers returns every registered user.
func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users", token, nil)
	if err != nil {
		return nil, err
	}
	var users []User
	if err := c.do(req, http.StatusOK, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser registers a new user (requires an Admin token).
func (c *Client) CreateUser(ctx context.Context, token, username, password string) (*User, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/user/new", token, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	user := &User{}
	if err := c.do(req, http.StatusOK, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUserRoles returns the role names granted to username.
func (c *Client) ListUserRoles(ctx context.Context, token, username string) ([]string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user/"+username+"/roles", token, nil)
	if err != nil {
		return nil, err
	}
	var roles []string
	if err := c.do(req, http.StatusOK, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// GrantRole grants rolename to username (requires an Admin token).
func (c *Client) GrantRole(ctx context.Context, token, username, rolename string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/user/"+username+"/role/"+rolename, token, nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusOK, nil)
}

// RevokeRole revokes rolename from username (requires an Admin token).
func (c *Client) RevokeRole(ctx context.Context, token, username, rolename string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/user/"+username+"/role/"+rolename, token, nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusOK, nil)
}

// HasRole probes role membership service-to-service; only the API key is
// required. An unknown role name reads as "not held".
func (c *Client) HasRole(ctx context.Context, username, rolename string) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user/"+username+"/has-role/"+rolename, "", nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, statusError(resp)
	}
}

// Health reports whether the service answers its liveness probe.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", "", nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusNoContent, nil)
}
