// Package restapi implements the auth service contract and per-task sync
// against a json-server style mock resource API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/taskdeck/internal/core/auth"
	"github.com/colonyops/taskdeck/pkg/randid"
)

const defaultTimeout = 10 * time.Second

// Client talks to the mock REST service. It implements auth.Service.
//
// The resource API is dumb storage: the client issues the session token and
// expiry itself and stores them as a session record, mirroring how the
// service would behave if it had real logic.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

var _ auth.Service = (*Client)(nil)

// New creates a client for the resource API at baseURL.
func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log.With().Str("component", "restapi").Logger(),
	}
}

// userRecord is the stored shape of a user, password included. Only profile
// fields ever leave this package.
type userRecord struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func (u userRecord) profile() auth.User {
	return auth.User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
	}
}

// Login checks credentials against /users and creates a session record.
func (c *Client) Login(ctx context.Context, username, password string) (auth.Login, error) {
	query := url.Values{"username": {username}, "password": {password}}

	var users []userRecord
	if err := c.getJSON(ctx, "/users?"+query.Encode(), &users); err != nil {
		return auth.Login{}, err
	}
	if len(users) == 0 {
		return auth.Login{}, auth.ErrBadCredentials
	}

	user := users[0]
	now := time.Now()
	session := auth.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     newToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(auth.TokenTTL),
	}

	if err := c.postJSON(ctx, "/sessions", session, nil); err != nil {
		return auth.Login{}, err
	}

	c.log.Debug().Str("user", user.Username).Msg("session created")
	return auth.Login{User: user.profile(), Token: session.Token}, nil
}

// Signup enforces username/email uniqueness, creates the user, then performs
// an implicit login with the same credentials.
func (c *Client) Signup(ctx context.Context, req auth.SignupRequest) (auth.Login, error) {
	var existing []userRecord
	if err := c.getJSON(ctx, "/users?username="+url.QueryEscape(req.Username), &existing); err != nil {
		return auth.Login{}, err
	}
	if len(existing) > 0 {
		return auth.Login{}, auth.ErrUsernameTaken
	}

	if err := c.getJSON(ctx, "/users?email="+url.QueryEscape(req.Email), &existing); err != nil {
		return auth.Login{}, err
	}
	if len(existing) > 0 {
		return auth.Login{}, auth.ErrEmailTaken
	}

	record := userRecord{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		Name:      req.Name,
		Role:      "user",
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	if err := c.postJSON(ctx, "/users", record, nil); err != nil {
		return auth.Login{}, err
	}

	return c.Login(ctx, req.Username, req.Password)
}

// Logout deletes the session record for the token. Unknown tokens are not an
// error; the caller clears local state regardless.
func (c *Client) Logout(ctx context.Context, token string) error {
	var sessions []auth.Session
	if err := c.getJSON(ctx, "/sessions?token="+url.QueryEscape(token), &sessions); err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}
	return c.delete(ctx, "/sessions/"+url.PathEscape(sessions[0].ID))
}

// Validate resolves a token to its user profile. Expired sessions are deleted
// server-side best-effort and reported as auth.ErrSessionExpired.
func (c *Client) Validate(ctx context.Context, token string) (auth.User, error) {
	var sessions []auth.Session
	if err := c.getJSON(ctx, "/sessions?token="+url.QueryEscape(token), &sessions); err != nil {
		return auth.User{}, err
	}
	if len(sessions) == 0 {
		return auth.User{}, auth.ErrSessionExpired
	}

	session := sessions[0]
	if session.Expired(time.Now()) {
		if err := c.delete(ctx, "/sessions/"+url.PathEscape(session.ID)); err != nil {
			c.log.Warn().Err(err).Msg("delete expired session")
		}
		return auth.User{}, auth.ErrSessionExpired
	}

	var user userRecord
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(session.UserID), &user); err != nil {
		return auth.User{}, err
	}

	return user.profile(), nil
}

func newToken() string {
	// Opaque and unguessable is all the contract asks for.
	return randid.Generate(32)
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, dest)
}

func (c *Client) postJSON(ctx context.Context, path string, body, dest any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dest)
}

func (c *Client) patchJSON(ctx context.Context, path string, body, dest any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dest)
}

func (c *Client) delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, nil)
}

// do executes the request and decodes the response. Transport failures and
// unexpected statuses are wrapped as auth.ErrUnavailable so callers surface a
// single retryable message.
func (c *Client) do(req *http.Request, dest any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s returned %d: %s",
			auth.ErrUnavailable, req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %v", auth.ErrUnavailable, err)
	}
	return nil
}
