// Package auth defines the user and session domain types and the contract
// for the remote authentication service.
package auth

import (
	"context"
	"errors"
	"time"
)

// TokenTTL is the fixed validity window of an issued session token.
const TokenTTL = 24 * time.Hour

var (
	// ErrBadCredentials is returned when no user matches the given
	// username/password pair.
	ErrBadCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned by signup when the username exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned by signup when the email is registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrSessionExpired is returned by Validate for an expired or unknown
	// token.
	ErrSessionExpired = errors.New("session expired or invalid")
	// ErrUnavailable wraps transport failures so callers can surface a
	// generic retryable message instead of raw network errors.
	ErrUnavailable = errors.New("auth service unavailable")
)

// User is the profile returned by the auth service.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Session is a server-issued session record. Token is opaque to the client;
// it is echoed back on subsequent calls and never inspected.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session's expiry is at or before now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Login is the successful result of a login or signup call.
type Login struct {
	User  User
	Token string
}

// SignupRequest carries the fields needed to create an account.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// Service is the remote authentication collaborator. Implementations map
// transport failures to errors wrapping ErrUnavailable; domain outcomes use
// the sentinel errors above. No call panics or leaks raw HTTP errors.
type Service interface {
	// Login checks credentials and issues a session token.
	Login(ctx context.Context, username, password string) (Login, error)

	// Signup enforces username and email uniqueness, creates the account,
	// then performs an implicit login with the same credentials.
	Signup(ctx context.Context, req SignupRequest) (Login, error)

	// Logout invalidates the server-side session for the token.
	Logout(ctx context.Context, token string) error

	// Validate resolves a stored token to its user profile. Returns
	// ErrSessionExpired for unknown or expired tokens.
	Validate(ctx context.Context, token string) (User, error)
}
