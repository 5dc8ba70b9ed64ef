package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidCredentials is returned on a username/password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated is returned when a token is missing, expired,
	// or its session has been idled out.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Service defines the interface for the session guard.
type Service interface {
	// Login checks the credentials against the configured pair and, on
	// match, returns a signed token with a fixed absolute expiry.
	Login(ctx context.Context, username, password string) (string, error)

	// Authenticate verifies a token, checks its session is still live,
	// and records the activity. It returns the session id.
	Authenticate(token string) (string, error)

	// Logout ends the session behind the token. Unknown tokens are a
	// no-op: logging out twice is fine.
	Logout(token string)

	// Close stops the idle janitor. The guard must not be used after.
	Close()
}
