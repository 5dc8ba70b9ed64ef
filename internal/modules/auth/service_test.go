package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestGuard(t *testing.T, idle, tick time.Duration) Service {
	t.Helper()
	g, err := NewService(Options{
		Username:    "admin",
		Password:    "hunter2",
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		IdleTimeout: idle,
		CheckTick:   tick,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func TestLoginMatch(t *testing.T) {
	g := newTestGuard(t, time.Minute, time.Second)

	token, err := g.Login(context.Background(), "admin", "hunter2")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a token")
	}
	if _, err := g.Authenticate(token); err != nil {
		t.Errorf("Expected the fresh token to authenticate, got: %v", err)
	}
}

func TestLoginMismatch(t *testing.T) {
	g := newTestGuard(t, time.Minute, time.Second)

	cases := [][2]string{
		{"admin", "wrong"},
		{"intruder", "hunter2"},
		{"", ""},
	}
	for _, c := range cases {
		if _, err := g.Login(context.Background(), c[0], c[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials for %q/%q, got: %v", c[0], c[1], err)
		}
	}
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	g := newTestGuard(t, time.Minute, time.Second)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := g.Authenticate(token); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("Expected ErrNotAuthenticated for %q, got: %v", token, err)
		}
	}
}

func TestAuthenticateRejectsForgedToken(t *testing.T) {
	g := newTestGuard(t, time.Minute, time.Second)
	other := newTestGuard(t, time.Minute, time.Second)

	token, err := g.Login(context.Background(), "admin", "hunter2")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	// Same claims, different signing key.
	if _, err := other.Authenticate(token); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated across guards, got: %v", err)
	}
}

func TestIdleTimeout(t *testing.T) {
	g := newTestGuard(t, 40*time.Millisecond, 10*time.Millisecond)

	token, err := g.Login(context.Background(), "admin", "hunter2")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// No activity past the threshold: the janitor logs the session out.
	time.Sleep(100 * time.Millisecond)

	if _, err := g.Authenticate(token); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected idle session to be logged out, got: %v", err)
	}
}

func TestActivityResetsIdleClock(t *testing.T) {
	g := newTestGuard(t, 80*time.Millisecond, 10*time.Millisecond)

	token, err := g.Login(context.Background(), "admin", "hunter2")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// Keep touching the session; total elapsed exceeds the threshold but
	// no single gap does.
	for i := 0; i < 6; i++ {
		time.Sleep(25 * time.Millisecond)
		if _, err := g.Authenticate(token); err != nil {
			t.Fatalf("Expected activity to keep the session alive, got: %v", err)
		}
	}
}

func TestLogout(t *testing.T) {
	g := newTestGuard(t, time.Minute, time.Second)

	token, err := g.Login(context.Background(), "admin", "hunter2")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	g.Logout(token)
	if _, err := g.Authenticate(token); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated after logout, got: %v", err)
	}

	// Logging out twice is a no-op.
	g.Logout(token)
}
