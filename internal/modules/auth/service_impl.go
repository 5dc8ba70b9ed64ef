package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Options configures the guard. TokenTTL is the token's absolute
// expiry; IdleTimeout logs a session out after that much inactivity,
// checked every CheckTick. Whichever fires first wins.
type Options struct {
	Username    string
	Password    string
	JWTSecret   string
	TokenTTL    time.Duration
	IdleTimeout time.Duration
	CheckTick   time.Duration
}

type guard struct {
	username string
	passHash []byte
	secret   []byte
	ttl      time.Duration
	idle     time.Duration

	mu       sync.Mutex
	sessions map[string]time.Time // session id -> last activity

	done chan struct{}
}

// NewService creates the session guard and starts its idle janitor.
func NewService(opts Options) (Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	g := &guard{
		username: opts.Username,
		passHash: hash,
		secret:   []byte(opts.JWTSecret),
		ttl:      opts.TokenTTL,
		idle:     opts.IdleTimeout,
		sessions: make(map[string]time.Time),
		done:     make(chan struct{}),
	}
	go g.janitor(opts.CheckTick)
	return g, nil
}

func (g *guard) Login(ctx context.Context, username, password string) (string, error) {
	if username != g.username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(g.passHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	sessionID := uuid.New().String()
	expirationTime := time.Now().Add(g.ttl)
	claims := &jwt.StandardClaims{
		Id:        sessionID,
		Subject:   username,
		ExpiresAt: expirationTime.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(g.secret)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	g.sessions[sessionID] = time.Now()
	g.mu.Unlock()
	return tokenString, nil
}

func (g *guard) Authenticate(tokenString string) (string, error) {
	sessionID, err := g.parse(tokenString)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	last, ok := g.sessions[sessionID]
	if !ok {
		return "", ErrNotAuthenticated
	}
	if time.Since(last) > g.idle {
		delete(g.sessions, sessionID)
		return "", ErrNotAuthenticated
	}
	g.sessions[sessionID] = time.Now()
	return sessionID, nil
}

func (g *guard) Logout(tokenString string) {
	sessionID, err := g.parse(tokenString)
	if err != nil {
		return
	}
	g.mu.Lock()
	delete(g.sessions, sessionID)
	g.mu.Unlock()
}

func (g *guard) Close() {
	close(g.done)
}

// parse verifies the token's signature and absolute expiry and returns
// the session id it carries.
func (g *guard) parse(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return g.secret, nil
	})
	if err != nil || !token.Valid || claims.Id == "" {
		return "", ErrNotAuthenticated
	}
	return claims.Id, nil
}

// janitor enforces the idle timeout: every tick it drops sessions whose
// last activity is older than the threshold.
func (g *guard) janitor(tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-g.done:
			return
		case now := <-t.C:
			g.mu.Lock()
			for id, last := range g.sessions {
				if now.Sub(last) > g.idle {
					delete(g.sessions, id)
					slog.Info("session idled out", "sessionId", id)
				}
			}
			g.mu.Unlock()
		}
	}
}
