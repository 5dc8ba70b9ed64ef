package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// CookieName is the persisted session token cookie.
const CookieName = "authToken"

// Handler exposes login, logout, and the activity keep-alive ping.
type Handler struct {
	service Service
	ttl     time.Duration
}

func NewHandler(service Service, ttl time.Duration) *Handler {
	return &Handler{service: service, ttl: ttl}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)
}

// RegisterGuardedRoutes adds the routes that themselves require a live
// session. The activity ping exists so clients can translate user
// interaction events into idle-clock resets.
func (h *Handler) RegisterGuardedRoutes(r chi.Router) {
	r.Post("/api/auth/activity", h.activity)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"authenticated": true})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(CookieName); err == nil {
		h.service.Logout(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) activity(w http.ResponseWriter, r *http.Request) {
	// RequireAuth already touched the idle clock.
	w.WriteHeader(http.StatusNoContent)
}

// RequireAuth guards a route subtree. Any request that passes counts as
// user activity and resets the session's idle clock.
func RequireAuth(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(CookieName)
			if err != nil {
				http.Error(w, "Not authenticated", http.StatusUnauthorized)
				return
			}
			if _, err := service.Authenticate(c.Value); err != nil {
				http.Error(w, "Not authenticated", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
