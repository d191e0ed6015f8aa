package handlers

import (
	"log"
	"net/http"

	"github.com/ccaruso/gestion-ingresos/auth"
	"github.com/ccaruso/gestion-ingresos/httpx"
	"github.com/ccaruso/gestion-ingresos/internal/store"
)

type AuthHandler struct {
	store  *store.Store
	google *auth.GoogleOAuth
}

func NewAuthHandler(s *store.Store, google *auth.GoogleOAuth) *AuthHandler {
	return &AuthHandler{store: s, google: google}
}

// Login points clients at the identity-provider entry. There is no local
// credential form; Google is the only way in.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"login_url": "/auth/login/google"})
}

// LoginGoogle starts the authorization-code flow.
func (h *AuthHandler) LoginGoogle(w http.ResponseWriter, r *http.Request) {
	if !h.google.Configured() {
		httpx.JSONError(w, http.StatusServiceUnavailable, "identity_provider_not_configured", nil)
		return
	}
	h.google.Begin(w, r)
}

// GoogleCallback completes the exchange: the profile's email either finds
// the existing user (avatar refreshed) or creates one, then a session is
// established. Provider failures surface as a redirect back to login, never
// a retry.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	profile, err := h.google.Callback(r)
	if err != nil {
		log.Printf("identity provider exchange failed: %v", err)
		http.Redirect(w, r, "/auth/login?error=auth_failed", http.StatusSeeOther)
		return
	}
	user, err := h.store.UpsertLogin(profile.Email, profile.Name, profile.AvatarURL)
	if err != nil {
		log.Printf("login upsert failed: %v", err)
		http.Redirect(w, r, "/auth/login?error=auth_failed", http.StatusSeeOther)
		return
	}
	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}
