package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauthapi "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const stateCookieName = "oauth_state"

// GoogleUser is the subset of the identity provider's profile the app needs.
type GoogleUser struct {
	Email     string
	Name      string
	AvatarURL string
}

// GoogleOAuth drives the authorization-code flow against Google.
type GoogleOAuth struct {
	cfg *oauth2.Config
}

// NewGoogleOAuth builds the flow for the given client credentials.
// redirectURL must be the absolute callback URL registered with Google.
func NewGoogleOAuth(clientID, clientSecret, redirectURL string) *GoogleOAuth {
	return &GoogleOAuth{cfg: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}}
}

// Begin sets a random state cookie and redirects to the consent page.
func (g *GoogleOAuth) Begin(w http.ResponseWriter, r *http.Request) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	state := hex.EncodeToString(buf)
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(10 * time.Minute),
	})
	http.Redirect(w, r, g.cfg.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback validates the state cookie, exchanges the code and fetches the
// user's profile from the userinfo endpoint.
func (g *GoogleOAuth) Callback(r *http.Request) (*GoogleUser, error) {
	state := r.URL.Query().Get("state")
	c, err := r.Cookie(stateCookieName)
	if err != nil || state == "" || c.Value != state {
		return nil, errors.New("oauth state mismatch")
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		return nil, errors.New("missing authorization code")
	}

	ctx := r.Context()
	token, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	svc, err := oauthapi.NewService(ctx, option.WithTokenSource(g.cfg.TokenSource(ctx, token)))
	if err != nil {
		return nil, err
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("identity provider returned no email")
	}
	name := info.Name
	if name == "" {
		name = info.Email
	}
	return &GoogleUser{Email: info.Email, Name: name, AvatarURL: info.Picture}, nil
}

// Configured reports whether client credentials were supplied.
func (g *GoogleOAuth) Configured() bool {
	return g.cfg.ClientID != "" && g.cfg.ClientSecret != ""
}
