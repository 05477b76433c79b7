package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	dErrors "github.com/dhanuj00123/HeadlessCms/pkg/domainerrors"
)

// Default Google endpoints. Overridable in Config so tests can point the
// adapter at a local httptest server.
const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Config holds the provider client registration.
type Config struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
}

// Google implements Provider against Google's OAuth2 endpoints, requesting
// the profile and email scopes.
type Google struct {
	oauth       *oauth2.Config
	userInfoURL string
}

func NewGoogle(cfg Config) *Google {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = googleAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = googleTokenURL
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = googleUserInfoURL
	}

	return &Google{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		userInfoURL: userInfoURL,
	}
}

func (g *Google) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

// userInfo is the raw userinfo payload. Only the fields we consume.
type userInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (g *Google) ResolveProfile(ctx context.Context, code string) (*Profile, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "authorization code exchange failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build userinfo request")
	}

	resp, err := g.oauth.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "userinfo request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, dErrors.New(dErrors.CodeInternal,
			fmt.Sprintf("userinfo request returned status %d", resp.StatusCode))
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode userinfo response")
	}

	return normalize(info)
}

// normalize validates the raw payload into a Profile. A missing id or email
// is fatal: without them a unique local user cannot be constructed.
func normalize(info userInfo) (*Profile, error) {
	if info.ID == "" || info.Email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid profile data from provider")
	}
	name := info.Name
	if name == "" {
		name = info.Email
	}
	return &Profile{
		GoogleID: info.ID,
		Email:    info.Email,
		Name:     name,
		Avatar:   info.Picture,
	}, nil
}
