package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ichramsyah/bebasblog-backend/models"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Picture       string `json:"picture"`
}

// GoogleProvider runs the OAuth2 authorization code flow against Google.
type GoogleProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "profile", "email"},
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange trades the callback code for a token and fetches the user's profile.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (models.ExternalProfile, error) {
	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return models.ExternalProfile{}, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return models.ExternalProfile{}, err
	}
	resp, err := p.config.Client(ctx, tok).Do(req)
	if err != nil {
		return models.ExternalProfile{}, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ExternalProfile{}, fmt.Errorf("read userinfo: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.ExternalProfile{}, fmt.Errorf("userinfo: status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return models.ExternalProfile{}, fmt.Errorf("unmarshal userinfo: %w", err)
	}

	profile := models.ExternalProfile{
		Provider:    models.ProviderGoogle,
		ProviderID:  info.Sub,
		DisplayName: info.Name,
		PictureURL:  info.Picture,
	}
	if info.EmailVerified {
		profile.Email = info.Email
	}
	return profile, nil
}
