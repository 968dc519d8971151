// Package googleauth handles the OAuth profile exchange. Token issuance
// for our own API stays in the auth usecase; this package only talks to
// Google.
package googleauth

import (
	"context"
	"fmt"

	"github.com/ecoloop/backend/internal/config"
	"github.com/ecoloop/backend/internal/models"
	"github.com/ecoloop/backend/pkg/util"
	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

type Client interface {
	Enabled() bool
	AuthURL(state string) string
	ExchangeProfile(ctx context.Context, code string) (*models.GoogleProfile, error)
}

type client struct {
	oauth *oauth2.Config
	http  *resty.Client
}

func NewClient(cfg *config.Config) Client {
	oauth := &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Server.BaseURL + "/google/dashboard/callback/qrApp",
		Scopes:       []string{"profile", "email"},
		Endpoint:     google.Endpoint,
	}

	return &client{
		oauth: oauth,
		http:  util.NewRestyClient(),
	}
}

func (c *client) Enabled() bool {
	return c.oauth.ClientID != "" && c.oauth.ClientSecret != ""
}

func (c *client) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeProfile swaps an authorization code for the user's profile.
func (c *client) ExchangeProfile(ctx context.Context, code string) (*models.GoogleProfile, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	var profile models.GoogleProfile
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&profile).
		Get(userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch userinfo: status %d", resp.StatusCode())
	}
	return &profile, nil
}
