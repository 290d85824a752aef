package hubspot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/bsscrm/hubspot-bridge/api/pkg/config"
)

// TokenPair is the result of a token exchange or refresh
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AccountDetails is the portal metadata returned by the account lookup. The
// token-exchange response does not carry the portal id, so callers resolve
// it through here right after the exchange.
type AccountDetails struct {
	PortalID  int64    `json:"portalId"`
	UserID    int64    `json:"userId"`
	HubDomain string   `json:"hubDomain"`
	Scopes    []string `json:"scopes"`
	AppID     int64    `json:"appId"`
}

//go:generate mockgen -source $GOFILE -destination client_mocks.go -package $GOPACKAGE

// Client is the outbound surface against the HubSpot REST API. It is
// stateless: credentials are passed per call.
type Client interface {
	InstallURL(crmUserID string) string
	ExchangeCode(ctx context.Context, code string) (*TokenPair, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetAccountDetails(ctx context.Context, accessToken string) (*AccountDetails, error)
	FetchContact(ctx context.Context, hubID int64, accessToken string, objectID int64) (*ContactDetails, error)
}

// APIClient implements Client against the real HubSpot API
type APIClient struct {
	cfg         config.HubSpot
	oauthConfig *oauth2.Config
	httpClient  *http.Client
}

// NewAPIClient creates a HubSpot client from injected configuration. No
// process-wide state is consulted.
func NewAPIClient(cfg config.HubSpot) *APIClient {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       strings.Fields(cfg.Scopes),
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.AppBaseURL + "/oauth/authorize",
			TokenURL: cfg.APIBaseURL + "/oauth/v1/token",
			// HubSpot wants client credentials in the form body
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	return &APIClient{
		cfg:         cfg,
		oauthConfig: oauthConfig,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// InstallURL builds the consent URL for connecting a portal. The internal
// user id rides along as the OAuth state parameter.
func (c *APIClient) InstallURL(crmUserID string) string {
	return c.oauthConfig.AuthCodeURL(crmUserID)
}

// ExchangeCode exchanges an authorization code for a token pair
func (c *APIClient) ExchangeCode(ctx context.Context, code string) (*TokenPair, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, exchangeError(err)
	}

	return &TokenPair{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}, nil
}

// RefreshAccessToken performs a refresh-token grant. HubSpot does not always
// rotate the refresh token; when the response omits it the previous one is
// carried forward.
func (c *APIClient) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tokenSource := c.oauthConfig.TokenSource(ctx, &oauth2.Token{
		RefreshToken: refreshToken,
	})

	token, err := tokenSource.Token()
	if err != nil {
		return nil, refreshError(err)
	}

	newRefreshToken := token.RefreshToken
	if newRefreshToken == "" {
		newRefreshToken = refreshToken
	}

	log.Debug().Time("expires_at", token.Expiry).Msg("refreshed hubspot access token")

	return &TokenPair{
		AccessToken:  token.AccessToken,
		RefreshToken: newRefreshToken,
		ExpiresAt:    token.Expiry,
	}, nil
}

// GetAccountDetails fetches metadata about the portal the access token
// belongs to
func (c *APIClient) GetAccountDetails(ctx context.Context, accessToken string) (*AccountDetails, error) {
	body, _, err := c.get(ctx, c.cfg.APIBaseURL+"/integrations/v1/me", accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get hubspot account details: %w", err)
	}

	var details AccountDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to parse hubspot account details: %w", err)
	}

	return &details, nil
}

type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// get performs an authenticated GET and returns the body for 2xx responses.
// Non-2xx responses come back as *statusError.
func (c *APIClient) get(ctx context.Context, rawURL, accessToken string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, resp.StatusCode, &statusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, resp.StatusCode, nil
}

func exchangeError(err error) *AuthExchangeError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return &AuthExchangeError{
			StatusCode: retrieveErr.Response.StatusCode,
			Body:       string(retrieveErr.Body),
			Err:        err,
		}
	}
	return &AuthExchangeError{Err: err}
}

func refreshError(err error) *TokenRefreshError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return &TokenRefreshError{
			StatusCode: retrieveErr.Response.StatusCode,
			Body:       string(retrieveErr.Body),
			Err:        err,
		}
	}
	return &TokenRefreshError{Err: err}
}

// buildQuery is a small helper for endpoints with query parameters
func buildQuery(base string, params url.Values) string {
	return base + "?" + params.Encode()
}
