package hubspot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bsscrm/hubspot-bridge/api/pkg/config"
)

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

// ClientSuite runs the client against a fake HubSpot API. Every test
// installs its own handler.
type ClientSuite struct {
	suite.Suite

	ctx     context.Context
	server  *httptest.Server
	handler http.HandlerFunc
	client  *APIClient
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
	s.server = httptest.NewServer(http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		s.handler(res, req)
	}))

	s.client = NewAPIClient(config.HubSpot{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RedirectURI:  "https://bridge.example.com/api/hubspot/webhook",
		Scopes:       "crm.objects.contacts.read oauth",
		APIBaseURL:   s.server.URL,
		AppBaseURL:   s.server.URL,
	})
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestInstallURL() {
	rawURL := s.client.InstallURL("user-1")

	parsed, err := url.Parse(rawURL)
	s.Require().NoError(err)
	s.Equal("/oauth/authorize", parsed.Path)

	query := parsed.Query()
	s.Equal("test-client-id", query.Get("client_id"))
	s.Equal("https://bridge.example.com/api/hubspot/webhook", query.Get("redirect_uri"))
	s.Equal("crm.objects.contacts.read oauth", query.Get("scope"))
	s.Equal("user-1", query.Get("state"))
}

func (s *ClientSuite) TestExchangeCode() {
	s.handler = func(res http.ResponseWriter, req *http.Request) {
		s.Equal(http.MethodPost, req.Method)
		s.Equal("/oauth/v1/token", req.URL.Path)
		s.Require().NoError(req.ParseForm())
		s.Equal("authorization_code", req.PostForm.Get("grant_type"))
		s.Equal("auth-code", req.PostForm.Get("code"))
		s.Equal("test-client-id", req.PostForm.Get("client_id"))
		s.Equal("test-client-secret", req.PostForm.Get("client_secret"))

		res.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(res).Encode(map[string]any{
			"access_token":  "access-token",
			"refresh_token": "refresh-token",
			"expires_in":    1800,
			"token_type":    "bearer",
		})
	}

	pair, err := s.client.ExchangeCode(s.ctx, "auth-code")
	s.Require().NoError(err)
	s.Equal("access-token", pair.AccessToken)
	s.Equal("refresh-token", pair.RefreshToken)
	s.WithinDuration(time.Now().Add(30*time.Minute), pair.ExpiresAt, 30*time.Second)
}

func (s *ClientSuite) TestExchangeCodeFailure() {
	s.handler = func(res http.ResponseWriter, req *http.Request) {
		res.Header().Set("Content-Type", "application/json")
		res.WriteHeader(http.StatusBadRequest)
		_, _ = res.Write([]byte(`{"status":"BAD_AUTH_CODE"}`))
	}

	_, err := s.client.ExchangeCode(s.ctx, "bad-code")
	s.Require().Error(err)

	var exchangeErr *AuthExchangeError
	s.Require().ErrorAs(err, &exchangeErr)
	s.Equal(http.StatusBadRequest, exchangeErr.StatusCode)
	s.Contains(exchangeErr.Body, "BAD_AUTH_CODE")
}

func (s *ClientSuite) TestRefreshAccessToken() {
	s.handler = func(res http.ResponseWriter, req *http.Request) {
		s.Equal("/oauth/v1/token", req.URL.Path)
		s.Require().NoError(req.ParseForm())
		s.Equal("refresh_token", req.PostForm.Get("grant_type"))
		s.Equal("old-refresh-token", req.PostForm.Get("refresh_token"))

		res.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(res).Encode(map[string]any{
			"access_token":  "new-access-token",
			"refresh_token": "new-refresh-token",
			"expires_in":    1800,
			"token_type":    "bearer",
		})
	}

	pair, err := s.client.RefreshAccessToken(s.ctx, "old-refresh-token")
	s.Require().NoError(err)
	s.Equal("new-access-token", pair.AccessToken)
	s.Equal("new-refresh-token", pair.RefreshToken)
}

func (s *ClientSuite) TestRefreshKeepsOldRefreshToken() {
	s.handler = func(res http.ResponseWriter, _ *http.Request) {
		res.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(res).Encode(map[string]any{
			"access_token": "new-access-token",
			"expires_in":   1800,
			"token_type":   "bearer",
		})
	}

	pair, err := s.client.RefreshAccessToken(s.ctx, "old-refresh-token")
	s.Require().NoError(err)
	s.Equal("old-refresh-token", pair.RefreshToken)
}

func (s *ClientSuite) TestRefreshFailure() {
	s.handler = func(res http.ResponseWriter, _ *http.Request) {
		res.Header().Set("Content-Type", "application/json")
		res.WriteHeader(http.StatusBadRequest)
		_, _ = res.Write([]byte(`{"status":"BAD_REFRESH_TOKEN"}`))
	}

	_, err := s.client.RefreshAccessToken(s.ctx, "revoked")
	s.Require().Error(err)

	var refreshErr *TokenRefreshError
	s.Require().ErrorAs(err, &refreshErr)
	s.Equal(http.StatusBadRequest, refreshErr.StatusCode)
	s.Contains(refreshErr.Body, "BAD_REFRESH_TOKEN")
}

func (s *ClientSuite) TestGetAccountDetails() {
	s.handler = func(res http.ResponseWriter, req *http.Request) {
		s.Equal("/integrations/v1/me", req.URL.Path)
		s.Equal("Bearer access-token", req.Header.Get("Authorization"))

		res.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(res).Encode(map[string]any{
			"portalId":  12345,
			"userId":    678,
			"hubDomain": "example.hubspot.com",
			"scopes":    []string{"oauth", "crm.objects.contacts.read"},
			"appId":     42,
		})
	}

	details, err := s.client.GetAccountDetails(s.ctx, "access-token")
	s.Require().NoError(err)
	s.Equal(int64(12345), details.PortalID)
	s.Equal("example.hubspot.com", details.HubDomain)
	s.Equal(int64(42), details.AppID)
	s.Contains(details.Scopes, "oauth")
}

func (s *ClientSuite) TestFetchContact() {
	s.handler = func(res http.ResponseWriter, req *http.Request) {
		s.Equal("/crm/v3/objects/contacts/101", req.URL.Path)
		s.Equal("Bearer access-token", req.Header.Get("Authorization"))
		s.Equal("false", req.URL.Query().Get("archived"))
		s.Contains(req.URL.Query().Get("properties"), "email")
		s.Contains(req.URL.Query().Get("properties"), "postalcode")

		res.Header().Set("Content-Type", "application/json")
		_, _ = res.Write([]byte(`{
			"id": "101",
			"properties": {
				"email": "alice@example.com",
				"firstname": "Alice",
				"lastname": "Smith",
				"phone": "555-0100",
				"zip": "94107",
				"createdate": "2025-05-01T10:00:00Z"
			},
			"createdAt": "2025-05-02T00:00:00Z",
			"updatedAt": "2025-05-03T00:00:00Z",
			"archived": false
		}`))
	}

	details, err := s.client.FetchContact(s.ctx, 12345, "access-token", 101)
	s.Require().NoError(err)
	s.Equal(int64(101), details.ObjectID)
	s.Equal("alice@example.com", details.Email)
	s.Equal("Alice", details.FirstName)
	s.Equal("Smith", details.LastName)
	s.Equal("94107", details.PostalCode)
	s.Equal(time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), details.CreatedAt)
	s.NotEmpty(details.Raw)
}

func (s *ClientSuite) TestFetchContactPostalCodeFallback() {
	s.handler = func(res http.ResponseWriter, _ *http.Request) {
		res.Header().Set("Content-Type", "application/json")
		_, _ = res.Write([]byte(`{
			"id": "101",
			"properties": {"postalcode": "SW1A 1AA"},
			"createdAt": "2025-05-02T00:00:00Z"
		}`))
	}

	details, err := s.client.FetchContact(s.ctx, 12345, "access-token", 101)
	s.Require().NoError(err)
	s.Equal("SW1A 1AA", details.PostalCode)
	// no createdate property, so the record timestamp wins
	s.Equal(time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), details.CreatedAt)
}

func (s *ClientSuite) TestFetchContactObjectIDFallback() {
	s.handler = func(res http.ResponseWriter, _ *http.Request) {
		res.Header().Set("Content-Type", "application/json")
		_, _ = res.Write([]byte(`{
			"id": "",
			"properties": {"hs_object_id": "202"}
		}`))
	}

	details, err := s.client.FetchContact(s.ctx, 12345, "access-token", 202)
	s.Require().NoError(err)
	s.Equal(int64(202), details.ObjectID)
}

func (s *ClientSuite) TestFetchContactNotFound() {
	s.handler = func(res http.ResponseWriter, _ *http.Request) {
		res.Header().Set("Content-Type", "application/json")
		res.WriteHeader(http.StatusNotFound)
		_, _ = res.Write([]byte(`{"status":"error","message":"resource not found"}`))
	}

	_, err := s.client.FetchContact(s.ctx, 12345, "access-token", 404404)
	s.Require().Error(err)

	var fetchErr *ContactFetchError
	s.Require().ErrorAs(err, &fetchErr)
	s.Equal(int64(404404), fetchErr.ObjectID)
	s.Equal(http.StatusNotFound, fetchErr.StatusCode)
	s.Contains(fetchErr.Body, "resource not found")
}
