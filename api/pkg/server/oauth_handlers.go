package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/bsscrm/hubspot-bridge/api/pkg/store"
	"github.com/bsscrm/hubspot-bridge/api/pkg/system"
	"github.com/bsscrm/hubspot-bridge/api/pkg/types"
)

type OAuthURLResponse struct {
	InstallURL string `json:"installUrl"`
}

// getOAuthURL godoc
// @Summary Get the HubSpot consent URL for a CRM user
// @Router /api/hubspot/oauth-url/{crmUserID} [get]
func (apiServer *BridgeAPIServer) getOAuthURL(_ http.ResponseWriter, req *http.Request) (*OAuthURLResponse, *system.HTTPError) {
	crmUserID := mux.Vars(req)["crmUserID"]

	if _, err := apiServer.Store.GetUser(req.Context(), crmUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, system.NewHTTPError404(fmt.Sprintf("user %s not found", crmUserID))
		}
		return nil, system.NewHTTPError500(err.Error())
	}

	return &OAuthURLResponse{
		InstallURL: apiServer.HubSpot.InstallURL(crmUserID),
	}, nil
}

// oauthCallback completes the install flow: HubSpot redirects here with the
// authorization code and the CRM user id riding in the state parameter. On
// success the connection is persisted and a plain-text confirmation is
// returned; nothing is persisted when the exchange fails.
func (apiServer *BridgeAPIServer) oauthCallback(res http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	code := req.URL.Query().Get("code")
	if code == "" {
		http.Error(res, "missing code parameter", http.StatusBadRequest)
		return
	}

	crmUserID := req.URL.Query().Get("state")
	if crmUserID == "" {
		http.Error(res, "missing state parameter", http.StatusBadRequest)
		return
	}

	// first-time callers are created on the spot, keyed by the CRM user id
	user, err := apiServer.Store.GetUser(ctx, crmUserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			http.Error(res, err.Error(), http.StatusInternalServerError)
			return
		}
		user, err = apiServer.Store.CreateUser(ctx, &types.User{ID: crmUserID})
		if err != nil {
			http.Error(res, err.Error(), http.StatusInternalServerError)
			return
		}
		log.Info().Str("user_id", user.ID).Msg("created user on first oauth callback")
	}

	pair, err := apiServer.HubSpot.ExchangeCode(ctx, code)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("hubspot code exchange failed")
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	// the token response does not carry the portal id, so resolve it now
	details, err := apiServer.HubSpot.GetAccountDetails(ctx, pair.AccessToken)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("hubspot account lookup failed")
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	connection, err := apiServer.Store.UpsertHubSpotConnection(ctx, &types.HubSpotConnection{
		UserID:       user.ID,
		HubID:        details.PortalID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		ConnectedAt:  time.Now(),
		HubDomain:    details.HubDomain,
		AppID:        details.AppID,
		Scopes:       details.Scopes,
	})
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Int64("hub_id", connection.HubID).
		Str("hub_domain", connection.HubDomain).
		Msg("hubspot portal connected")

	res.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(res, "HubSpot successfully connected.")
}
