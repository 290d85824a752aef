package server

import (
	"net/http"
	"strconv"

	"github.com/bsscrm/hubspot-bridge/api/pkg/store"
	"github.com/bsscrm/hubspot-bridge/api/pkg/system"
	"github.com/bsscrm/hubspot-bridge/api/pkg/types"
)

// listContacts godoc
// @Summary List synced contact projections
// @Router /api/hubspot/contacts [get]
func (apiServer *BridgeAPIServer) listContacts(_ http.ResponseWriter, req *http.Request) ([]*types.Contact, *system.HTTPError) {
	query := &store.ListContactsQuery{
		UserID: req.URL.Query().Get("user_id"),
	}

	if raw := req.URL.Query().Get("hub_id"); raw != "" {
		hubID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, system.NewHTTPError400("invalid hub_id parameter")
		}
		query.HubID = hubID
	}

	contacts, err := apiServer.Store.ListContacts(req.Context(), query)
	if err != nil {
		return nil, system.NewHTTPError500(err.Error())
	}

	return contacts, nil
}
