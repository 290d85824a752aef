package server

import (
	"net/http"

	"github.com/bsscrm/hubspot-bridge/api/pkg/types"
)

type AddUserResponse struct {
	Success bool        `json:"success"`
	User    *types.User `json:"user"`
}

// addTestUser mints a CRM user to connect a portal against. There is no user
// management in this service; real user ids come from the CRM.
func (apiServer *BridgeAPIServer) addTestUser(_ http.ResponseWriter, req *http.Request) (*AddUserResponse, error) {
	user, err := apiServer.Store.CreateUser(req.Context(), &types.User{})
	if err != nil {
		return nil, err
	}
	return &AddUserResponse{Success: true, User: user}, nil
}
