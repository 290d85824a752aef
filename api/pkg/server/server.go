package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/bsscrm/hubspot-bridge/api/pkg/config"
	"github.com/bsscrm/hubspot-bridge/api/pkg/hubspot"
	"github.com/bsscrm/hubspot-bridge/api/pkg/ingest"
	"github.com/bsscrm/hubspot-bridge/api/pkg/store"
	"github.com/bsscrm/hubspot-bridge/api/pkg/system"
	"github.com/bsscrm/hubspot-bridge/api/pkg/version"
)

const APIPrefix = "/api"

type BridgeAPIServer struct {
	Cfg      *config.ServerConfig
	Store    store.Store
	HubSpot  hubspot.Client
	pipeline *ingest.Pipeline
	router   *mux.Router
}

func NewServer(cfg *config.ServerConfig, store store.Store, hubspotClient hubspot.Client) *BridgeAPIServer {
	return &BridgeAPIServer{
		Cfg:      cfg,
		Store:    store,
		HubSpot:  hubspotClient,
		pipeline: ingest.NewPipeline(store, hubspotClient),
	}
}

// ListenAndServe serves the API until the context is cancelled, then shuts
// down gracefully within the configured timeout.
func (apiServer *BridgeAPIServer) ListenAndServe(ctx context.Context) error {
	apiServer.registerRoutes()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", apiServer.Cfg.WebServer.Host, apiServer.Cfg.WebServer.Port),
		ReadTimeout:  apiServer.Cfg.WebServer.ReadTimeout,
		WriteTimeout: apiServer.Cfg.WebServer.WriteTimeout,
		Handler:      apiServer.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), apiServer.Cfg.WebServer.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error shutting down server")
		}
	}()

	log.Info().Str("addr", srv.Addr).Msg("hubspot bridge api server starting")

	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (apiServer *BridgeAPIServer) registerRoutes() {
	router := mux.NewRouter()
	router.Use(requestLoggingMiddleware)

	router.HandleFunc("/", apiServer.rootHandler).Methods(http.MethodGet)

	subRouter := router.PathPrefix(APIPrefix).Subrouter()

	subRouter.HandleFunc("/version", system.DefaultWrapper(apiServer.getVersion)).Methods(http.MethodGet)

	// OAuth connect flow
	subRouter.HandleFunc("/hubspot/oauth-url/{crmUserID}", system.Wrapper(apiServer.getOAuthURL)).Methods(http.MethodGet)
	subRouter.HandleFunc("/hubspot/webhook", apiServer.oauthCallback).Methods(http.MethodGet)

	// Inbound event deliveries
	subRouter.HandleFunc("/hubspot/webhook", system.Wrapper(apiServer.webhookDelivery)).Methods(http.MethodPost)

	// Synced contact projections
	subRouter.HandleFunc("/hubspot/contacts", system.Wrapper(apiServer.listContacts)).Methods(http.MethodGet)

	// Development helper for minting users to connect portals against
	subRouter.HandleFunc("/test/add-user", system.DefaultWrapper(apiServer.addTestUser)).Methods(http.MethodPost)

	apiServer.router = router
}

func (apiServer *BridgeAPIServer) rootHandler(res http.ResponseWriter, _ *http.Request) {
	res.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(res, "hubspot bridge is running")
}

type VersionResponse struct {
	Version string `json:"version"`
}

func (apiServer *BridgeAPIServer) getVersion(_ http.ResponseWriter, _ *http.Request) (*VersionResponse, error) {
	return &VersionResponse{Version: version.GetVersion()}, nil
}
