package hubspotbridge

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bsscrm/hubspot-bridge/api/pkg/config"
	"github.com/bsscrm/hubspot-bridge/api/pkg/hubspot"
	"github.com/bsscrm/hubspot-bridge/api/pkg/server"
	"github.com/bsscrm/hubspot-bridge/api/pkg/store"
	"github.com/bsscrm/hubspot-bridge/api/pkg/system"
)

func NewServeConfig() (*config.ServerConfig, error) {
	serverConfig, err := config.LoadServerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %v", err)
	}

	if serverConfig.HubSpot.ClientID == "" {
		return nil, fmt.Errorf("hubspot client id is required")
	}
	if serverConfig.HubSpot.ClientSecret == "" {
		return nil, fmt.Errorf("hubspot client secret is required")
	}
	if serverConfig.HubSpot.RedirectURI == "" {
		return nil, fmt.Errorf("hubspot redirect uri is required")
	}

	return &serverConfig, nil
}

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the hubspot bridge api server.",
		Long:  "Start the hubspot bridge api server.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			serveConfig, err := NewServeConfig()
			if err != nil {
				log.Fatal().Err(err).Msg("failed to create serve options")
			}
			if err := serve(cmd, serveConfig); err != nil {
				log.Fatal().Err(err).Msg("failed to run server")
			}
			return nil
		},
	}

	serveCmd.Long += "\n\nEnvironment Variables:\n\n" + generateEnvHelpText(&config.ServerConfig{}, "")

	return serveCmd
}

func serve(cmd *cobra.Command, cfg *config.ServerConfig) error {
	system.SetupLogging()

	// wait until killed with ctrl+c
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	postgresStore, err := store.NewPostgresStore(cfg.Store)
	if err != nil {
		return err
	}
	defer postgresStore.Close()

	hubspotClient := hubspot.NewAPIClient(cfg.HubSpot)

	apiServer := server.NewServer(cfg, postgresStore, hubspotClient)
	return apiServer.ListenAndServe(ctx)
}
