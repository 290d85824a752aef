package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type ServerConfig struct {
	WebServer WebServer
	Store     Store
	HubSpot   HubSpot
}

func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	err := envconfig.Process("", &cfg)
	if err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

type WebServer struct {
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0" description:"The host to bind the api server to."`
	Port int    `envconfig:"SERVER_PORT" default:"3001" description:"The port to bind the api server to."`

	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type Store struct {
	Host     string `envconfig:"POSTGRES_HOST" description:"The host to connect to the postgres server."`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432" description:"The port to connect to the postgres server."`
	Database string `envconfig:"POSTGRES_DATABASE" default:"hubspot_bridge" description:"The database to connect to the postgres server."`
	Username string `envconfig:"POSTGRES_USER" description:"The username to connect to the postgres server."`
	Password string `envconfig:"POSTGRES_PASSWORD" description:"The password to connect to the postgres server."`
	SSL      bool   `envconfig:"POSTGRES_SSL" default:"false"`

	AutoMigrate     bool          `envconfig:"DATABASE_AUTO_MIGRATE" default:"true" description:"Should we automatically run the migrations?"`
	MaxConns        int           `envconfig:"DATABASE_MAX_CONNS" default:"50"`
	IdleConns       int           `envconfig:"DATABASE_IDLE_CONNS" default:"25"`
	MaxConnLifetime time.Duration `envconfig:"DATABASE_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `envconfig:"DATABASE_MAX_CONN_IDLE_TIME" default:"1m"`
}

type HubSpot struct {
	ClientID     string `envconfig:"HUBSPOT_CLIENT_ID" description:"OAuth client id of the HubSpot app."`
	ClientSecret string `envconfig:"HUBSPOT_CLIENT_SECRET" description:"OAuth client secret of the HubSpot app."`
	RedirectURI  string `envconfig:"HUBSPOT_REDIRECT_URI" description:"OAuth callback URL registered with the HubSpot app."`
	Scopes       string `envconfig:"HUBSPOT_SCOPES" default:"crm.objects.contacts.read crm.objects.contacts.write oauth"`

	// Overridable so tests can point the client at a fake HubSpot
	APIBaseURL string `envconfig:"HUBSPOT_API_BASE_URL" default:"https://api.hubapi.com"`
	AppBaseURL string `envconfig:"HUBSPOT_APP_BASE_URL" default:"https://app.hubspot.com"`
}
