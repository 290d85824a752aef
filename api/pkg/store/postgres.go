package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bsscrm/hubspot-bridge/api/pkg/config"
	"github.com/bsscrm/hubspot-bridge/api/pkg/types"
)

type PostgresStore struct {
	cfg config.Store

	gdb *gorm.DB
}

func NewPostgresStore(cfg config.Store) (*PostgresStore, error) {
	sslmode := "disable"
	if cfg.SSL {
		sslmode = "require"
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, sslmode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.IdleConns)
	sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	store := &PostgresStore{
		cfg: cfg,
		gdb: gormDB,
	}

	if cfg.AutoMigrate {
		if err := store.autoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return store, nil
}

func (s *PostgresStore) autoMigrate() error {
	return s.gdb.AutoMigrate(
		&types.User{},
		&types.HubSpotConnection{},
		&types.Contact{},
	)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
