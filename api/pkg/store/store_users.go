package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bsscrm/hubspot-bridge/api/pkg/types"
)

// CreateUser creates a new internal CRM user record
func (s *PostgresStore) CreateUser(ctx context.Context, user *types.User) (*types.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	err := s.gdb.WithContext(ctx).Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser gets a user by ID
func (s *PostgresStore) GetUser(ctx context.Context, id string) (*types.User, error) {
	var user types.User

	err := s.gdb.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// UpsertHubSpotConnection creates the connection record for a user if none
// exists, otherwise overwrites it. At most one connection per user.
func (s *PostgresStore) UpsertHubSpotConnection(ctx context.Context, connection *types.HubSpotConnection) (*types.HubSpotConnection, error) {
	if connection.ID == "" {
		connection.ID = uuid.New().String()
	}

	if connection.CreatedAt.IsZero() {
		connection.CreatedAt = time.Now()
	}

	if connection.UpdatedAt.IsZero() {
		connection.UpdatedAt = time.Now()
	}

	// Check if a connection for this user already exists
	var existing types.HubSpotConnection
	err := s.gdb.WithContext(ctx).
		Where("user_id = ?", connection.UserID).
		First(&existing).Error

	if err == nil {
		// Connection exists, overwrite it
		connection.ID = existing.ID
		connection.CreatedAt = existing.CreatedAt
		connection.UpdatedAt = time.Now()

		err = s.gdb.WithContext(ctx).Save(connection).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update existing HubSpot connection: %w", err)
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.gdb.WithContext(ctx).Create(connection).Error
		if err != nil {
			return nil, fmt.Errorf("failed to create HubSpot connection: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to check for existing connection: %w", err)
	}

	return connection, nil
}

// GetHubSpotConnectionByHubID gets a connection by portal id. This is the
// sole lookup path from an inbound webhook back to the owning user.
func (s *PostgresStore) GetHubSpotConnectionByHubID(ctx context.Context, hubID int64) (*types.HubSpotConnection, error) {
	var connection types.HubSpotConnection

	err := s.gdb.WithContext(ctx).
		Where("hub_id = ?", hubID).
		First(&connection).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get HubSpot connection: %w", err)
	}

	return &connection, nil
}

// GetHubSpotConnectionByUserID gets a connection by internal user id
func (s *PostgresStore) GetHubSpotConnectionByUserID(ctx context.Context, userID string) (*types.HubSpotConnection, error) {
	var connection types.HubSpotConnection

	err := s.gdb.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&connection).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get HubSpot connection: %w", err)
	}

	return &connection, nil
}

// UpdateHubSpotConnection persists a refreshed token pair and expiry onto an
// existing connection. Last writer wins under concurrent refreshes.
func (s *PostgresStore) UpdateHubSpotConnection(ctx context.Context, connection *types.HubSpotConnection) (*types.HubSpotConnection, error) {
	connection.UpdatedAt = time.Now()

	err := s.gdb.WithContext(ctx).Save(connection).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update HubSpot connection: %w", err)
	}

	return connection, nil
}
