package store

import (
	"context"
	"errors"

	"github.com/bsscrm/hubspot-bridge/api/pkg/types"
)

var ErrNotFound = errors.New("not found")

// ListContactsQuery contains filters for listing contact projections
type ListContactsQuery struct {
	HubID  int64  `json:"hub_id"`
	UserID string `json:"user_id"`
}

//go:generate mockgen -source $GOFILE -destination store_mocks.go -package $GOPACKAGE

type Store interface {
	// users
	CreateUser(ctx context.Context, user *types.User) (*types.User, error)
	GetUser(ctx context.Context, id string) (*types.User, error)

	// hubspot connections
	UpsertHubSpotConnection(ctx context.Context, connection *types.HubSpotConnection) (*types.HubSpotConnection, error)
	GetHubSpotConnectionByHubID(ctx context.Context, hubID int64) (*types.HubSpotConnection, error)
	GetHubSpotConnectionByUserID(ctx context.Context, userID string) (*types.HubSpotConnection, error)
	UpdateHubSpotConnection(ctx context.Context, connection *types.HubSpotConnection) (*types.HubSpotConnection, error)

	// contacts
	UpsertContact(ctx context.Context, contact *types.Contact) (*types.Contact, error)
	GetContact(ctx context.Context, hubID, objectID int64) (*types.Contact, error)
	ListContacts(ctx context.Context, query *ListContactsQuery) ([]*types.Contact, error)

	Close() error
}
