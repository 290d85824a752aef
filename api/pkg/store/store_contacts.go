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

// UpsertContact creates or overwrites the contact projection keyed by
// (ObjectID, HubID). Replaying the same event overwrites, never duplicates.
func (s *PostgresStore) UpsertContact(ctx context.Context, contact *types.Contact) (*types.Contact, error) {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}

	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}

	if contact.UpdatedAt.IsZero() {
		contact.UpdatedAt = time.Now()
	}

	var existing types.Contact
	err := s.gdb.WithContext(ctx).
		Where("object_id = ? AND hub_id = ?", contact.ObjectID, contact.HubID).
		First(&existing).Error

	if err == nil {
		contact.ID = existing.ID
		contact.CreatedAt = existing.CreatedAt
		contact.UpdatedAt = time.Now()

		err = s.gdb.WithContext(ctx).Save(contact).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update existing contact: %w", err)
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.gdb.WithContext(ctx).Create(contact).Error
		if err != nil {
			return nil, fmt.Errorf("failed to create contact: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to check for existing contact: %w", err)
	}

	return contact, nil
}

// GetContact gets a contact projection by its (hub id, object id) pair
func (s *PostgresStore) GetContact(ctx context.Context, hubID, objectID int64) (*types.Contact, error) {
	var contact types.Contact

	err := s.gdb.WithContext(ctx).
		Where("hub_id = ? AND object_id = ?", hubID, objectID).
		First(&contact).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return &contact, nil
}

// ListContacts lists contact projections with optional filters
func (s *PostgresStore) ListContacts(ctx context.Context, query *ListContactsQuery) ([]*types.Contact, error) {
	var contacts []*types.Contact

	db := s.gdb.WithContext(ctx)

	if query != nil {
		if query.HubID != 0 {
			db = db.Where("hub_id = ?", query.HubID)
		}

		if query.UserID != "" {
			db = db.Where("user_id = ?", query.UserID)
		}
	}

	err := db.Order("updated_at DESC").Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, nil
}
