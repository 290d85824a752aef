package types

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Contact is a local projection of a HubSpot contact object, keyed by
// (ObjectID, HubID). It is a read-through cache of upstream data: always
// refreshable by re-fetching the contact from HubSpot.
type Contact struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	ObjectID int64 `json:"object_id" gorm:"not null;uniqueIndex:idx_contacts_object_hub"`
	HubID    int64 `json:"hub_id" gorm:"not null;uniqueIndex:idx_contacts_object_hub;index"`

	// Owning internal user (reference, not ownership)
	UserID string `json:"user_id" gorm:"not null;index;type:uuid"`

	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	PostalCode string `json:"postal_code"`

	// Creation timestamp reported by HubSpot
	HubSpotCreatedAt time.Time `json:"hubspot_created_at"`

	// Full upstream payload, kept for forward compatibility
	Raw json.RawMessage `json:"raw,omitempty" gorm:"type:jsonb"`
}

// BeforeCreate sets default values for new contacts
func (c *Contact) BeforeCreate(_ *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}
	return nil
}

// BeforeUpdate sets updated_at before updating contacts
func (c *Contact) BeforeUpdate(_ *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}
