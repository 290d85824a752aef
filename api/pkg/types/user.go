package types

import (
	"time"

	"gorm.io/gorm"
)

// User is an internal CRM user that may have a HubSpot portal connected.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// HubSpotConnection holds the OAuth credentials for a user's connected
// HubSpot portal. At most one connection per user; the HubID is the join
// key from inbound webhook deliveries back to the owning user.
type HubSpotConnection struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex;type:uuid"`
	HubID     int64     `json:"hub_id" gorm:"not null;uniqueIndex"`

	AccessToken  string    `json:"-" gorm:"not null;type:text"`
	RefreshToken string    `json:"-" gorm:"type:text"`
	ExpiresAt    time.Time `json:"expires_at"`
	ConnectedAt  time.Time `json:"connected_at"`

	// Portal metadata from the account-details lookup
	HubDomain string   `json:"hub_domain"`
	AppID     int64    `json:"app_id"`
	Scopes    []string `json:"scopes" gorm:"type:text;serializer:json"`
}

// BeforeCreate sets default values for new connections
func (c *HubSpotConnection) BeforeCreate(_ *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}
	return nil
}

// BeforeUpdate sets updated_at before updating connections
func (c *HubSpotConnection) BeforeUpdate(_ *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}

// TokenExpired reports whether the access token's expiry is at or before now.
// A zero expiry is treated as a non-expiring token.
func (c *HubSpotConnection) TokenExpired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !c.ExpiresAt.After(now)
}
