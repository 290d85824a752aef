package types

import "time"

// SubscriptionType is HubSpot's event category carried on each webhook event
type SubscriptionType string

const (
	SubscriptionTypeContactCreation       SubscriptionType = "contact.creation"
	SubscriptionTypeContactPropertyChange SubscriptionType = "contact.propertyChange"
)

// Supported reports whether this subscription type is handled by the
// ingestion pipeline. Anything else produces an "unsupported" outcome.
func (t SubscriptionType) Supported() bool {
	switch t {
	case SubscriptionTypeContactCreation, SubscriptionTypeContactPropertyChange:
		return true
	default:
		return false
	}
}

// WebhookEvent is a single event notification within a webhook delivery.
// OccurredAt is epoch milliseconds, as HubSpot sends it.
type WebhookEvent struct {
	SubscriptionType SubscriptionType `json:"subscriptionType"`
	ObjectID         int64            `json:"objectId"`
	PortalID         int64            `json:"portalId"`
	OccurredAt       int64            `json:"occurredAt"`
	EventID          int64            `json:"eventId,omitempty"`
	ChangeSource     string           `json:"changeSource,omitempty"`
	AttemptNumber    int              `json:"attemptNumber,omitempty"`
}

// OccurredTime converts the epoch-millisecond timestamp to time.Time
func (e *WebhookEvent) OccurredTime() time.Time {
	return time.UnixMilli(e.OccurredAt)
}

// WebhookSummary is the response body for a processed webhook delivery:
// one outcome message per event, in input order.
type WebhookSummary struct {
	ReceivedAt time.Time `json:"receivedAt"`
	HubID      int64     `json:"hubId"`
	EventCount int       `json:"eventCount"`
	Messages   []string  `json:"messages"`
}
