package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bsscrm/hubspot-bridge/api/pkg/hubspot"
	"github.com/bsscrm/hubspot-bridge/api/pkg/store"
	"github.com/bsscrm/hubspot-bridge/api/pkg/types"
)

var (
	// ErrUnknownPortal means the delivery's portal id matches no stored
	// connection. The whole delivery is rejected.
	ErrUnknownPortal = errors.New("unknown hubspot portal id")

	// ErrRefreshFailed means the stored token had expired and could not be
	// refreshed. No events are processed in that case.
	ErrRefreshFailed = errors.New("failed to refresh hubspot token")
)

// Delivery is one inbound webhook delivery: a batch of events for a single
// portal. Malformed marks a body that was not a sequence of events; such a
// delivery is accepted but produces a single warning outcome.
type Delivery struct {
	HubID     int64
	Events    []types.WebhookEvent
	Malformed bool
}

// Pipeline ingests webhook deliveries: it resolves the owning user by
// portal id, ensures a valid access token, and upserts affected contacts.
type Pipeline struct {
	store  store.Store
	client hubspot.Client

	now func() time.Time
}

func NewPipeline(store store.Store, client hubspot.Client) *Pipeline {
	return &Pipeline{
		store:  store,
		client: client,
		now:    time.Now,
	}
}

// ProcessDelivery runs a delivery through the pipeline and returns the
// per-event outcome summary. Owner-resolution and token-refresh failures are
// delivery-fatal; a single event's failure is reported in its outcome line
// and does not abort the batch.
func (p *Pipeline) ProcessDelivery(ctx context.Context, delivery *Delivery) (*types.WebhookSummary, error) {
	receivedAt := p.now()

	log.Info().
		Int64("hub_id", delivery.HubID).
		Int("event_count", len(delivery.Events)).
		Msg("webhook delivery received")

	connection, err := p.store.GetHubSpotConnectionByHubID(ctx, delivery.HubID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn().Int64("hub_id", delivery.HubID).Msg("no user found for portal id")
			return nil, ErrUnknownPortal
		}
		return nil, fmt.Errorf("failed to resolve portal owner: %w", err)
	}

	log.Debug().
		Int64("hub_id", delivery.HubID).
		Str("user_id", connection.UserID).
		Msg("resolved portal owner")

	accessToken, err := p.ensureFreshToken(ctx, connection)
	if err != nil {
		return nil, err
	}

	var messages []string
	if delivery.Malformed {
		messages = append(messages, "unexpected webhook payload format (non-array)")
	} else {
		for _, event := range delivery.Events {
			messages = append(messages, p.processEvent(ctx, connection, accessToken, &event))
		}
	}

	return &types.WebhookSummary{
		ReceivedAt: receivedAt,
		HubID:      delivery.HubID,
		EventCount: len(messages),
		Messages:   messages,
	}, nil
}

// ensureFreshToken refreshes the stored token when its expiry is at or
// before now and persists the new pair. Concurrent deliveries for the same
// expired token may both refresh; last writer wins on the stored record.
func (p *Pipeline) ensureFreshToken(ctx context.Context, connection *types.HubSpotConnection) (string, error) {
	if !connection.TokenExpired(p.now()) {
		return connection.AccessToken, nil
	}

	pair, err := p.client.RefreshAccessToken(ctx, connection.RefreshToken)
	if err != nil {
		log.Error().Err(err).
			Int64("hub_id", connection.HubID).
			Str("user_id", connection.UserID).
			Msg("failed to refresh access token")
		return "", fmt.Errorf("%w: %s", ErrRefreshFailed, err)
	}

	connection.AccessToken = pair.AccessToken
	connection.RefreshToken = pair.RefreshToken
	connection.ExpiresAt = pair.ExpiresAt

	if _, err := p.store.UpdateHubSpotConnection(ctx, connection); err != nil {
		log.Error().Err(err).
			Int64("hub_id", connection.HubID).
			Str("user_id", connection.UserID).
			Msg("failed to persist refreshed token")
		return "", fmt.Errorf("%w: %s", ErrRefreshFailed, err)
	}

	log.Info().
		Int64("hub_id", connection.HubID).
		Str("user_id", connection.UserID).
		Time("expires_at", connection.ExpiresAt).
		Msg("access token refreshed")

	return pair.AccessToken, nil
}

// processEvent handles one event and returns its outcome message
func (p *Pipeline) processEvent(ctx context.Context, connection *types.HubSpotConnection, accessToken string, event *types.WebhookEvent) string {
	log.Debug().
		Str("subscription_type", string(event.SubscriptionType)).
		Int64("object_id", event.ObjectID).
		Time("occurred_at", event.OccurredTime()).
		Msg("processing webhook event")

	if !event.SubscriptionType.Supported() {
		msg := fmt.Sprintf("unsupported subscription type: %s", event.SubscriptionType)
		log.Warn().
			Str("subscription_type", string(event.SubscriptionType)).
			Int64("object_id", event.ObjectID).
			Msg("unsupported subscription type")
		return msg
	}

	details, err := p.client.FetchContact(ctx, connection.HubID, accessToken, event.ObjectID)
	if err != nil {
		msg := fmt.Sprintf("failed to fetch/save contact %d: %s", event.ObjectID, err)
		log.Error().Err(err).
			Int64("hub_id", connection.HubID).
			Int64("object_id", event.ObjectID).
			Msg("contact fetch failed")
		return msg
	}

	contact := &types.Contact{
		ObjectID:         details.ObjectID,
		HubID:            connection.HubID,
		UserID:           connection.UserID,
		Email:            details.Email,
		FirstName:        details.FirstName,
		LastName:         details.LastName,
		Phone:            details.Phone,
		PostalCode:       details.PostalCode,
		HubSpotCreatedAt: details.CreatedAt,
		Raw:              details.Raw,
	}

	if _, err := p.store.UpsertContact(ctx, contact); err != nil {
		msg := fmt.Sprintf("failed to fetch/save contact %d: %s", event.ObjectID, err)
		log.Error().Err(err).
			Int64("hub_id", connection.HubID).
			Int64("object_id", event.ObjectID).
			Msg("contact upsert failed")
		return msg
	}

	typeLabel := "updated"
	if event.SubscriptionType == types.SubscriptionTypeContactCreation {
		typeLabel = "created"
	}

	identifier := details.Email
	if identifier == "" {
		identifier = fmt.Sprintf("%d", details.ObjectID)
	}

	msg := fmt.Sprintf("contact %s %s successfully", identifier, typeLabel)
	log.Info().
		Int64("hub_id", connection.HubID).
		Int64("object_id", details.ObjectID).
		Str("email", details.Email).
		Msg("contact upserted")
	return msg
}
