package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/bsscrm/hubspot-bridge/api/pkg/hubspot"
	"github.com/bsscrm/hubspot-bridge/api/pkg/store"
	"github.com/bsscrm/hubspot-bridge/api/pkg/types"
)

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

type PipelineSuite struct {
	suite.Suite

	ctrl     *gomock.Controller
	ctx      context.Context
	store    *store.MockStore
	client   *hubspot.MockClient
	pipeline *Pipeline

	now time.Time
}

func (s *PipelineSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.store = store.NewMockStore(s.ctrl)
	s.client = hubspot.NewMockClient(s.ctrl)

	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.pipeline = NewPipeline(s.store, s.client)
	s.pipeline.now = func() time.Time { return s.now }
}

func (s *PipelineSuite) connection() *types.HubSpotConnection {
	return &types.HubSpotConnection{
		ID:           "conn-1",
		UserID:       "user-1",
		HubID:        12345,
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    s.now.Add(time.Hour),
	}
}

func (s *PipelineSuite) TestUnknownPortal() {
	s.store.EXPECT().GetHubSpotConnectionByHubID(gomock.Any(), int64(999)).
		Return(nil, store.ErrNotFound)

	summary, err := s.pipeline.ProcessDelivery(s.ctx, &Delivery{
		HubID: 999,
		Events: []types.WebhookEvent{
			{SubscriptionType: types.SubscriptionTypeContactCreation, ObjectID: 1},
		},
	})
	s.Require().ErrorIs(err, ErrUnknownPortal)
	s.Nil(summary)
}

func (s *PipelineSuite) TestStoreErrorIsNotUnknownPortal() {
	s.store.EXPECT().GetHubSpotConnectionByHubID(gomock.Any(), int64(12345)).
		Return(nil, errors.New("connection reset"))

	_, err := s.pipeline.ProcessDelivery(s.ctx, &Delivery{HubID: 12345})
	s.Require().Error(err)
	s.NotErrorIs(err, ErrUnknownPortal)
}

func (s *PipelineSuite) TestRefreshFailureAbortsDelivery() {
	connection := s.connection()
	connection.ExpiresAt = s.now.Add(-time.Minute)

	s.store.EXPECT().GetHubSpotConnectionByHubID(gomock.Any(), int64(12345)).
		Return(connection, nil)
	s.client.EXPECT().RefreshAccessToken(gomock.Any(), "refresh-token").
		Return(nil, &hubspot.TokenRefreshError{StatusCode: 400, Body: `{"status":"BAD_REFRESH_TOKEN"}`})

	// no FetchContact or UpsertContact expectations: the delivery must not
	// reach the event loop
	summary, err := s.pipeline.ProcessDelivery(s.ctx, &Delivery{
		HubID: 12345,
		Events: []types.WebhookEvent{
			{SubscriptionType: types.SubscriptionTypeContactCreation, ObjectID: 1},
			{SubscriptionType: types.SubscriptionTypeContactPropertyChange, ObjectID: 2},
		},
	})
	s.Require().ErrorIs(err, ErrRefreshFailed)
	s.Nil(summary)
}

func (s *PipelineSuite) TestExpiredTokenIsRefreshedAndPersisted() {
	connection := s.connection()
	connection.ExpiresAt = s.now

	newExpiry := s.now.Add(30 * time.Minute)

	s.store.EXPECT().GetHubSpotConnectionByHubID(gomock.Any(), int64(12345)).
		Return(connection, nil)
	s.client.EXPECT().RefreshAccessToken(gomock.Any(), "refresh-token").
		Return(&hubspot.TokenPair{
			AccessToken:  "new-access-token",
			RefreshToken: "new-refresh-token",
			ExpiresAt:    newExpiry,
		}, nil)
	s.store.EXPECT().UpdateHubSpotConnection(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *types.HubSpotConnection) (*types.HubSpotConnection, error) {
			s.Equal("new-access-token", updated.AccessToken)
			s.Equal("new-refresh-token", updated.RefreshToken)
			s.Equal(newExpiry, updated.ExpiresAt)
			return updated, nil
		})

	// the fetch must use the refreshed token, not the stored one
	s.client.EXPECT().FetchContact(gomock.Any(), int64(12345), "new-access-token", int64(101)).
		Return(&hubspot.ContactDetails{ObjectID: 101, Email: "alice@example.com"}, nil)
	s.store.EXPECT().UpsertContact(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, contact *types.Contact) (*types.Contact, error) {
			return contact, nil
		})

	summary, err := s.pipeline.ProcessDelivery(s.ctx, &Delivery{
		HubID: 12345,
		Events: []types.WebhookEvent{
			{SubscriptionType: types.SubscriptionTypeContactCreation, ObjectID: 101},
		},
	})
	s.Require().NoError(err)
	s.Equal([]string{"contact alice@example.com created successfully"}, summary.Messages)
}

func (s *PipelineSuite) TestValidTokenSkipsRefresh() {
	s.store.EXPECT().GetHubSpotConnectionByHubID(gomock.Any(), int64(12345)).
		Return(s.connection(), nil)
	s.client.EXPECT().FetchContact(gomock.Any(), int64(12345), "access-token", int64(7)).
		Return(&hubspot.ContactDetails{ObjectID: 7, Email: "bob@example.com"}, nil)
	s.store.EXPECT().UpsertContact(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, contact *types.Contact) (*types.Contact, error) {
			return contact, nil
		})

	summary, err := s.pipeline.ProcessDelivery(s.ctx, &Delivery{
		HubID: 12345,
		Events: []types.WebhookEvent{
			{SubscriptionType: types.SubscriptionTypeContactPropertyChange, ObjectID: 7},
		},
	})
	s.Require().NoError(err)
	s.Equal([]string{"contact bob@example.com updated successfully"}, summary.Messages)
}

func (s *PipelineSuite) TestEventOutcomesAreOrderedAndIndependent() {
	s.store.EXPECT().GetHubSpotConnectionByHubID(gomock.Any(), int64(12345)).
		Return(s.connection(), nil)

	s.client.EXPECT().FetchContact(gomock.Any(), int64(12345), "access-token", int64(1)).
		Return(&hubspot.ContactDetails{ObjectID: 1, Email: "first@example.com"}, nil)
	s.store.EXPECT().UpsertContact(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, contact *types.Contact) (*types.Contact, error) {
			return contact, nil
		})

	fetchErr := &hubspot.ContactFetchError{ObjectID: 2, StatusCode: 404, Body: `{"status":"error"}`}
	s.client.EXPECT().FetchContact(gomock.Any(), int64(12345), "access-token", int64(2)).
		Return(nil, fetchErr)

	s.client.EXPECT().FetchContact(gomock.Any(), int64(12345), "access-token", int64(4)).
		Return(&hubspot.ContactDetails{ObjectID: 4, Email: "last@example.com"}, nil)
	s.store.EXPECT().UpsertContact(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, contact *types.Contact) (*types.Contact, error) {
			return contact, nil
		})

	summary, err := s.pipeline.ProcessDelivery(s.ctx, &Delivery{
		HubID: 12345,
		Events: []types.WebhookEvent{
			{SubscriptionType: types.SubscriptionTypeContactCreation, ObjectID: 1},
			{SubscriptionType: types.SubscriptionTypeContactPropertyChange, ObjectID: 2},
			{SubscriptionType: "deal.creation", ObjectID: 3},
			{SubscriptionType: types.SubscriptionTypeContactPropertyChange, ObjectID: 4},
		},
	})
	s.Require().NoError(err)
	s.Equal(4, summary.EventCount)
	s.Equal(int64(12345), summary.HubID)
	s.Equal(s.now, summary.ReceivedAt)
	s.Require().Len(summary.Messages, 4)
	s.Equal("contact first@example.com created successfully", summary.Messages[0])
	s.Equal(fmt.Sprintf("failed to fetch/save contact 2: %s", fetchErr), summary.Messages[1])
	s.Equal("unsupported subscription type: deal.creation", summary.Messages[2])
	s.Equal("contact last@example.com updated successfully", summary.Messages[3])
}

func (s *PipelineSuite) TestContactWithoutEmailUsesObjectID() {
	s.store.EXPECT().GetHubSpotConnectionByHubID(gomock.Any(), int64(12345)).
		Return(s.connection(), nil)
	s.client.EXPECT().FetchContact(gomock.Any(), int64(12345), "access-token", int64(55)).
		Return(&hubspot.ContactDetails{ObjectID: 55}, nil)
	s.store.EXPECT().UpsertContact(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, contact *types.Contact) (*types.Contact, error) {
			return contact, nil
		})

	summary, err := s.pipeline.ProcessDelivery(s.ctx, &Delivery{
		HubID: 12345,
		Events: []types.WebhookEvent{
			{SubscriptionType: types.SubscriptionTypeContactCreation, ObjectID: 55},
		},
	})
	s.Require().NoError(err)
	s.Equal([]string{"contact 55 created successfully"}, summary.Messages)
}

func (s *PipelineSuite) TestUpsertFailureReportedPerEvent() {
	s.store.EXPECT().GetHubSpotConnectionByHubID(gomock.Any(), int64(12345)).
		Return(s.connection(), nil)
	s.client.EXPECT().FetchContact(gomock.Any(), int64(12345), "access-token", int64(9)).
		Return(&hubspot.ContactDetails{ObjectID: 9, Email: "x@example.com"}, nil)
	s.store.EXPECT().UpsertContact(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("duplicate key value violates unique constraint"))

	summary, err := s.pipeline.ProcessDelivery(s.ctx, &Delivery{
		HubID: 12345,
		Events: []types.WebhookEvent{
			{SubscriptionType: types.SubscriptionTypeContactCreation, ObjectID: 9},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(summary.Messages, 1)
	s.Contains(summary.Messages[0], "failed to fetch/save contact 9")
	s.Contains(summary.Messages[0], "duplicate key")
}

func (s *PipelineSuite) TestUpsertedContactCarriesConnectionOwnership() {
	raw := json.RawMessage(`{"id":"77","properties":{"email":"carol@example.com"}}`)
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	s.store.EXPECT().GetHubSpotConnectionByHubID(gomock.Any(), int64(12345)).
		Return(s.connection(), nil)
	s.client.EXPECT().FetchContact(gomock.Any(), int64(12345), "access-token", int64(77)).
		Return(&hubspot.ContactDetails{
			ObjectID:   77,
			Email:      "carol@example.com",
			FirstName:  "Carol",
			LastName:   "Jones",
			Phone:      "555-0100",
			PostalCode: "94107",
			CreatedAt:  created,
			Raw:        raw,
		}, nil)
	s.store.EXPECT().UpsertContact(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, contact *types.Contact) (*types.Contact, error) {
			s.Equal(int64(77), contact.ObjectID)
			s.Equal(int64(12345), contact.HubID)
			s.Equal("user-1", contact.UserID)
			s.Equal("Carol", contact.FirstName)
			s.Equal("94107", contact.PostalCode)
			s.Equal(created, contact.HubSpotCreatedAt)
			s.Equal(raw, contact.Raw)
			return contact, nil
		})

	_, err := s.pipeline.ProcessDelivery(s.ctx, &Delivery{
		HubID: 12345,
		Events: []types.WebhookEvent{
			{SubscriptionType: types.SubscriptionTypeContactCreation, ObjectID: 77},
		},
	})
	s.Require().NoError(err)
}

func (s *PipelineSuite) TestMalformedDeliveryProducesWarningOutcome() {
	s.store.EXPECT().GetHubSpotConnectionByHubID(gomock.Any(), int64(12345)).
		Return(s.connection(), nil)

	summary, err := s.pipeline.ProcessDelivery(s.ctx, &Delivery{
		HubID:     12345,
		Malformed: true,
	})
	s.Require().NoError(err)
	s.Equal(1, summary.EventCount)
	s.Equal([]string{"unexpected webhook payload format (non-array)"}, summary.Messages)
}
