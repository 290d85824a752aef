package hubspot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// contactProperties is the explicit allow-list requested from the contact
// read endpoint. zip and postalcode are alternates; which one is populated
// depends on the portal.
var contactProperties = []string{
	"email",
	"firstname",
	"lastname",
	"phone",
	"zip",
	"postalcode",
	"address",
	"city",
	"state",
	"hs_object_id",
	"createdate",
}

// ContactDetails is the denormalized contact shape mapped from the upstream
// property bag
type ContactDetails struct {
	ObjectID   int64
	Email      string
	FirstName  string
	LastName   string
	Phone      string
	PostalCode string
	CreatedAt  time.Time

	// Full upstream response, kept verbatim
	Raw json.RawMessage
}

type contactResponse struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Archived   bool              `json:"archived"`
}

// FetchContact reads a single contact object by id. Failures carry the
// upstream status and body in a *ContactFetchError.
func (c *APIClient) FetchContact(ctx context.Context, hubID int64, accessToken string, objectID int64) (*ContactDetails, error) {
	params := url.Values{}
	params.Set("archived", "false")
	params.Set("properties", strings.Join(contactProperties, ","))

	endpoint := buildQuery(
		fmt.Sprintf("%s/crm/v3/objects/contacts/%d", c.cfg.APIBaseURL, objectID),
		params,
	)

	body, _, err := c.get(ctx, endpoint, accessToken)
	if err != nil {
		var statusErr *statusError
		if errors.As(err, &statusErr) {
			log.Error().
				Int64("hub_id", hubID).
				Int64("object_id", objectID).
				Int("status", statusErr.StatusCode).
				Str("body", statusErr.Body).
				Msg("failed to fetch hubspot contact")
			return nil, &ContactFetchError{
				ObjectID:   objectID,
				StatusCode: statusErr.StatusCode,
				Body:       statusErr.Body,
				Err:        err,
			}
		}
		log.Error().Err(err).Int64("hub_id", hubID).Int64("object_id", objectID).Msg("failed to fetch hubspot contact")
		return nil, &ContactFetchError{ObjectID: objectID, Err: err}
	}

	var data contactResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &ContactFetchError{ObjectID: objectID, Err: fmt.Errorf("failed to parse contact response: %w", err)}
	}

	return mapContact(&data, body), nil
}

func mapContact(data *contactResponse, raw []byte) *ContactDetails {
	props := data.Properties
	if props == nil {
		props = map[string]string{}
	}

	objectID, err := strconv.ParseInt(data.ID, 10, 64)
	if err != nil {
		// hs_object_id mirrors the record id
		objectID, _ = strconv.ParseInt(props["hs_object_id"], 10, 64)
	}

	postalCode := props["zip"]
	if postalCode == "" {
		postalCode = props["postalcode"]
	}

	// Prefer the contact-specific createdate property, fall back to the
	// record's own creation timestamp
	createdAt := data.CreatedAt
	if createdate := props["createdate"]; createdate != "" {
		if parsed, err := time.Parse(time.RFC3339, createdate); err == nil {
			createdAt = parsed
		}
	}

	return &ContactDetails{
		ObjectID:   objectID,
		Email:      props["email"],
		FirstName:  props["firstname"],
		LastName:   props["lastname"],
		Phone:      props["phone"],
		PostalCode: postalCode,
		CreatedAt:  createdAt,
		Raw:        json.RawMessage(raw),
	}
}
