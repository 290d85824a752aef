package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/bsscrm/hubspot-bridge/api/pkg/ingest"
	"github.com/bsscrm/hubspot-bridge/api/pkg/system"
	"github.com/bsscrm/hubspot-bridge/api/pkg/types"
)

// portalIDHeader carries the portal id on webhook deliveries. When present it
// wins over the portal id embedded in the events.
const portalIDHeader = "X-HubSpot-Portal-Id"

// webhookDelivery godoc
// @Summary Ingest a batch of HubSpot webhook events
// @Router /api/hubspot/webhook [post]
func (apiServer *BridgeAPIServer) webhookDelivery(_ http.ResponseWriter, req *http.Request) (*types.WebhookSummary, *system.HTTPError) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, system.NewHTTPError400("failed to read request body")
	}

	// the signature is recorded but not verified
	if signature := req.Header.Get("X-HubSpot-Signature"); signature != "" {
		log.Debug().Str("signature", signature).Msg("webhook signature received")
	}

	delivery, httpErr := parseDelivery(req.Header.Get(portalIDHeader), body)
	if httpErr != nil {
		return nil, httpErr
	}

	summary, err := apiServer.pipeline.ProcessDelivery(req.Context(), delivery)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrUnknownPortal):
			return nil, system.NewHTTPError404(err.Error())
		case errors.Is(err, ingest.ErrRefreshFailed):
			return nil, system.NewHTTPError401(err.Error())
		default:
			return nil, system.NewHTTPError500(err.Error())
		}
	}

	return summary, nil
}

// parseDelivery decodes the request body and resolves the portal id. The
// header wins; otherwise the first event's portal id is used. A valid JSON
// body that is not an array is accepted as a malformed delivery, which only
// works when the header identifies the portal.
func parseDelivery(portalHeader string, body []byte) (*ingest.Delivery, *system.HTTPError) {
	var headerHubID int64
	if portalHeader != "" {
		parsed, err := strconv.ParseInt(portalHeader, 10, 64)
		if err != nil {
			return nil, system.NewHTTPError400("invalid portal id header")
		}
		headerHubID = parsed
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, system.NewHTTPError400("invalid JSON body")
	}

	// anything that is not a JSON array (objects, null, scalars) is a
	// malformed delivery, only processable when the header names the portal
	if trimmed[0] != '[' {
		if headerHubID == 0 {
			return nil, system.NewHTTPError400("unable to determine portal id")
		}
		return &ingest.Delivery{HubID: headerHubID, Malformed: true}, nil
	}

	var events []types.WebhookEvent
	if err := json.Unmarshal(trimmed, &events); err != nil {
		return nil, system.NewHTTPError400("invalid JSON body")
	}

	hubID := headerHubID
	if hubID == 0 && len(events) > 0 {
		hubID = events[0].PortalID
	}
	if hubID == 0 {
		return nil, system.NewHTTPError400("unable to determine portal id")
	}

	return &ingest.Delivery{HubID: hubID, Events: events}, nil
}
