package hubspot

import "fmt"

// AuthExchangeError indicates the authorization-code grant failed. Nothing
// may be persisted when this is returned.
type AuthExchangeError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthExchangeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("hubspot code exchange failed (%d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("hubspot code exchange failed: %s", e.Err)
}

func (e *AuthExchangeError) Unwrap() error { return e.Err }

// TokenRefreshError indicates the refresh-token grant failed. The webhook
// pipeline aborts the whole delivery when it sees this.
type TokenRefreshError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TokenRefreshError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("hubspot token refresh failed (%d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("hubspot token refresh failed: %s", e.Err)
}

func (e *TokenRefreshError) Unwrap() error { return e.Err }

// ContactFetchError indicates a single contact lookup failed. It carries the
// upstream status code and body so failures can be diagnosed without
// replaying the request.
type ContactFetchError struct {
	ObjectID   int64
	StatusCode int
	Body       string
	Err        error
}

func (e *ContactFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("hubspot contact %d fetch failed (%d): %s", e.ObjectID, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("hubspot contact %d fetch failed: %s", e.ObjectID, e.Err)
}

func (e *ContactFetchError) Unwrap() error { return e.Err }
