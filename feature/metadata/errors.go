package metadata

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the API has no title for the requested id.
var ErrNotFound = errors.New("metadata not found")

// FetchError describes a failed fetch. StatusCode is 0 for network and
// decoding failures.
type FetchError struct {
	ExternalID  int
	Endpoint    Endpoint
	StatusCode  int
	Attempts    int
	RateLimited bool
	Err         error
}

func (e *FetchError) Error() string {
	switch {
	case e.RateLimited:
		return fmt.Sprintf("fetch %s %d: rate limited after %d attempts", e.Endpoint, e.ExternalID, e.Attempts)
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s %d: unexpected status %d", e.Endpoint, e.ExternalID, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s %d: %v", e.Endpoint, e.ExternalID, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
