package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when an operation needs a credential
	// or a logged-in user and none is available. Topic-scoped feed
	// requests are suppressed with this error rather than sent.
	ErrUnauthenticated = errors.New("no authenticated session")

	// ErrLikeUpdate wraps a failed like/unlike mutation.
	ErrLikeUpdate = errors.New("like update failed")

	// ErrInvalidSwipe is returned for up/down swipe gestures, which are
	// rejected without any state change.
	ErrInvalidSwipe = errors.New("invalid swipe direction")

	// ErrNeedsDiscovery signals a cold start: the user has no topic
	// history yet and should be routed to the discovery flow.
	ErrNeedsDiscovery = errors.New("no topics yet, discovery needed")

	// ErrDiscoveryIncomplete gates the transition out of discovery until
	// enough articles have been liked.
	ErrDiscoveryIncomplete = errors.New("not enough liked articles yet")

	// ErrUserNotFound is returned when a login identity does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// RequestError is a failed API call. Status zero means the request never
// produced a response (transport failure); otherwise Status holds the
// non-2xx HTTP status the server returned.
type RequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Transport() {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: server returned status %d", e.Op, e.Status)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Transport reports whether the failure happened before any HTTP
// response arrived.
func (e *RequestError) Transport() bool {
	return e.Status == 0
}

// IsServerError reports whether err is a RequestError carrying a non-2xx
// response status.
func IsServerError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && !reqErr.Transport()
}
