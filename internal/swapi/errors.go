package swapi

import (
	"fmt"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
)

// RemoteError describes a failed call to the remote catalog.
// StatusCode is zero when no response was received.
type RemoteError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", domain.ErrMsgRemoteUnavailable, e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", domain.ErrMsgRemoteUnavailable, e.Endpoint, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is makes every RemoteError match domain.ErrRemoteUnavailable
func (e *RemoteError) Is(target error) bool {
	return target == domain.ErrRemoteUnavailable
}
