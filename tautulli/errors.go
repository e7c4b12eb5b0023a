package tautulli

import (
	"errors"
	"fmt"
)

var (
	ErrMissingStreamCount = errors.New("response has no stream_count")
	ErrInvalidStreamCount = errors.New("invalid stream_count")
	ErrAPIFailure         = errors.New("api returned an error")
)

// ConnectivityError reports that Tautulli could not be reached or did not
// answer with a usable activity payload.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("tautulli %s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// IsConnectivityError reports whether any error in err's chain is a
// *ConnectivityError.
func IsConnectivityError(err error) bool {
	var ce *ConnectivityError
	return errors.As(err, &ce)
}
