package domain

import (
	"errors"
	"fmt"
)

// ErrStranded is the terminal planning failure: some required leg has no
// fuel station reachable within vehicle range. The message is user-facing.
var ErrStranded = errors.New("Stranded: No fuel stations within range.")

// LocationNotFoundError reports that geocoding produced no usable
// coordinates for one of the route endpoints. Endpoint is "Start" or
// "Finish" so the message names which side failed.
type LocationNotFoundError struct {
	Endpoint string
	Err      error
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("%s location not found", e.Endpoint)
}

func (e *LocationNotFoundError) Unwrap() error { return e.Err }

// RoutingError wraps a failure from the external routing provider.
// The underlying reason is surfaced verbatim as diagnostic text.
type RoutingError struct {
	Err error
}

func (e *RoutingError) Error() string { return fmt.Sprintf("Routing failed: %v", e.Err) }

func (e *RoutingError) Unwrap() error { return e.Err }
