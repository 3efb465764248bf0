package relay

import "errors"

var (
	// ErrInvalidTopic is returned for a message on a topic that carries no
	// request ID.
	ErrInvalidTopic = errors.New("relay: topic carries no request id")

	// ErrNotStarted is returned by Stop before Start.
	ErrNotStarted = errors.New("relay: not started")
)
