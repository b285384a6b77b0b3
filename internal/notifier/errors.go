package notifier

import "errors"

var (
	// ErrMissingAPIKey is returned when a channel is used without credentials.
	ErrMissingAPIKey = errors.New("missing notifier api key")
	// ErrStatusNotOK is returned when the delivery API responds with a non-2xx status.
	ErrStatusNotOK = errors.New("delivery response status is not OK")
)
