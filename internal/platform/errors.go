package platform

import (
	"errors"
)

// ErrAlreadyRunning is an error returned when a scrape run can't be started
// because the previous run is not finished yet.
var ErrAlreadyRunning = errors.New("scrape already running")

// ErrNotFound is an error returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")
