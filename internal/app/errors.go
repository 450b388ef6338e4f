package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoInspector = errors.New("no wallet inspector configured")
)
