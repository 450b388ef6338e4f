package pinning

import "errors"

// Sentinel kinds for pinning errors.
var (
	ErrNotConfigured = errors.New("pinning not configured")
	ErrUpload        = errors.New("ipfs upload failed")
)
