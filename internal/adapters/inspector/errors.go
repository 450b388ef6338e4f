package inspector

import "errors"

// Sentinel kinds for inspector errors.
var (
	ErrInvalidAddress = errors.New("invalid ethereum address")
	ErrRPC            = errors.New("node rpc failed")
)
