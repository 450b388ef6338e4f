package repository

import "errors"

// Sentinel kinds for leaderboard errors.
var (
	ErrNotFound     = errors.New("address not found")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
	ErrStore        = errors.New("leaderboard store failed")
)
