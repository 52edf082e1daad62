package scrobble

import "errors"

// Define errors
var (
	ErrMissingToken = errors.New("token cannot be empty")
	ErrExchange     = errors.New("failed to exchange token for a session key")
)
