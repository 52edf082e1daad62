package scrobble

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/macawbot/macaw/internal/services/scrobble Service

// Service defines the interface for Last.fm reporting
type Service interface {
	// Register exchanges a user-authorized token for a session key and
	// stores it for the (guild, user) pair
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Submit reports a finished track once for every present, registered
	// user. Per-user failures are logged and skipped; they never abort
	// the remaining submissions.
	Submit(ctx context.Context, input *SubmitInput) (*SubmitOutput, error)

	// AuthURL returns the page where a user authorizes a token for this
	// application
	AuthURL() string
}
