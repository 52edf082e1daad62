package scrobble

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/macawbot/macaw/internal/common/clock"
	"github.com/macawbot/macaw/internal/lastfm"
	"github.com/macawbot/macaw/internal/settings"
)

// Config holds configuration for the scrobble service
type Config struct {
	// Lastfm is the external reporting client
	Lastfm lastfm.Client

	// Store holds per-guild settings, including session keys
	Store *settings.Store

	// Clock provides scrobble timestamps
	Clock clock.Clock
}

// service implements the Service interface
type service struct {
	lastfm lastfm.Client
	store  *settings.Store
	clock  clock.Clock
}

// New creates a new scrobble service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Lastfm == nil {
		return nil, errors.New("lastfm client cannot be nil")
	}

	if cfg.Store == nil {
		return nil, errors.New("settings store cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	return &service{
		lastfm: cfg.Lastfm,
		store:  cfg.Store,
		clock:  cfg.Clock,
	}, nil
}

// Register exchanges a user-authorized token for a session key and stores it
func (s *service) Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GuildID == "" || input.UserID == "" {
		return nil, errors.New("guild ID and user ID cannot be empty")
	}

	if input.Token == "" {
		return nil, ErrMissingToken
	}

	sessionKey, err := s.lastfm.GetSession(ctx, input.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExchange, err)
	}

	// The store persists before publishing, so a failed save cannot leave
	// a half-registered user behind
	if err := s.store.SetLastfmUser(ctx, input.GuildID, input.UserID, sessionKey); err != nil {
		return nil, err
	}

	return &RegisterOutput{SessionKey: sessionKey}, nil
}

// Submit reports a finished track for every present, registered user
func (s *service) Submit(ctx context.Context, input *SubmitInput) (*SubmitOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GuildID == "" {
		return nil, errors.New("guild ID cannot be empty")
	}

	output := &SubmitOutput{}
	now := s.clock.Now()

	for _, userID := range input.UserIDs {
		sessionKey, registered, err := s.store.LastfmSessionKey(ctx, input.GuildID, userID)
		if err != nil {
			log.Printf("Failed to look up session key for user %s in guild %s: %v", userID, input.GuildID, err)
			output.Failed++
			continue
		}

		// Registration is opt-in; unregistered users are not an error
		if !registered {
			output.Skipped++
			continue
		}

		err = s.lastfm.Scrobble(ctx, &lastfm.ScrobbleInput{
			Artist:     input.Track.Artist,
			Title:      input.Track.Title,
			SessionKey: sessionKey,
			Timestamp:  now,
		})
		if err != nil {
			// Best effort: one user's failure never blocks the rest,
			// and a stale play is not worth retrying
			log.Printf("Failed to scrobble %q by %q for user %s: %v", input.Track.Title, input.Track.Artist, userID, err)
			output.Failed++
			continue
		}

		log.Printf("Scrobbled %q by %q for user %s in guild %s", input.Track.Title, input.Track.Artist, userID, input.GuildID)
		output.Submitted++
	}

	return output, nil
}

// AuthURL returns the Last.fm authorization page for this application
func (s *service) AuthURL() string {
	return s.lastfm.AuthURL()
}
