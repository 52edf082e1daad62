package scrobble

import "github.com/macawbot/macaw/internal/models"

// RegisterInput contains parameters for registering a Last.fm account
type RegisterInput struct {
	// GuildID is the guild the registration belongs to
	GuildID string

	// UserID is the Discord user registering
	UserID string

	// Token is the user-authorized Last.fm token from the auth page
	Token string
}

// RegisterOutput contains the result of a registration
type RegisterOutput struct {
	// SessionKey is the durable key obtained from Last.fm
	SessionKey string
}

// SubmitInput contains parameters for reporting a finished track
type SubmitInput struct {
	// GuildID is the guild the track played in
	GuildID string

	// Track is the track that just finished
	Track models.Track

	// UserIDs are the users present in the bot's voice channel when the
	// track ended
	UserIDs []string
}

// SubmitOutput contains the result of a fan-out
type SubmitOutput struct {
	// Submitted is the number of successful scrobbles
	Submitted int

	// Skipped is the number of present but unregistered users
	Skipped int

	// Failed is the number of submissions that errored
	Failed int
}
