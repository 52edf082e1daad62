package voice

import (
	"context"

	"github.com/macawbot/macaw/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_voice.go github.com/macawbot/macaw/internal/voice Transport,Queue,Membership

// Transport is the interface for the voice connection layer
type Transport interface {
	// Connect joins a voice channel, replacing any stale connection
	Connect(ctx context.Context, guildID, channelID string) error

	// Disconnect leaves the guild's voice channel. It is a no-op when
	// there is no connection.
	Disconnect(ctx context.Context, guildID string) error

	// CurrentConnection returns the channel the bot is connected to in a
	// guild, if any
	CurrentConnection(guildID string) (string, bool)

	// Queue returns the playback queue for a guild, creating it if needed
	Queue(guildID string) Queue
}

// Queue is the interface for a guild's playback queue
type Queue interface {
	// IsEmpty reports whether nothing is queued or playing
	IsEmpty() bool

	// Pause suspends playback
	Pause() error

	// Resume restarts suspended playback
	Resume() error

	// CurrentTrack returns the track at the head of the queue.
	// Track-end handlers run before the queue advances, so during a
	// handler this is still the track that just finished.
	CurrentTrack() (models.Track, bool)

	// OnTrackEnd registers the handler invoked after each completed
	// track, replacing any previous handler. A nil handler detaches.
	OnTrackEnd(fn func())
}

// Membership is the interface for reading who shares the bot's voice channel
type Membership interface {
	// UsersInChannel returns the IDs of the users connected to the same
	// voice channel as the bot, excluding the bot itself
	UsersInChannel(guildID string) ([]string, error)
}
