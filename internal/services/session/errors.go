package session

import (
	"errors"
	"fmt"
)

// Define errors
var (
	ErrNotConnected   = errors.New("not connected to a voice channel")
	ErrNothingPlaying = errors.New("nothing is playing")
)

// AlreadyConnectedError is returned when a join is requested while the bot
// has a live connection to a different channel in the same guild
type AlreadyConnectedError struct {
	// ChannelID is the channel the bot is already connected to
	ChannelID string
}

func (e *AlreadyConnectedError) Error() string {
	return fmt.Sprintf("already connected to voice channel %s", e.ChannelID)
}
