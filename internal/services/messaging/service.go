package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/macawbot/macaw/internal/services/scrobble"
	"github.com/macawbot/macaw/internal/services/session"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting message variants
	rand *rand.Rand
}

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct{}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	source := rand.NewSource(time.Now().UnixNano())

	return &service{
		rand: rand.New(source),
	}, nil
}

// GetSummonMessage returns a message for when the bot joins a voice channel
func (s *service) GetSummonMessage(ctx context.Context, input *GetSummonMessageInput) (*GetSummonMessageOutput, error) {
	var messages []string

	if input.Rejoined {
		messages = []string{
			fmt.Sprintf("Back on duty in %s!", input.ChannelMention),
			fmt.Sprintf("Shook the feathers out, settled back into %s.", input.ChannelMention),
		}
	} else {
		messages = []string{
			fmt.Sprintf("Joining %s!", input.ChannelMention),
			fmt.Sprintf("Flying over to %s. Queue something up!", input.ChannelMention),
			fmt.Sprintf("Perched in %s and ready to play.", input.ChannelMention),
		}
	}

	return &GetSummonMessageOutput{
		Message: messages[s.rand.Intn(len(messages))],
	}, nil
}

// GetLeaveMessage returns a message for when the bot leaves a voice channel
func (s *service) GetLeaveMessage(ctx context.Context, input *GetLeaveMessageInput) (*GetLeaveMessageOutput, error) {
	var messages []string

	if input.WasConnected {
		messages = []string{
			"See you around!",
			"Flying off. Summon me when you need more music.",
			"Leaving the channel. The queue stays warm for next time.",
		}
	} else {
		messages = []string{
			"I wasn't in a voice channel, but consider me extra gone.",
			"Nothing to leave! I was already out.",
		}
	}

	return &GetLeaveMessageOutput{
		Message: messages[s.rand.Intn(len(messages))],
	}, nil
}

// GetPlaybackMessage returns a message for a pause or resume
func (s *service) GetPlaybackMessage(ctx context.Context, input *GetPlaybackMessageInput) (*GetPlaybackMessageOutput, error) {
	var messages []string

	switch input.Action {
	case ActionPause:
		messages = []string{
			"Paused! The silence is deafening.",
			"Holding the music right there.",
			"Paused. Take your time.",
		}
	case ActionResume:
		messages = []string{
			"And we're back!",
			"Resuming where we left off.",
			"Music's flowing again.",
		}
	default:
		return nil, fmt.Errorf("unknown playback action: %s", input.Action)
	}

	return &GetPlaybackMessageOutput{
		Message: messages[s.rand.Intn(len(messages))],
	}, nil
}

// GetRegisterMessage returns a message for a completed Last.fm registration
func (s *service) GetRegisterMessage(ctx context.Context, input *GetRegisterMessageInput) (*GetRegisterMessageOutput, error) {
	messages := []string{
		"Last.fm account linked! Everything played while you're in the channel gets scrobbled.",
		"Registered! Your listening history is in good claws now.",
		"All set. I'll scrobble the tracks you hear from here on.",
	}

	return &GetRegisterMessageOutput{
		Message: messages[s.rand.Intn(len(messages))],
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	var message string

	var alreadyConnected *session.AlreadyConnectedError

	switch {
	case errors.As(input.Err, &alreadyConnected):
		message = fmt.Sprintf("I'm already playing in <#%s>. Join me there or wait your turn!", alreadyConnected.ChannelID)
	case errors.Is(input.Err, session.ErrNotConnected):
		message = "I'm not in a voice channel. Summon me first!"
	case errors.Is(input.Err, session.ErrNothingPlaying):
		message = "Nothing is playing right now."
	case errors.Is(input.Err, scrobble.ErrExchange):
		message = "Last.fm did not accept that token. Authorize the app again and paste a fresh one."
	case errors.Is(input.Err, scrobble.ErrMissingToken):
		message = "That token looked empty. Paste the token Last.fm gave you."
	default:
		message = "Something went wrong. Please try again."
	}

	return &GetErrorMessageOutput{
		Message: message,
	}, nil
}
