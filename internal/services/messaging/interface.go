package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetSummonMessage returns a message for when the bot joins a voice channel
	GetSummonMessage(ctx context.Context, input *GetSummonMessageInput) (*GetSummonMessageOutput, error)

	// GetLeaveMessage returns a message for when the bot leaves a voice channel
	GetLeaveMessage(ctx context.Context, input *GetLeaveMessageInput) (*GetLeaveMessageOutput, error)

	// GetPlaybackMessage returns a message for a pause or resume
	GetPlaybackMessage(ctx context.Context, input *GetPlaybackMessageInput) (*GetPlaybackMessageOutput, error)

	// GetRegisterMessage returns a message for a completed Last.fm registration
	GetRegisterMessage(ctx context.Context, input *GetRegisterMessageInput) (*GetRegisterMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
