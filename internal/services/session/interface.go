package session

import "context"

// Service defines the interface for voice session operations
type Service interface {
	// Join connects the bot to a voice channel and attaches the idle
	// monitor and track-end dispatcher for the guild
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// Leave disconnects the bot from the guild's voice channel. Calling
	// it when no session exists is a no-op, not an error.
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)

	// Pause suspends playback for the guild
	Pause(ctx context.Context, input *PauseInput) (*PauseOutput, error)

	// Resume restarts suspended playback for the guild
	Resume(ctx context.Context, input *ResumeInput) (*ResumeOutput, error)
}
