package messaging

// PlaybackAction identifies which queue operation a message describes
type PlaybackAction string

const (
	// ActionPause describes a pause
	ActionPause PlaybackAction = "pause"

	// ActionResume describes a resume
	ActionResume PlaybackAction = "resume"
)

// GetSummonMessageInput contains parameters for a summon message
type GetSummonMessageInput struct {
	// ChannelMention is the rendered mention of the joined channel
	ChannelMention string

	// Rejoined indicates the bot was already in the channel
	Rejoined bool
}

// GetSummonMessageOutput contains the summon message
type GetSummonMessageOutput struct {
	Message string
}

// GetLeaveMessageInput contains parameters for a leave message
type GetLeaveMessageInput struct {
	// WasConnected indicates whether there was a session to tear down
	WasConnected bool
}

// GetLeaveMessageOutput contains the leave message
type GetLeaveMessageOutput struct {
	Message string
}

// GetPlaybackMessageInput contains parameters for a playback message
type GetPlaybackMessageInput struct {
	Action PlaybackAction
}

// GetPlaybackMessageOutput contains the playback message
type GetPlaybackMessageOutput struct {
	Message string
}

// GetRegisterMessageInput contains parameters for a registration message
type GetRegisterMessageInput struct{}

// GetRegisterMessageOutput contains the registration message
type GetRegisterMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for an error message
type GetErrorMessageInput struct {
	// Err is the error to describe to the user
	Err error
}

// GetErrorMessageOutput contains the error message
type GetErrorMessageOutput struct {
	Message string
}
