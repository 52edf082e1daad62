package session

// JoinInput contains parameters for joining a voice channel
type JoinInput struct {
	// GuildID is the guild to join in
	GuildID string

	// ChannelID is the voice channel to join
	ChannelID string
}

// JoinOutput contains the result of joining a voice channel
type JoinOutput struct {
	// SessionID identifies the voice session in logs
	SessionID string

	// ChannelID is the channel that was joined
	ChannelID string

	// Rejoined reports whether an existing session was replaced
	Rejoined bool
}

// LeaveInput contains parameters for leaving a voice channel
type LeaveInput struct {
	GuildID string
}

// LeaveOutput contains the result of leaving a voice channel
type LeaveOutput struct {
	// WasConnected reports whether a session existed to tear down
	WasConnected bool
}

// PauseInput contains parameters for pausing playback
type PauseInput struct {
	GuildID string
}

// PauseOutput contains the result of pausing playback
type PauseOutput struct{}

// ResumeInput contains parameters for resuming playback
type ResumeInput struct {
	GuildID string
}

// ResumeOutput contains the result of resuming playback
type ResumeOutput struct{}
