package models

import "time"

// GuildSettings holds the per-guild configuration that must survive restarts.
// One entry exists per guild; it is created lazily with default values the
// first time the guild is touched.
type GuildSettings struct {
	// GuildID is the Discord guild these settings belong to
	GuildID string `json:"guild_id"`

	// LastfmUsers maps a Discord user ID to the Last.fm session key the
	// user obtained through the register command
	LastfmUsers map[string]string `json:"lastfm_users"`

	// UpdatedAt is when the settings were last persisted
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGuildSettings returns default settings for a guild
func NewGuildSettings(guildID string) *GuildSettings {
	return &GuildSettings{
		GuildID:     guildID,
		LastfmUsers: make(map[string]string),
	}
}

// Clone returns a deep copy of the settings
func (s *GuildSettings) Clone() *GuildSettings {
	users := make(map[string]string, len(s.LastfmUsers))
	for userID, key := range s.LastfmUsers {
		users[userID] = key
	}

	return &GuildSettings{
		GuildID:     s.GuildID,
		LastfmUsers: users,
		UpdatedAt:   s.UpdatedAt,
	}
}
