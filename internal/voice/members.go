package voice

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DiscordMembership reads voice channel membership from discordgo state
type DiscordMembership struct {
	session *discordgo.Session
}

// NewDiscordMembership creates a membership reader bound to a Discord session
func NewDiscordMembership(session *discordgo.Session) (*DiscordMembership, error) {
	if session == nil {
		return nil, errors.New("session cannot be nil")
	}

	return &DiscordMembership{session: session}, nil
}

// UsersInChannel returns the users connected to the same voice channel as
// the bot, excluding the bot itself
func (m *DiscordMembership) UsersInChannel(guildID string) ([]string, error) {
	guild, err := m.session.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to read guild state: %w", err)
	}

	botID := m.session.State.User.ID

	// Find the channel the bot is in
	var botChannelID string
	for _, vs := range guild.VoiceStates {
		if vs.UserID == botID {
			botChannelID = vs.ChannelID
			break
		}
	}

	if botChannelID == "" {
		return nil, nil
	}

	var users []string
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == botChannelID && vs.UserID != botID {
			users = append(users, vs.UserID)
		}
	}

	return users, nil
}
