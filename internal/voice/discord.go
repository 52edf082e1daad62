package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// DiscordTransport implements Transport over discordgo voice connections.
// The guild's connection is exclusively owned here while connected.
type DiscordTransport struct {
	session *discordgo.Session

	mu     sync.RWMutex
	conns  map[string]*discordgo.VoiceConnection
	queues map[string]*MemoryQueue
}

// NewDiscordTransport creates a transport bound to a Discord session
func NewDiscordTransport(session *discordgo.Session) (*DiscordTransport, error) {
	if session == nil {
		return nil, errors.New("session cannot be nil")
	}

	return &DiscordTransport{
		session: session,
		conns:   make(map[string]*discordgo.VoiceConnection),
		queues:  make(map[string]*MemoryQueue),
	}, nil
}

// Connect joins a voice channel. An existing connection to another channel
// (or a stale one) is dropped first.
func (t *DiscordTransport) Connect(ctx context.Context, guildID, channelID string) error {
	t.mu.Lock()
	if existing, ok := t.conns[guildID]; ok && existing.ChannelID != channelID {
		existing.Disconnect()
		delete(t.conns, guildID)
	}
	t.mu.Unlock()

	vc, err := t.session.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return fmt.Errorf("failed to join voice channel %s: %w", channelID, err)
	}

	t.mu.Lock()
	t.conns[guildID] = vc
	t.mu.Unlock()

	return nil
}

// Disconnect leaves the guild's voice channel. No-op when not connected.
func (t *DiscordTransport) Disconnect(ctx context.Context, guildID string) error {
	t.mu.Lock()
	vc, ok := t.conns[guildID]
	delete(t.conns, guildID)
	t.mu.Unlock()

	if !ok {
		return nil
	}

	if err := vc.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect from voice: %w", err)
	}

	return nil
}

// CurrentConnection returns the channel the bot is connected to in a guild
func (t *DiscordTransport) CurrentConnection(guildID string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	vc, ok := t.conns[guildID]
	if !ok {
		return "", false
	}
	return vc.ChannelID, true
}

// Queue returns the guild's playback queue, creating it on first use
func (t *DiscordTransport) Queue(guildID string) Queue {
	t.mu.Lock()
	defer t.mu.Unlock()

	q, ok := t.queues[guildID]
	if !ok {
		q = NewMemoryQueue()
		t.queues[guildID] = q
	}
	return q
}
