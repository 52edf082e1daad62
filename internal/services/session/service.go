package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/macawbot/macaw/internal/common/uuid"
	"github.com/macawbot/macaw/internal/services/scrobble"
	"github.com/macawbot/macaw/internal/settings"
	"github.com/macawbot/macaw/internal/voice"
)

const (
	// DefaultIdleLimit is how many consecutive empty-queue ticks are
	// tolerated before the bot leaves (600 ticks at 1s is 10 minutes)
	DefaultIdleLimit = 600

	// DefaultTickInterval is the idle monitor cadence
	DefaultTickInterval = time.Second

	// DefaultDispatchTimeout bounds the reporting fan-out for one track
	DefaultDispatchTimeout = 30 * time.Second
)

// Config holds configuration for the session service
type Config struct {
	// Transport is the voice connection layer
	Transport voice.Transport

	// Members reads voice channel membership for the reporting fan-out
	Members voice.Membership

	// Scrobbles receives the track-completion fan-out
	Scrobbles scrobble.Service

	// Store holds per-guild settings, loaded lazily on join
	Store *settings.Store

	// UUID generates session IDs for log correlation
	UUID uuid.UUID

	// IdleLimit overrides DefaultIdleLimit (0 keeps the default)
	IdleLimit int

	// TickInterval overrides DefaultTickInterval (0 keeps the default)
	TickInterval time.Duration

	// DispatchTimeout overrides DefaultDispatchTimeout (0 keeps the default)
	DispatchTimeout time.Duration
}

// voiceSession is one guild's active voice connection and its attached
// monitors. It is owned exclusively by the service while connected.
type voiceSession struct {
	id         string
	guildID    string
	channelID  string
	queue      voice.Queue
	monitor    *idleMonitor
	dispatcher *trackEndDispatcher
}

// detach stops the idle monitor and unhooks the track-end dispatcher so no
// further ticks or firings act on a torn-down session
func (vs *voiceSession) detach() {
	vs.monitor.detach()
	vs.queue.OnTrackEnd(nil)
}

// service implements the Service interface
type service struct {
	transport       voice.Transport
	members         voice.Membership
	scrobbles       scrobble.Service
	store           *settings.Store
	uuid            uuid.UUID
	idleLimit       int
	tickInterval    time.Duration
	dispatchTimeout time.Duration

	mu         sync.Mutex
	sessions   map[string]*voiceSession
	guildLocks map[string]*sync.Mutex
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Transport == nil {
		return nil, errors.New("transport cannot be nil")
	}

	if cfg.Members == nil {
		return nil, errors.New("membership reader cannot be nil")
	}

	if cfg.Scrobbles == nil {
		return nil, errors.New("scrobble service cannot be nil")
	}

	if cfg.Store == nil {
		return nil, errors.New("settings store cannot be nil")
	}

	if cfg.UUID == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}

	idleLimit := cfg.IdleLimit
	if idleLimit == 0 {
		idleLimit = DefaultIdleLimit
	}

	tickInterval := cfg.TickInterval
	if tickInterval == 0 {
		tickInterval = DefaultTickInterval
	}

	dispatchTimeout := cfg.DispatchTimeout
	if dispatchTimeout == 0 {
		dispatchTimeout = DefaultDispatchTimeout
	}

	return &service{
		transport:       cfg.Transport,
		members:         cfg.Members,
		scrobbles:       cfg.Scrobbles,
		store:           cfg.Store,
		uuid:            cfg.UUID,
		idleLimit:       idleLimit,
		tickInterval:    tickInterval,
		dispatchTimeout: dispatchTimeout,
		sessions:        make(map[string]*voiceSession),
		guildLocks:      make(map[string]*sync.Mutex),
	}, nil
}

// guildLock returns the lock serializing structural mutations for a guild
func (s *service) guildLock(guildID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.guildLocks[guildID]
	if !ok {
		lock = &sync.Mutex{}
		s.guildLocks[guildID] = lock
	}
	return lock
}

// session returns the guild's active session, if any
func (s *service) session(guildID string) *voiceSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[guildID]
}

// Join connects the bot to a voice channel
func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GuildID == "" || input.ChannelID == "" {
		return nil, errors.New("guild ID and channel ID cannot be empty")
	}

	lock := s.guildLock(input.GuildID)
	lock.Lock()
	defer lock.Unlock()

	// The transport is the source of truth for liveness; a session map
	// entry without a live connection is stale and gets replaced
	if channelID, ok := s.transport.CurrentConnection(input.GuildID); ok && channelID != input.ChannelID {
		return nil, &AlreadyConnectedError{ChannelID: channelID}
	}

	rejoined := false
	if existing := s.session(input.GuildID); existing != nil {
		existing.detach()
		rejoined = true
	}

	if err := s.transport.Connect(ctx, input.GuildID, input.ChannelID); err != nil {
		return nil, fmt.Errorf("failed to connect to voice channel: %w", err)
	}

	// Bring the guild's settings into memory so the first track-end does
	// not pay the load; a failed read only costs that optimization
	if _, err := s.store.Load(ctx, input.GuildID); err != nil {
		log.Printf("Failed to load settings for guild %s: %v", input.GuildID, err)
	}

	queue := s.transport.Queue(input.GuildID)

	sess := &voiceSession{
		id:        s.uuid.NewUUID(),
		guildID:   input.GuildID,
		channelID: input.ChannelID,
		queue:     queue,
	}

	sess.monitor = newIdleMonitor(&idleMonitorConfig{
		sessionID: sess.id,
		guildID:   input.GuildID,
		queue:     queue,
		limit:     s.idleLimit,
		interval:  s.tickInterval,
		leave:     s.autoLeave,
	})

	sess.dispatcher = &trackEndDispatcher{
		sessionID: sess.id,
		guildID:   input.GuildID,
		queue:     queue,
		members:   s.members,
		scrobbles: s.scrobbles,
		timeout:   s.dispatchTimeout,
	}
	queue.OnTrackEnd(sess.dispatcher.handleTrackEnd)

	s.mu.Lock()
	s.sessions[input.GuildID] = sess
	s.mu.Unlock()

	go sess.monitor.run()

	log.Printf("Joined voice channel %s in guild %s (session %s)", input.ChannelID, input.GuildID, sess.id)

	return &JoinOutput{
		SessionID: sess.id,
		ChannelID: input.ChannelID,
		Rejoined:  rejoined,
	}, nil
}

// Leave disconnects the bot from the guild's voice channel
func (s *service) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GuildID == "" {
		return nil, errors.New("guild ID cannot be empty")
	}

	lock := s.guildLock(input.GuildID)
	lock.Lock()
	defer lock.Unlock()

	sess := s.session(input.GuildID)
	if sess == nil {
		// Already gone; a concurrent or repeated leave is not an error
		return &LeaveOutput{WasConnected: false}, nil
	}

	if err := s.teardown(ctx, sess); err != nil {
		return nil, err
	}

	return &LeaveOutput{WasConnected: true}, nil
}

// teardown detaches a session, removes it from the map, and drops the
// voice connection. The caller must hold the guild lock.
func (s *service) teardown(ctx context.Context, sess *voiceSession) error {
	sess.detach()

	s.mu.Lock()
	delete(s.sessions, sess.guildID)
	s.mu.Unlock()

	if err := s.transport.Disconnect(ctx, sess.guildID); err != nil {
		return fmt.Errorf("failed to disconnect from voice channel: %w", err)
	}

	log.Printf("Left voice channel in guild %s (session %s)", sess.guildID, sess.id)

	return nil
}

// autoLeave is the idle monitor's leave path. It runs unattended, so
// failures are logged rather than escalated.
func (s *service) autoLeave(guildID, sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.dispatchTimeout)
	defer cancel()

	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	// A detached monitor can have one tick in flight past a rejoin or a
	// manual leave. Only the session this monitor was watching may be torn
	// down; whatever replaced it stays connected.
	sess := s.session(guildID)
	if sess == nil || sess.id != sessionID {
		return
	}

	log.Printf("Idle limit reached in guild %s (session %s), disconnecting", guildID, sessionID)

	if err := s.teardown(ctx, sess); err != nil {
		log.Printf("Auto-disconnect failed for guild %s (session %s): %v", guildID, sessionID, err)
	}
}

// Pause suspends playback for the guild
func (s *service) Pause(ctx context.Context, input *PauseInput) (*PauseOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	sess := s.session(input.GuildID)
	if sess == nil {
		return nil, ErrNotConnected
	}

	if sess.queue.IsEmpty() {
		return nil, ErrNothingPlaying
	}

	if err := sess.queue.Pause(); err != nil {
		return nil, fmt.Errorf("failed to pause playback: %w", err)
	}

	return &PauseOutput{}, nil
}

// Resume restarts suspended playback for the guild
func (s *service) Resume(ctx context.Context, input *ResumeInput) (*ResumeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	sess := s.session(input.GuildID)
	if sess == nil {
		return nil, ErrNotConnected
	}

	if sess.queue.IsEmpty() {
		return nil, ErrNothingPlaying
	}

	if err := sess.queue.Resume(); err != nil {
		return nil, fmt.Errorf("failed to resume playback: %w", err)
	}

	return &ResumeOutput{}, nil
}
