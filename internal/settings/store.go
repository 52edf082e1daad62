package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/macawbot/macaw/internal/common/clock"
	"github.com/macawbot/macaw/internal/models"
	settingsRepo "github.com/macawbot/macaw/internal/repositories/settings"
)

// Store is the process-wide guild settings state. Every component that
// reads or mutates per-guild settings goes through it: readers take the
// shared lock, writers take the exclusive lock and persist before release.
// Entries are populated lazily, one guild at a time.
type Store struct {
	mu     sync.RWMutex
	guilds map[string]*models.GuildSettings

	repo  settingsRepo.Repository
	clock clock.Clock
}

// Config holds configuration for the settings store
type Config struct {
	// Repository persists settings across restarts
	Repository settingsRepo.Repository

	// Clock provides timestamps for mutations
	Clock clock.Clock
}

// NewStore creates a new settings store
func NewStore(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Repository == nil {
		return nil, errors.New("repository cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	return &Store{
		guilds: make(map[string]*models.GuildSettings),
		repo:   cfg.Repository,
		clock:  cfg.Clock,
	}, nil
}

// Load ensures the settings for a guild are in memory and returns a copy.
// A guild that has never been saved gets default settings.
func (s *Store) Load(ctx context.Context, guildID string) (*models.GuildSettings, error) {
	if guildID == "" {
		return nil, errors.New("guild ID cannot be empty")
	}

	s.mu.RLock()
	cached, ok := s.guilds[guildID]
	s.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	loaded, err := s.repo.GetSettings(ctx, &settingsRepo.GetSettingsInput{
		GuildID: guildID,
	})
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return nil, fmt.Errorf("failed to load settings for guild %s: %w", guildID, err)
		}
		loaded = models.NewGuildSettings(guildID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another loader may have won the race
	if cached, ok := s.guilds[guildID]; ok {
		return cached.Clone(), nil
	}

	s.guilds[guildID] = loaded
	return loaded.Clone(), nil
}

// LastfmSessionKey returns the stored Last.fm session key for a user in a
// guild. The second return reports whether the user is registered.
func (s *Store) LastfmSessionKey(ctx context.Context, guildID, userID string) (string, bool, error) {
	settings, err := s.Load(ctx, guildID)
	if err != nil {
		return "", false, err
	}

	key, ok := settings.LastfmUsers[userID]
	return key, ok, nil
}

// SetLastfmUser stores a Last.fm session key for a user and persists the
// guild settings. The mutation is applied to a copy and only published to
// the in-memory state after persistence succeeds, so a failed save leaves
// the previous settings intact.
func (s *Store) SetLastfmUser(ctx context.Context, guildID, userID, sessionKey string) error {
	if guildID == "" || userID == "" {
		return errors.New("guild ID and user ID cannot be empty")
	}

	if sessionKey == "" {
		return errors.New("session key cannot be empty")
	}

	// Make sure the entry exists before taking the write lock; Load holds
	// no lock across the repository read.
	if _, err := s.Load(ctx, guildID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.guilds[guildID].Clone()
	updated.LastfmUsers[userID] = sessionKey
	updated.UpdatedAt = s.clock.Now()

	if err := s.repo.SaveSettings(ctx, &settingsRepo.SaveSettingsInput{
		Settings: updated,
	}); err != nil {
		return fmt.Errorf("failed to persist settings for guild %s: %w", guildID, err)
	}

	s.guilds[guildID] = updated
	return nil
}
