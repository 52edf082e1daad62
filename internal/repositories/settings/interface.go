package settings

import (
	"context"

	"github.com/macawbot/macaw/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/macawbot/macaw/internal/repositories/settings Repository

// Repository defines the interface for guild settings persistence
type Repository interface {
	// GetSettings retrieves the settings for a guild.
	// Returns ErrSettingsNotFound if the guild has never been saved.
	GetSettings(ctx context.Context, input *GetSettingsInput) (*models.GuildSettings, error)

	// SaveSettings persists the settings for a guild
	SaveSettings(ctx context.Context, input *SaveSettingsInput) error
}
