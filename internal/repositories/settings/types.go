package settings

import "github.com/macawbot/macaw/internal/models"

// GetSettingsInput contains parameters for retrieving guild settings
type GetSettingsInput struct {
	GuildID string
}

// SaveSettingsInput contains parameters for saving guild settings
type SaveSettingsInput struct {
	Settings *models.GuildSettings
}
