package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the bot
type Config struct {
	// DiscordToken is the bot token used to authenticate with the gateway
	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`

	// ApplicationID is the Discord application ID used for command registration
	ApplicationID string `env:"APPLICATION_ID"`

	// GuildID scopes command registration to one guild during development
	GuildID string `env:"GUILD_ID"`

	// RedisAddr is the address of the Redis instance backing guild settings
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// RedisPassword is the optional Redis auth password
	RedisPassword string `env:"REDIS_PASSWORD"`

	// LastfmAPIKey identifies the application to the Last.fm API
	LastfmAPIKey string `env:"LASTFM_API_KEY,required,notEmpty"`

	// LastfmSharedSecret signs authenticated Last.fm API calls
	LastfmSharedSecret string `env:"LASTFM_SHARED_SECRET,required,notEmpty"`

	// IdleLimit is how many consecutive idle ticks disconnect the bot
	IdleLimit int `env:"IDLE_LIMIT" envDefault:"600"`

	// TickInterval is how often the idle monitor samples the queue
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`

	// HTTPTimeout bounds outbound Last.fm API calls
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from the environment, layering in a .env
// file when one is present.
func Load() (*Config, error) {
	// A missing .env file is fine, real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}
