package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"

	"github.com/macawbot/macaw/internal/common/clock"
	"github.com/macawbot/macaw/internal/common/uuid"
	"github.com/macawbot/macaw/internal/config"
	"github.com/macawbot/macaw/internal/handlers/discord"
	"github.com/macawbot/macaw/internal/lastfm"
	settingsRepo "github.com/macawbot/macaw/internal/repositories/settings"
	"github.com/macawbot/macaw/internal/services/messaging"
	"github.com/macawbot/macaw/internal/services/scrobble"
	"github.com/macawbot/macaw/internal/services/session"
	"github.com/macawbot/macaw/internal/settings"
	"github.com/macawbot/macaw/internal/voice"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	repo, err := settingsRepo.NewRedis(&settingsRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create settings repository: %v", err)
	}

	// Initialize the settings store
	store, err := settings.NewStore(&settings.Config{
		Repository: repo,
		Clock:      &clock.DefaultClock{},
	})
	if err != nil {
		log.Fatalf("Failed to create settings store: %v", err)
	}

	// Initialize the Last.fm client
	lastfmClient, err := lastfm.New(&lastfm.Config{
		APIKey:       cfg.LastfmAPIKey,
		SharedSecret: cfg.LastfmSharedSecret,
		HTTPClient:   &http.Client{Timeout: cfg.HTTPTimeout},
	})
	if err != nil {
		log.Fatalf("Failed to create Last.fm client: %v", err)
	}

	// Initialize scrobble service
	scrobbleSvc, err := scrobble.New(&scrobble.Config{
		Lastfm: lastfmClient,
		Store:  store,
		Clock:  &clock.DefaultClock{},
	})
	if err != nil {
		log.Fatalf("Failed to create scrobble service: %v", err)
	}

	// Create the shared Discord session. The voice layer and the command
	// handlers both operate on it.
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates

	transport, err := voice.NewDiscordTransport(dg)
	if err != nil {
		log.Fatalf("Failed to create voice transport: %v", err)
	}

	membership, err := voice.NewDiscordMembership(dg)
	if err != nil {
		log.Fatalf("Failed to create voice membership reader: %v", err)
	}

	// Initialize session service
	sessionSvc, err := session.New(&session.Config{
		Transport:    transport,
		Members:      membership,
		Scrobbles:    scrobbleSvc,
		Store:        store,
		UUID:         uuid.New(),
		IdleLimit:    cfg.IdleLimit,
		TickInterval: cfg.TickInterval,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	// Initialize messaging service
	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		log.Fatalf("Failed to create messaging service: %v", err)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Session:          dg,
		ApplicationID:    cfg.ApplicationID,
		GuildID:          cfg.GuildID,
		SessionService:   sessionSvc,
		ScrobbleService:  scrobbleSvc,
		MessagingService: messagingSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}
