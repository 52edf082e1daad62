package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/macawbot/macaw/internal/services/messaging"
	"github.com/macawbot/macaw/internal/services/session"
)

// PauseCommand handles the /pause command
type PauseCommand struct {
	BaseCommand
	sessionService   session.Service
	messagingService messaging.Service
}

// NewPauseCommand creates a new pause command handler
func NewPauseCommand(sessionService session.Service, messagingService messaging.Service) *PauseCommand {
	return &PauseCommand{
		BaseCommand: BaseCommand{
			Name:        "pause",
			Description: "Pause the current track",
		},
		sessionService:   sessionService,
		messagingService: messagingService,
	}
}

// Handle processes a Discord interaction for the pause command
func (c *PauseCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	ctx := context.Background()

	_, err := c.sessionService.Pause(ctx, &session.PauseInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		log.Printf("Error pausing playback: %v", err)

		msgOutput, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
		if msgErr != nil {
			return RespondWithError(s, i, err.Error())
		}
		return RespondWithEphemeralMessage(s, i, msgOutput.Message)
	}

	msgOutput, err := c.messagingService.GetPlaybackMessage(ctx, &messaging.GetPlaybackMessageInput{
		Action: messaging.ActionPause,
	})
	if err != nil {
		log.Printf("Error getting pause message: %v", err)
		return RespondWithMessage(s, i, "Paused.")
	}

	return RespondWithMessage(s, i, msgOutput.Message)
}
