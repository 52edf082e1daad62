package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/macawbot/macaw/internal/services/messaging"
	"github.com/macawbot/macaw/internal/services/session"
)

// ResumeCommand handles the /resume command
type ResumeCommand struct {
	BaseCommand
	sessionService   session.Service
	messagingService messaging.Service
}

// NewResumeCommand creates a new resume command handler
func NewResumeCommand(sessionService session.Service, messagingService messaging.Service) *ResumeCommand {
	return &ResumeCommand{
		BaseCommand: BaseCommand{
			Name:        "resume",
			Description: "Resume the paused track",
		},
		sessionService:   sessionService,
		messagingService: messagingService,
	}
}

// Handle processes a Discord interaction for the resume command
func (c *ResumeCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	ctx := context.Background()

	_, err := c.sessionService.Resume(ctx, &session.ResumeInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		log.Printf("Error resuming playback: %v", err)

		msgOutput, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
		if msgErr != nil {
			return RespondWithError(s, i, err.Error())
		}
		return RespondWithEphemeralMessage(s, i, msgOutput.Message)
	}

	msgOutput, err := c.messagingService.GetPlaybackMessage(ctx, &messaging.GetPlaybackMessageInput{
		Action: messaging.ActionResume,
	})
	if err != nil {
		log.Printf("Error getting resume message: %v", err)
		return RespondWithMessage(s, i, "Resumed.")
	}

	return RespondWithMessage(s, i, msgOutput.Message)
}
