package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/macawbot/macaw/internal/services/messaging"
	"github.com/macawbot/macaw/internal/services/session"
)

// LeaveCommand handles the /leave command
type LeaveCommand struct {
	BaseCommand
	sessionService   session.Service
	messagingService messaging.Service
}

// NewLeaveCommand creates a new leave command handler
func NewLeaveCommand(sessionService session.Service, messagingService messaging.Service) *LeaveCommand {
	return &LeaveCommand{
		BaseCommand: BaseCommand{
			Name:        "leave",
			Description: "Make the bot leave its voice channel",
		},
		sessionService:   sessionService,
		messagingService: messagingService,
	}
}

// Handle processes a Discord interaction for the leave command
func (c *LeaveCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	ctx := context.Background()

	leaveOutput, err := c.sessionService.Leave(ctx, &session.LeaveInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		log.Printf("Error leaving voice channel: %v", err)

		msgOutput, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
		if msgErr != nil {
			return RespondWithError(s, i, err.Error())
		}
		return RespondWithEphemeralMessage(s, i, msgOutput.Message)
	}

	msgOutput, err := c.messagingService.GetLeaveMessage(ctx, &messaging.GetLeaveMessageInput{
		WasConnected: leaveOutput.WasConnected,
	})
	if err != nil {
		log.Printf("Error getting leave message: %v", err)
		return RespondWithMessage(s, i, "Left the voice channel.")
	}

	return RespondWithMessage(s, i, msgOutput.Message)
}
