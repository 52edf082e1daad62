package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/macawbot/macaw/internal/services/messaging"
	"github.com/macawbot/macaw/internal/services/session"
)

// SummonCommand handles the /summon command
type SummonCommand struct {
	BaseCommand
	sessionService   session.Service
	messagingService messaging.Service
}

// NewSummonCommand creates a new summon command handler
func NewSummonCommand(sessionService session.Service, messagingService messaging.Service) *SummonCommand {
	return &SummonCommand{
		BaseCommand: BaseCommand{
			Name:        "summon",
			Description: "Summon the bot to your voice channel",
		},
		sessionService:   sessionService,
		messagingService: messagingService,
	}
}

// Handle processes a Discord interaction for the summon command
func (c *SummonCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	ctx := context.Background()

	// The invoking user has to be in a voice channel for the bot to follow
	voiceState, err := s.State.VoiceState(i.GuildID, i.Member.User.ID)
	if err != nil || voiceState == nil || voiceState.ChannelID == "" {
		return RespondWithEphemeralMessage(s, i, "Join a voice channel first, then summon me.")
	}

	joinOutput, err := c.sessionService.Join(ctx, &session.JoinInput{
		GuildID:   i.GuildID,
		ChannelID: voiceState.ChannelID,
	})
	if err != nil {
		return c.respondWithError(ctx, s, i, err)
	}

	msgOutput, err := c.messagingService.GetSummonMessage(ctx, &messaging.GetSummonMessageInput{
		ChannelMention: fmt.Sprintf("<#%s>", joinOutput.ChannelID),
		Rejoined:       joinOutput.Rejoined,
	})
	if err != nil {
		log.Printf("Error getting summon message: %v", err)
		return RespondWithMessage(s, i, fmt.Sprintf("Joined <#%s>.", joinOutput.ChannelID))
	}

	return RespondWithMessage(s, i, msgOutput.Message)
}

func (c *SummonCommand) respondWithError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, cmdErr error) error {
	log.Printf("Error joining voice channel: %v", cmdErr)

	msgOutput, err := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: cmdErr})
	if err != nil {
		return RespondWithError(s, i, cmdErr.Error())
	}

	return RespondWithEphemeralMessage(s, i, msgOutput.Message)
}
