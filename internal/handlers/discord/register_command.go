package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/macawbot/macaw/internal/services/messaging"
	"github.com/macawbot/macaw/internal/services/scrobble"
)

// Modal custom IDs
const (
	ModalRegisterLastfm = "register_lastfm"
	InputLastfmToken    = "lastfm_token"
)

// RegisterCommand handles the /register command
type RegisterCommand struct {
	BaseCommand
	scrobbleService  scrobble.Service
	messagingService messaging.Service
}

// NewRegisterCommand creates a new register command handler
func NewRegisterCommand(scrobbleService scrobble.Service, messagingService messaging.Service) *RegisterCommand {
	return &RegisterCommand{
		BaseCommand: BaseCommand{
			Name:        "register",
			Description: "Link your Last.fm account for scrobbling",
		},
		scrobbleService:  scrobbleService,
		messagingService: messagingService,
	}
}

// GetModalID returns the custom ID of the token modal
func (c *RegisterCommand) GetModalID() string {
	return ModalRegisterLastfm
}

// Handle opens the token input modal
func (c *RegisterCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: ModalRegisterLastfm,
			Title:    "Link your Last.fm account",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    InputLastfmToken,
							Label:       "Last.fm token",
							Style:       discordgo.TextInputShort,
							Placeholder: c.scrobbleService.AuthURL(),
							Required:    true,
						},
					},
				},
			},
		},
	})
}

// HandleModal exchanges the submitted token for a session key
func (c *RegisterCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	token := c.extractToken(i.ModalSubmitData())

	_, err := c.scrobbleService.Register(ctx, &scrobble.RegisterInput{
		GuildID: i.GuildID,
		UserID:  i.Member.User.ID,
		Token:   strings.TrimSpace(token),
	})
	if err != nil {
		log.Printf("Error registering Last.fm account for user %s: %v", i.Member.User.ID, err)

		msgOutput, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
		if msgErr != nil {
			return RespondWithError(s, i, err.Error())
		}
		return RespondWithEphemeralMessage(s, i,
			fmt.Sprintf("%s Authorize here first: %s", msgOutput.Message, c.scrobbleService.AuthURL()))
	}

	msgOutput, err := c.messagingService.GetRegisterMessage(ctx, &messaging.GetRegisterMessageInput{})
	if err != nil {
		log.Printf("Error getting register message: %v", err)
		return RespondWithEphemeralMessage(s, i, "Last.fm account linked.")
	}

	return RespondWithEphemeralMessage(s, i, msgOutput.Message)
}

func (c *RegisterCommand) extractToken(data discordgo.ModalSubmitInteractionData) string {
	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			input, ok := inner.(*discordgo.TextInput)
			if !ok || input.CustomID != InputLastfmToken {
				continue
			}
			return input.Value
		}
	}
	return ""
}
