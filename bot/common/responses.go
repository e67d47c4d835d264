package common

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/Hiroshi025/Nebura-sub000/service"
)

const (
	ColorSuccess = 0x57F287
	ColorError   = 0xED4245
	ColorNeutral = 0x5865F2
	ColorGold    = 0xFEE75C
)

// UserFacing maps service errors to messages safe to show in chat.
// Unknown errors get a generic line so internals never leak.
func UserFacing(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidIdentifier):
		return "That doesn't look like a valid user."
	case errors.Is(err, service.ErrInvalidBet):
		return "Invalid bet. It must be a positive amount you can cover."
	case errors.Is(err, service.ErrInsufficientBalance):
		return "You don't have enough money for that."
	case errors.Is(err, service.ErrLoanOutstanding):
		return "You already have an unpaid loan. Repay it first."
	case errors.Is(err, service.ErrNoLoan):
		return "You don't have a loan to repay."
	case errors.Is(err, service.ErrItemNotFound):
		return "That item doesn't exist or isn't yours."
	case errors.Is(err, service.ErrNoJob):
		return "You don't have a job. Join one first."
	case errors.Is(err, service.ErrUnknownJob):
		return "That job isn't on the board."
	}
	return "Something went wrong. Please try again."
}

// ReplyEmbed sends an embed to a channel
func ReplyEmbed(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) *discordgo.Message {
	msg, err := s.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		log.WithError(err).Error("Failed to send embed")
	}
	return msg
}

// ReplyEmbedComponents sends an embed with components to a channel
func ReplyEmbedComponents(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) *discordgo.Message {
	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		log.WithError(err).Error("Failed to send embed with components")
	}
	return msg
}

// ReplyError sends an error embed to a channel
func ReplyError(s *discordgo.Session, channelID, message string) {
	ReplyEmbed(s, channelID, &discordgo.MessageEmbed{
		Description: "❌ " + message,
		Color:       ColorError,
	})
}

// ReplySuccess sends a success embed to a channel
func ReplySuccess(s *discordgo.Session, channelID, message string) {
	ReplyEmbed(s, channelID, &discordgo.MessageEmbed{
		Description: "✅ " + message,
		Color:       ColorSuccess,
	})
}

// UpdateComponentMessage edits the message a component interaction came
// from, acknowledging the interaction in the same call
func UpdateComponentMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// RespondEphemeral answers an interaction with an ephemeral message
func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Debug("Failed to send ephemeral response")
	}
}

// DisableComponents returns a copy of components with every button and
// menu disabled, for expiry cleanup
func DisableComponents(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	disabled := make([]discordgo.MessageComponent, len(components))
	for i, component := range components {
		row, ok := component.(discordgo.ActionsRow)
		if !ok {
			disabled[i] = component
			continue
		}

		newRow := discordgo.ActionsRow{
			Components: make([]discordgo.MessageComponent, len(row.Components)),
		}
		for j, comp := range row.Components {
			switch c := comp.(type) {
			case discordgo.Button:
				c.Disabled = true
				newRow.Components[j] = c
			case *discordgo.Button:
				btn := *c
				btn.Disabled = true
				newRow.Components[j] = &btn
			case discordgo.SelectMenu:
				c.Disabled = true
				newRow.Components[j] = c
			case *discordgo.SelectMenu:
				menu := *c
				menu.Disabled = true
				newRow.Components[j] = &menu
			default:
				newRow.Components[j] = comp
			}
		}
		disabled[i] = newRow
	}
	return disabled
}

// EditMessageComponents replaces a message's components, best-effort
func EditMessageComponents(s *discordgo.Session, channelID, messageID string, components []discordgo.MessageComponent) {
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Components: &components,
	})
	if err != nil {
		log.WithError(err).Debug("Failed to edit message components")
	}
}

// GetDisplayName resolves a member's nickname, falling back to username
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	if member, err := s.State.Member(guildID, userID); err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}
	if user, err := s.User(userID); err == nil {
		return user.Username
	}
	return userID
}
