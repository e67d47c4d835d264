package cards

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/bot/common"
	"github.com/Hiroshi025/Nebura-sub000/games"
)

const (
	pickTimeout     = 20 * time.Second
	escalateTimeout = 20 * time.Second
)

func (f *Feature) handleDaily(ctx *bot.Context) error {
	msg := common.ReplyEmbedComponents(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title: "🃏 Daily cards",
		Description: fmt.Sprintf("One of these %d cards pays **$%s**. Picking wrong costs **$%s**.",
			games.CardCount, common.FormatMoney(games.CardWinAmount), common.FormatMoney(games.CardLossAmount)),
		Color: common.ColorNeutral,
	}, cardButtons(false))
	if msg == nil {
		return nil
	}

	userID := ctx.Message.Author.ID
	guildID := ctx.Message.GuildID
	channelID := ctx.Message.ChannelID

	f.sessions.Start(&bot.InteractionSession{
		UserID:    userID,
		MessageID: msg.ID,
		Timeout:   pickTimeout,
		Handle: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			f.handlePick(s, i, userID, guildID)
		},
		OnExpire: func() {
			common.EditMessageComponents(ctx.Session, channelID, msg.ID, cardButtons(true))
		},
	})
	return nil
}

func (f *Feature) handlePick(s *discordgo.Session, i *discordgo.InteractionCreate, userID, guildID string) {
	pick, ok := cardFromCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	f.sessions.Stop(i.Message.ID)

	res, newBalance, err := f.gamesSvc.PlayCardGuess(context.Background(), userID, guildID, pick)
	if err != nil {
		_ = common.UpdateComponentMessage(s, i, &discordgo.MessageEmbed{
			Description: "❌ " + common.UserFacing(err),
			Color:       common.ColorError,
		}, nil)
		return
	}

	if res.Correct {
		_ = common.UpdateComponentMessage(s, i, &discordgo.MessageEmbed{
			Title: "🃏 Daily cards",
			Description: fmt.Sprintf("🎉 Card **%d** was it! You win **$%s**.\nBalance: **$%s**",
				res.Drawn, common.FormatMoney(res.Delta), common.FormatMoney(newBalance)),
			Color: common.ColorSuccess,
		}, nil)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🃏 Daily cards",
		Description: fmt.Sprintf("The winning card was **%d**. You lose **$%s**.\nBalance: **$%s**",
			res.Drawn, common.FormatMoney(games.CardLossAmount), common.FormatMoney(newBalance)),
		Color: common.ColorError,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Double or nothing? One more pick at x10 stakes: +$%d or -$%d.",
				games.EscalateWinAmount, games.EscalateLossAmount),
		},
	}
	_ = common.UpdateComponentMessage(s, i, embed, escalateButtons(false))

	channelID := i.ChannelID
	messageID := i.Message.ID
	f.sessions.Start(&bot.InteractionSession{
		UserID:    userID,
		MessageID: messageID,
		Timeout:   escalateTimeout,
		Handle: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			f.handleEscalation(s, i, userID, guildID)
		},
		OnExpire: func() {
			common.EditMessageComponents(s, channelID, messageID, escalateButtons(true))
		},
	})
}

func (f *Feature) handleEscalation(s *discordgo.Session, i *discordgo.InteractionCreate, userID, guildID string) {
	customID := i.MessageComponentData().CustomID

	if customID == "card_stop" {
		f.sessions.Stop(i.Message.ID)
		_ = common.UpdateComponentMessage(s, i, &discordgo.MessageEmbed{
			Title:       "🃏 Daily cards",
			Description: "Probably wise. See you tomorrow.",
			Color:       common.ColorNeutral,
		}, nil)
		return
	}

	if !strings.HasPrefix(customID, "card_x10") {
		return
	}
	f.sessions.Stop(i.Message.ID)

	// The escalation reuses the card row, so prompt for a fresh pick via
	// a new button set sharing the same draw.
	_ = common.UpdateComponentMessage(s, i, &discordgo.MessageEmbed{
		Title:       "🃏 Daily cards — x10",
		Description: "Pick again. No take-backs.",
		Color:       common.ColorGold,
	}, cardButtons(false))

	channelID := i.ChannelID
	messageID := i.Message.ID
	f.sessions.Start(&bot.InteractionSession{
		UserID:    userID,
		MessageID: messageID,
		Timeout:   escalateTimeout,
		Handle: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			pick, ok := cardFromCustomID(i.MessageComponentData().CustomID)
			if !ok {
				return
			}
			f.sessions.Stop(messageID)

			res, newBalance, err := f.gamesSvc.PlayCardEscalation(context.Background(), userID, guildID, pick)
			if err != nil {
				_ = common.UpdateComponentMessage(s, i, &discordgo.MessageEmbed{
					Description: "❌ " + common.UserFacing(err),
					Color:       common.ColorError,
				}, nil)
				return
			}

			embed := &discordgo.MessageEmbed{Title: "🃏 Daily cards — x10"}
			if res.Correct {
				embed.Description = fmt.Sprintf("🔥 Card **%d**! The gamble pays **$%s**.\nBalance: **$%s**",
					res.Drawn, common.FormatMoney(res.Delta), common.FormatMoney(newBalance))
				embed.Color = common.ColorGold
			} else {
				embed.Description = fmt.Sprintf("💀 It was card **%d**. That cost **$%s**.\nBalance: **$%s**",
					res.Drawn, common.FormatMoney(float64(games.EscalateLossAmount)), common.FormatMoney(newBalance))
				embed.Color = common.ColorError
			}
			_ = common.UpdateComponentMessage(s, i, embed, nil)
		},
		OnExpire: func() {
			common.EditMessageComponents(s, channelID, messageID, cardButtons(true))
		},
	})
}

func cardFromCustomID(customID string) (int, bool) {
	const prefix = "card_pick_"
	if !strings.HasPrefix(customID, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(customID, prefix))
	if err != nil || n < 1 || n > games.CardCount {
		return 0, false
	}
	return n, true
}

func cardButtons(disabled bool) []discordgo.MessageComponent {
	row := discordgo.ActionsRow{}
	for n := 1; n <= games.CardCount; n++ {
		row.Components = append(row.Components, discordgo.Button{
			Label:    fmt.Sprintf("Card %d", n),
			Style:    discordgo.SecondaryButton,
			CustomID: fmt.Sprintf("card_pick_%d", n),
			Disabled: disabled,
		})
	}
	return []discordgo.MessageComponent{row}
}

func escalateButtons(disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "x10", Style: discordgo.DangerButton, CustomID: "card_x10", Disabled: disabled},
			discordgo.Button{Label: "Walk away", Style: discordgo.SecondaryButton, CustomID: "card_stop", Disabled: disabled},
		}},
	}
}
