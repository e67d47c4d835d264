package duel

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/bot/common"
)

const challengeTimeout = 60 * time.Second

func (f *Feature) handleDuel(ctx *bot.Context) error {
	if len(ctx.Args) < 2 {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("Usage: `%sduel @user <stake>`", ctx.Prefix))
		return nil
	}

	opponentID, err := common.ParseUserMention(ctx.Args[0])
	if err != nil {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID, "Mention who you want to duel.")
		return nil
	}
	stake, err := common.ParseAmount(ctx.Args[1])
	if err != nil {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID, "That's not a valid stake.")
		return nil
	}

	challengerID := ctx.Message.Author.ID
	if opponentID == challengerID {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID, "You can't duel yourself.")
		return nil
	}

	opponentName := common.GetDisplayName(ctx.Session, ctx.Message.GuildID, opponentID)
	challengerName := common.GetDisplayName(ctx.Session, ctx.Message.GuildID, challengerID)

	msg := common.ReplyEmbedComponents(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title: "⚔️ Duel challenge",
		Description: fmt.Sprintf("<@%s>, **%s** challenges you for **$%s**. Winner takes all.",
			opponentID, challengerName, common.FormatMoney(stake)),
		Color: common.ColorNeutral,
	}, challengeButtons(false))
	if msg == nil {
		return nil
	}

	guildID := ctx.Message.GuildID
	channelID := ctx.Message.ChannelID

	// Only the challenged player may answer; the challenger's own clicks
	// get the stranger treatment.
	f.sessions.Start(&bot.InteractionSession{
		UserID:    opponentID,
		MessageID: msg.ID,
		Timeout:   challengeTimeout,
		Handle: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			f.sessions.Stop(msg.ID)

			if i.MessageComponentData().CustomID == "duel_decline" {
				_ = common.UpdateComponentMessage(s, i, &discordgo.MessageEmbed{
					Title:       "⚔️ Duel declined",
					Description: fmt.Sprintf("**%s** wants no part of this.", opponentName),
					Color:       common.ColorNeutral,
				}, nil)
				return
			}

			res, err := f.gamesSvc.ResolveDuel(context.Background(), guildID, challengerID, opponentID, stake)
			if err != nil {
				_ = common.UpdateComponentMessage(s, i, &discordgo.MessageEmbed{
					Description: "❌ " + common.UserFacing(err),
					Color:       common.ColorError,
				}, nil)
				return
			}

			winnerName := common.GetDisplayName(s, guildID, res.WinnerID)
			_ = common.UpdateComponentMessage(s, i, &discordgo.MessageEmbed{
				Title: "⚔️ Duel resolved",
				Description: fmt.Sprintf("**%s** wins **$%s**!\n<@%s>: **$%s** — <@%s>: **$%s**",
					winnerName, common.FormatMoney(res.Stake),
					res.WinnerID, common.FormatMoney(res.WinnerNewBalance),
					res.LoserID, common.FormatMoney(res.LoserNewBalance)),
				Color: common.ColorGold,
			}, nil)
		},
		OnExpire: func() {
			common.EditMessageComponents(ctx.Session, channelID, msg.ID, challengeButtons(true))
		},
	})
	return nil
}

func challengeButtons(disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Accept", Style: discordgo.SuccessButton, CustomID: "duel_accept", Disabled: disabled},
			discordgo.Button{Label: "Decline", Style: discordgo.DangerButton, CustomID: "duel_decline", Disabled: disabled},
		}},
	}
}
