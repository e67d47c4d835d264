package coinflip

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/bot/common"
	"github.com/Hiroshi025/Nebura-sub000/games"
)

const (
	pickTimeout = 15 * time.Second
	riskTimeout = 30 * time.Second
)

func (f *Feature) handleCoinflip(ctx *bot.Context) error {
	if len(ctx.Args) < 1 {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("Usage: `%scoinflip <bet> [heads|tails]`", ctx.Prefix))
		return nil
	}
	bet, err := common.ParseAmount(ctx.Args[0])
	if err != nil {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID, "That's not a valid bet.")
		return nil
	}

	// A side on the command line skips the button prompt.
	if len(ctx.Args) > 1 {
		switch games.CoinSide(ctx.Args[1]) {
		case games.Heads, games.Tails:
			return f.playDirect(ctx, bet, games.CoinSide(ctx.Args[1]))
		}
		common.ReplyError(ctx.Session, ctx.Message.ChannelID, "Pick `heads` or `tails`.")
		return nil
	}

	components := pickButtons(false)
	msg := common.ReplyEmbedComponents(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       "🪙 Coinflip",
		Description: fmt.Sprintf("Betting **$%s**. Call it!", common.FormatMoney(bet)),
		Color:       common.ColorNeutral,
	}, components)
	if msg == nil {
		return nil
	}

	f.sessions.Start(&bot.InteractionSession{
		UserID:    ctx.Message.Author.ID,
		MessageID: msg.ID,
		Timeout:   pickTimeout,
		Handle: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			f.handlePick(s, i, ctx.Message.Author.ID, ctx.Message.GuildID, bet)
		},
		OnExpire: func() {
			common.EditMessageComponents(ctx.Session, ctx.Message.ChannelID, msg.ID, pickButtons(true))
		},
	})
	return nil
}

func (f *Feature) playDirect(ctx *bot.Context, bet float64, pick games.CoinSide) error {
	res, newBalance, err := f.gamesSvc.PlayCoinflip(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID, bet, pick)
	if err != nil {
		return err
	}
	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, flipEmbed(res, bet, newBalance))

	// Without a live message session the risk offer cannot be collected,
	// so direct play forfeits it.
	return nil
}

func (f *Feature) handlePick(s *discordgo.Session, i *discordgo.InteractionCreate, userID, guildID string, bet float64) {
	pick := games.Tails
	if i.MessageComponentData().CustomID == "cf_heads" {
		pick = games.Heads
	}

	f.sessions.Stop(i.Message.ID)

	res, newBalance, err := f.gamesSvc.PlayCoinflip(context.Background(), userID, guildID, bet, pick)
	if err != nil {
		_ = common.UpdateComponentMessage(s, i, &discordgo.MessageEmbed{
			Description: "❌ " + common.UserFacing(err),
			Color:       common.ColorError,
		}, nil)
		return
	}

	embed := flipEmbed(res, bet, newBalance)
	if !res.RiskOffered {
		_ = common.UpdateComponentMessage(s, i, embed, nil)
		return
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Risk it? Win %d flips in a row for a %dx bonus, one loss takes your bet back.",
			games.RiskMaxRounds, games.RiskBonusMultiplier),
	}
	_ = common.UpdateComponentMessage(s, i, embed, riskButtons(false))
	f.startRiskChain(s, i, userID, guildID, bet)
}

// startRiskChain collects risk rounds on the same message. roundsWon lives
// in the closure; the chain settles exactly once.
func (f *Feature) startRiskChain(s *discordgo.Session, i *discordgo.InteractionCreate, userID, guildID string, bet float64) {
	roundsWon := 0
	channelID := i.ChannelID
	messageID := i.Message.ID

	f.sessions.Start(&bot.InteractionSession{
		UserID:    userID,
		MessageID: messageID,
		Timeout:   riskTimeout,
		Handle: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if i.MessageComponentData().CustomID == "cf_keep" {
				f.sessions.Stop(messageID)
				f.settleRisk(s, i, userID, guildID, bet, roundsWon, false)
				return
			}

			if !games.RiskDraw(f.rng) {
				f.sessions.Stop(messageID)
				f.settleRisk(s, i, userID, guildID, bet, roundsWon, true)
				return
			}

			roundsWon++
			if roundsWon >= games.RiskMaxRounds {
				f.sessions.Stop(messageID)
				f.settleRisk(s, i, userID, guildID, bet, roundsWon, false)
				return
			}

			_ = common.UpdateComponentMessage(s, i, &discordgo.MessageEmbed{
				Title:       "🪙 Risk chain",
				Description: fmt.Sprintf("**%d/%d** flips won. Keep going?", roundsWon, games.RiskMaxRounds),
				Color:       common.ColorGold,
			}, riskButtons(false))
		},
		OnExpire: func() {
			// An abandoned chain settles like a manual stop.
			if _, err := f.gamesSvc.SettleRisk(context.Background(), userID, guildID, bet, roundsWon, false); err == nil {
				common.EditMessageComponents(s, channelID, messageID, riskButtons(true))
			}
		},
	})
}

func (f *Feature) settleRisk(s *discordgo.Session, i *discordgo.InteractionCreate, userID, guildID string, bet float64, roundsWon int, busted bool) {
	newBalance, err := f.gamesSvc.SettleRisk(context.Background(), userID, guildID, bet, roundsWon, busted)
	if err != nil {
		_ = common.UpdateComponentMessage(s, i, &discordgo.MessageEmbed{
			Description: "❌ " + common.UserFacing(err),
			Color:       common.ColorError,
		}, nil)
		return
	}

	embed := &discordgo.MessageEmbed{Title: "🪙 Risk chain"}
	switch {
	case busted:
		embed.Description = fmt.Sprintf("💥 The chain broke. You lose your **$%s** bet.\nBalance: **$%s**",
			common.FormatMoney(bet), common.FormatMoney(newBalance))
		embed.Color = common.ColorError
	case roundsWon >= games.RiskMaxRounds:
		embed.Description = fmt.Sprintf("🔥 **%d in a row!** Bonus: **$%s**\nBalance: **$%s**",
			games.RiskMaxRounds, common.FormatMoney(bet*games.RiskBonusMultiplier), common.FormatMoney(newBalance))
		embed.Color = common.ColorGold
	default:
		embed.Description = fmt.Sprintf("You walk away with your winnings.\nBalance: **$%s**", common.FormatMoney(newBalance))
		embed.Color = common.ColorSuccess
	}
	_ = common.UpdateComponentMessage(s, i, embed, nil)
}

func flipEmbed(res *games.CoinflipResult, bet, newBalance float64) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: "🪙 Coinflip"}
	switch {
	case res.Won && res.Special:
		embed.Description = fmt.Sprintf("✨ **%s!** Lucky coin, 10x payout: **$%s**", res.Drawn, common.FormatMoney(res.Payout))
		embed.Color = common.ColorGold
	case res.Won:
		embed.Description = fmt.Sprintf("🎉 **%s!** You win **$%s**", res.Drawn, common.FormatMoney(res.Delta))
		embed.Color = common.ColorSuccess
	case res.Extreme:
		embed.Description = fmt.Sprintf("💀 **%s.** The coin lands badly: you lose **$%s**", res.Drawn, common.FormatMoney(bet*4))
		embed.Color = common.ColorError
	default:
		embed.Description = fmt.Sprintf("😬 **%s.** You lose **$%s**", res.Drawn, common.FormatMoney(bet))
		embed.Color = common.ColorError
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Balance", Value: "$" + common.FormatMoney(newBalance), Inline: true},
	}
	return embed
}

func pickButtons(disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Heads", Style: discordgo.PrimaryButton, CustomID: "cf_heads", Disabled: disabled},
			discordgo.Button{Label: "Tails", Style: discordgo.SecondaryButton, CustomID: "cf_tails", Disabled: disabled},
		}},
	}
}

func riskButtons(disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Flip again", Style: discordgo.DangerButton, CustomID: "cf_risk", Disabled: disabled},
			discordgo.Button{Label: "Take winnings", Style: discordgo.SuccessButton, CustomID: "cf_keep", Disabled: disabled},
		}},
	}
}
