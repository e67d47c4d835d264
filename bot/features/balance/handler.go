package balance

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/bot/common"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

const leaderboardSize = 10

func (f *Feature) handleBalance(ctx *bot.Context) error {
	bctx := context.Background()

	targetID := ctx.Message.Author.ID
	if len(ctx.Args) > 0 {
		id, err := common.ParseUserMention(ctx.Args[0])
		if err != nil {
			common.ReplyError(ctx.Session, ctx.Message.ChannelID, "Mention a user or pass their id.")
			return nil
		}
		targetID = id
	}

	rec, err := f.ledger.FetchBalance(bctx, targetID, ctx.Message.GuildID)
	if err != nil {
		return err
	}

	name := common.GetDisplayName(ctx.Session, ctx.Message.GuildID, targetID)
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("💰 %s's wallet", name),
		Color: common.ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Balance", Value: "$" + common.FormatMoney(rec.Balance), Inline: true},
			{Name: "Messages", Value: fmt.Sprintf("%d", rec.MessageCount), Inline: true},
		},
	}
	if rec.Job != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Job",
			Value:  fmt.Sprintf("%s (rank %d)", rec.Job, rec.JobRank),
			Inline: true,
		})
	}
	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, embed)
	return nil
}

func (f *Feature) handleLeaderboard(ctx *bot.Context) error {
	records, err := f.ledger.Leaderboard(context.Background(), ctx.Message.GuildID, leaderboardSize)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		common.ReplySuccess(ctx.Session, ctx.Message.ChannelID, "Nobody has a wallet here yet.")
		return nil
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	for i, rec := range records {
		rank := fmt.Sprintf("`#%d`", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		name := common.GetDisplayName(ctx.Session, ctx.Message.GuildID, rec.UserID)
		fmt.Fprintf(&b, "%s **%s** — $%s\n", rank, name, common.FormatMoney(rec.Balance))
	}

	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       "🏆 Richest members",
		Description: b.String(),
		Color:       common.ColorGold,
	})
	return nil
}

func (f *Feature) handleHistory(ctx *bot.Context) error {
	rows, err := f.ledger.History(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID, 10)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		common.ReplySuccess(ctx.Session, ctx.Message.ChannelID, "No transactions yet.")
		return nil
	}

	var b strings.Builder
	for _, row := range rows {
		sign := "+"
		if row.ChangeAmount < 0 {
			sign = "-"
		}
		fmt.Fprintf(&b, "%s **%s$%s** %s — %s\n",
			changeEmoji(row.ChangeAmount),
			sign,
			common.FormatMoney(abs(row.ChangeAmount)),
			transactionLabel(row.TransactionType),
			common.FormatDiscordTimestamp(row.CreatedAt, "R"),
		)
	}

	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       "📒 Recent transactions",
		Description: b.String(),
		Color:       common.ColorNeutral,
	})
	return nil
}

func changeEmoji(delta float64) string {
	if delta < 0 {
		return "🔻"
	}
	return "🔺"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func transactionLabel(t models.TransactionType) string {
	return strings.ReplaceAll(string(t), "_", " ")
}
