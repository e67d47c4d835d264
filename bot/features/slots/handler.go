package slots

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/bot/common"
	"github.com/Hiroshi025/Nebura-sub000/games"
)

func (f *Feature) handleSlots(ctx *bot.Context) error {
	if len(ctx.Args) < 1 {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("Usage: `%sslots <bet>`", ctx.Prefix))
		return nil
	}
	bet, err := common.ParseAmount(ctx.Args[0])
	if err != nil {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID, "That's not a valid bet.")
		return nil
	}

	res, newBalance, err := f.gamesSvc.PlaySlots(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID, bet)
	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎰 Slots",
		Description: renderGrid(res.Grid),
		Color:       common.ColorError,
	}
	if res.Won {
		embed.Color = common.ColorSuccess
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Lines hit",
			Value:  fmt.Sprintf("x%.0f — payout **$%s**", res.LineMultiplier, common.FormatMoney(res.Payout)),
			Inline: true,
		})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Balance",
		Value:  "$" + common.FormatMoney(newBalance),
		Inline: true,
	})
	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, embed)
	return nil
}

func renderGrid(grid [3][3]int) string {
	symbols := games.SlotSymbols()
	var b strings.Builder
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			b.WriteString(symbols[grid[r][c]].Emoji)
			if c < 2 {
				b.WriteString(" | ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
