package roulette

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/bot/common"
	"github.com/Hiroshi025/Nebura-sub000/games"
)

func (f *Feature) handleRoulette(ctx *bot.Context) error {
	if len(ctx.Args) < 2 {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("Usage: `%sroulette <bet> <0-36|red|black>`", ctx.Prefix))
		return nil
	}
	bet, err := common.ParseAmount(ctx.Args[0])
	if err != nil {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID, "That's not a valid bet.")
		return nil
	}

	kind := games.RouletteBetNumber
	number := 0
	color := games.Red

	target := strings.ToLower(ctx.Args[1])
	switch target {
	case "red":
		kind, color = games.RouletteBetColor, games.Red
	case "black":
		kind, color = games.RouletteBetColor, games.Black
	default:
		n, err := strconv.Atoi(target)
		if err != nil || n < 0 || n > 36 {
			common.ReplyError(ctx.Session, ctx.Message.ChannelID, "Bet on a number 0-36, `red` or `black`.")
			return nil
		}
		number = n
	}

	res, newBalance, err := f.gamesSvc.PlayRoulette(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID, bet, kind, number, color)
	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎡 Roulette",
		Description: fmt.Sprintf("The ball lands on %s **%d**", colorEmoji(res.Color), res.Number),
		Color:       common.ColorError,
	}
	if res.Won {
		embed.Color = common.ColorSuccess
		embed.Description += fmt.Sprintf("\n🎉 You win **$%s**!", common.FormatMoney(res.Delta))
	} else {
		embed.Description += fmt.Sprintf("\nYou lose **$%s**.", common.FormatMoney(bet))
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Balance", Value: "$" + common.FormatMoney(newBalance), Inline: true},
	}
	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, embed)
	return nil
}

func colorEmoji(c games.RouletteColor) string {
	switch c {
	case games.Red:
		return "🔴"
	case games.Black:
		return "⚫"
	}
	return "🟢"
}
