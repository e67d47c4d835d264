package transfer

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/bot/common"
)

func (f *Feature) handlePay(ctx *bot.Context) error {
	if len(ctx.Args) < 2 {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("Usage: `%spay @user <amount>`", ctx.Prefix))
		return nil
	}

	toID, err := common.ParseUserMention(ctx.Args[0])
	if err != nil {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID, "Mention who you want to pay.")
		return nil
	}
	amount, err := common.ParseAmount(ctx.Args[1])
	if err != nil {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID, "That's not a valid amount.")
		return nil
	}

	res, err := f.transfers.Transfer(context.Background(), ctx.Message.GuildID, ctx.Message.Author.ID, toID, amount)
	if err != nil {
		return err
	}

	name := common.GetDisplayName(ctx.Session, ctx.Message.GuildID, res.RecipientID)
	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("💸 Sent **$%s** to **%s**.\nYour balance: **$%s**",
			common.FormatMoney(res.Amount), name, common.FormatMoney(res.NewBalance)),
		Color: common.ColorSuccess,
	})
	return nil
}
