package shop

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/bot/common"
)

func (f *Feature) handleShop(ctx *bot.Context) error {
	var b strings.Builder
	for _, item := range f.shop.Catalog() {
		fmt.Fprintf(&b, "**%s** (`%s`) — $%s\n%s\n\n",
			item.Name, item.Identifier, common.FormatMoney(item.Price), item.Description)
	}
	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       "🛒 Shop",
		Description: b.String(),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Buy with " + ctx.Prefix + "buy <id>"},
		Color:       common.ColorNeutral,
	})
	return nil
}

func (f *Feature) handleBuy(ctx *bot.Context) error {
	if len(ctx.Args) < 1 {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("Usage: `%sbuy <item>` — see `%sshop` for ids.", ctx.Prefix, ctx.Prefix))
		return nil
	}

	item, err := f.shop.Purchase(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID, ctx.Args[0])
	if err != nil {
		return err
	}

	common.ReplySuccess(ctx.Session, ctx.Message.ChannelID,
		fmt.Sprintf("Bought **%s** for **$%s**. It's in your inventory as `#%d`.",
			item.ItemName, common.FormatMoney(item.ItemPrice), item.ID))
	return nil
}

func (f *Feature) handleInventory(ctx *bot.Context) error {
	items, err := f.shop.Inventory(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		common.ReplySuccess(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("Your inventory is empty. Browse the `%sshop`.", ctx.Prefix))
		return nil
	}

	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "`#%d` **%s** — bought for $%s\n", item.ID, item.ItemName, common.FormatMoney(item.ItemPrice))
	}
	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       "🎒 Inventory",
		Description: b.String(),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Redeem with " + ctx.Prefix + "use <#>"},
		Color:       common.ColorNeutral,
	})
	return nil
}

func (f *Feature) handleUse(ctx *bot.Context) error {
	if len(ctx.Args) < 1 {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("Usage: `%suse <#>` — see `%sinventory`.", ctx.Prefix, ctx.Prefix))
		return nil
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(ctx.Args[0], "#"), 10, 64)
	if err != nil {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID, "That's not an inventory number.")
		return nil
	}

	res, err := f.shop.Redeem(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID, id)
	if err != nil {
		return err
	}

	lines := []string{fmt.Sprintf("Used **%s**.", res.Item.ItemName)}
	if res.Credited > 0 {
		lines = append(lines, fmt.Sprintf("💵 **$%s** credited. Balance: **$%s**",
			common.FormatMoney(res.Credited), common.FormatMoney(res.NewBalance)))
	}
	if res.Item.RoleID != nil {
		if err := ctx.Session.GuildMemberRoleAdd(ctx.Message.GuildID, ctx.Message.Author.ID, *res.Item.RoleID); err != nil {
			log.WithError(err).WithField("role_id", *res.Item.RoleID).Warn("Failed to grant redeemed role")
			lines = append(lines, "⚠️ Couldn't grant the role, ask a moderator.")
		} else {
			lines = append(lines, fmt.Sprintf("🎖️ You got the <@&%s> role.", *res.Item.RoleID))
		}
	}

	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       "✨ Item redeemed",
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorSuccess,
	})
	return nil
}
