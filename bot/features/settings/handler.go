package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/bot/common"
)

func (f *Feature) handleSetPrefix(ctx *bot.Context) error {
	if len(ctx.Args) < 1 {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("Usage: `%ssetprefix <prefix>`", ctx.Prefix))
		return nil
	}

	prefix := ctx.Args[0]
	if err := f.guilds.SetPrefix(context.Background(), ctx.Message.GuildID, prefix); err != nil {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID, "Prefixes must be 1 to 8 characters.")
		return nil
	}
	common.ReplySuccess(ctx.Session, ctx.Message.ChannelID,
		fmt.Sprintf("Prefix changed to `%s`.", prefix))
	return nil
}

func (f *Feature) handleResetPrefix(ctx *bot.Context) error {
	if err := f.guilds.ClearPrefix(context.Background(), ctx.Message.GuildID); err != nil {
		return err
	}
	common.ReplySuccess(ctx.Session, ctx.Message.ChannelID, "Prefix restored to the default.")
	return nil
}

func (f *Feature) handleAddCommand(ctx *bot.Context) error {
	if len(ctx.Args) < 2 {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("Usage: `%saddcommand <name> <reply...>`", ctx.Prefix))
		return nil
	}

	name := ctx.Args[0]
	reply := strings.Join(ctx.Args[1:], " ")
	if err := f.guilds.SetCustomCommand(context.Background(), ctx.Message.GuildID, name, reply); err != nil {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID, "Command names are a single word and the reply can't be empty.")
		return nil
	}
	common.ReplySuccess(ctx.Session, ctx.Message.ChannelID,
		fmt.Sprintf("`%s%s` will now answer with that reply.", ctx.Prefix, strings.ToLower(name)))
	return nil
}

func (f *Feature) handleDelCommand(ctx *bot.Context) error {
	if len(ctx.Args) < 1 {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("Usage: `%sdelcommand <name>`", ctx.Prefix))
		return nil
	}

	if err := f.guilds.RemoveCustomCommand(context.Background(), ctx.Message.GuildID, ctx.Args[0]); err != nil {
		return err
	}
	common.ReplySuccess(ctx.Session, ctx.Message.ChannelID,
		fmt.Sprintf("Removed `%s%s`.", ctx.Prefix, strings.ToLower(ctx.Args[0])))
	return nil
}

func (f *Feature) handleListCommands(ctx *bot.Context) error {
	cmds, err := f.guilds.ListCustomCommands(context.Background(), ctx.Message.GuildID)
	if err != nil {
		return err
	}
	if len(cmds) == 0 {
		common.ReplySuccess(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("No custom commands yet. Add one with `%saddcommand`.", ctx.Prefix))
		return nil
	}

	var b strings.Builder
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "`%s%s`\n", ctx.Prefix, cmd.Name)
	}
	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       "🛠️ Custom commands",
		Description: b.String(),
		Color:       common.ColorNeutral,
	})
	return nil
}
