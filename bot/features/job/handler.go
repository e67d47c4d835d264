package job

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/bot/common"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

func (f *Feature) handleJob(ctx *bot.Context) error {
	if len(ctx.Args) == 0 {
		return f.listJobs(ctx)
	}

	switch strings.ToLower(ctx.Args[0]) {
	case "join":
		if len(ctx.Args) < 2 {
			common.ReplyError(ctx.Session, ctx.Message.ChannelID,
				fmt.Sprintf("Usage: `%sjob join <name>`", ctx.Prefix))
			return nil
		}
		return f.joinJob(ctx, ctx.Args[1])
	case "quit", "leave":
		return f.quitJob(ctx)
	case "list":
		return f.listJobs(ctx)
	}

	common.ReplyError(ctx.Session, ctx.Message.ChannelID,
		fmt.Sprintf("Try `%sjob list`, `%sjob join <name>` or `%sjob quit`.", ctx.Prefix, ctx.Prefix, ctx.Prefix))
	return nil
}

func (f *Feature) listJobs(ctx *bot.Context) error {
	var b strings.Builder
	for _, job := range f.jobs.Jobs() {
		fmt.Fprintf(&b, "**%s** — $%s base pay, shift every %s\n",
			job.Name, common.FormatMoney(job.BasePay), job.Cooldown)
	}
	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       "🧰 Job board",
		Description: b.String(),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Pay grows with rank and skill. Join with " + ctx.Prefix + "job join <name>"},
		Color:       common.ColorNeutral,
	})
	return nil
}

func (f *Feature) joinJob(ctx *bot.Context, name string) error {
	rec, err := f.jobs.Join(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID, name)
	if err != nil {
		return err
	}
	common.ReplySuccess(ctx.Session, ctx.Message.ChannelID,
		fmt.Sprintf("You're hired as a **%s**! Clock in with `%swork`.", rec.Job, ctx.Prefix))
	return nil
}

func (f *Feature) quitJob(ctx *bot.Context) error {
	if err := f.jobs.Quit(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID); err != nil {
		return err
	}
	common.ReplySuccess(ctx.Session, ctx.Message.ChannelID, "You quit your job. Freedom at last.")
	return nil
}

func (f *Feature) handleWork(ctx *bot.Context) error {
	res, err := f.jobs.Work(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID)
	if err != nil {
		var cooldown *service.CooldownError
		if errors.As(err, &cooldown) {
			common.ReplyError(ctx.Session, ctx.Message.ChannelID,
				fmt.Sprintf("Still on break. Your next shift starts %s.", common.FormatDiscordTimestamp(cooldown.Until, "R")))
			return nil
		}
		return err
	}

	desc := fmt.Sprintf("You earned **$%s** as a **%s**.\nBalance: **$%s**",
		common.FormatMoney(res.Pay), res.Job, common.FormatMoney(res.NewBalance))
	if res.RankedUp {
		desc += fmt.Sprintf("\n📈 Promoted to rank **%d**!", res.JobRank)
	}

	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       "💼 Shift complete",
		Description: desc,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Skill level %d", res.SkillLevel)},
		Color:       common.ColorSuccess,
	})
	return nil
}
