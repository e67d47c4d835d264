package loan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/bot/common"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

func (f *Feature) handleLoan(ctx *bot.Context) error {
	if len(ctx.Args) == 0 {
		return f.status(ctx)
	}

	switch strings.ToLower(ctx.Args[0]) {
	case "repay", "pay":
		return f.repay(ctx)
	case "status":
		return f.status(ctx)
	}

	amount, err := common.ParseAmount(ctx.Args[0])
	if err != nil {
		common.ReplyError(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("Usage: `%sloan <amount>`, `%sloan repay` or `%sloan status`.", ctx.Prefix, ctx.Prefix, ctx.Prefix))
		return nil
	}
	return f.request(ctx, amount)
}

func (f *Feature) request(ctx *bot.Context, amount float64) error {
	loan, err := f.loans.RequestLoan(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID, amount)
	if err != nil {
		return err
	}

	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title: "🏦 Loan approved",
		Description: fmt.Sprintf("**$%s** has been deposited.\nYou owe **$%s** (%.0f%% interest), due %s.",
			common.FormatMoney(loan.Amount),
			common.FormatMoney(loan.TotalDue()),
			models.LoanInterestRate*100,
			common.FormatDiscordTimestamp(loan.DueDate, "R")),
		Color: common.ColorSuccess,
	})
	return nil
}

func (f *Feature) repay(ctx *bot.Context) error {
	loan, err := f.loans.RepayLoan(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID)
	if err != nil {
		return err
	}
	common.ReplySuccess(ctx.Session, ctx.Message.ChannelID,
		fmt.Sprintf("Loan settled. **$%s** has been deducted.", common.FormatMoney(loan.TotalDue())))
	return nil
}

func (f *Feature) status(ctx *bot.Context) error {
	loan, err := f.loans.OutstandingLoan(context.Background(), ctx.Message.Author.ID, ctx.Message.GuildID)
	if err != nil {
		return err
	}
	if loan == nil {
		common.ReplySuccess(ctx.Session, ctx.Message.ChannelID,
			fmt.Sprintf("No outstanding loan. Borrow with `%sloan <amount>`.", ctx.Prefix))
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title: "🏦 Your loan",
		Description: fmt.Sprintf("Borrowed **$%s**, owing **$%s**, due %s.",
			common.FormatMoney(loan.Amount),
			common.FormatMoney(loan.TotalDue()),
			common.FormatDiscordTimestamp(loan.DueDate, "R")),
		Color: common.ColorNeutral,
	}
	if loan.Overdue(time.Now()) {
		embed.Description += "\n⚠️ This loan is overdue."
		embed.Color = common.ColorError
	}
	common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, embed)
	return nil
}
