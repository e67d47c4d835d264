package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/Hiroshi025/Nebura-sub000/bot/common"
	"github.com/Hiroshi025/Nebura-sub000/events"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

// Services bundles everything the bot surface depends on.
type Services struct {
	Ledger    service.LedgerService
	Games     service.GameService
	Transfers service.TransferService
	Loans     service.LoanService
	Shop      service.ShopService
	Jobs      service.JobService
	Guilds    service.GuildService
}

type Bot struct {
	session    *discordgo.Session
	registry   *Registry
	sessions   *SessionManager
	dispatcher *Dispatcher
	services   Services
	eventBus   *events.Bus
}

// New creates the Discord session, wires the command registry and opens
// the gateway connection. Features register themselves on the registry
// before New is called.
func New(token string, registry *Registry, sessions *SessionManager, services Services, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	bot := &Bot{
		session:    dg,
		registry:   registry,
		sessions:   sessions,
		dispatcher: NewDispatcher(registry, services.Guilds, services.Ledger),
		services:   services,
		eventBus:   eventBus,
	}

	bot.registerHelp()

	dg.AddHandler(bot.dispatcher.HandleMessage)
	dg.AddHandler(bot.handleInteraction)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerSlashCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	eventBus.Subscribe(events.EventTypeDuelResolved, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.DuelResolvedEvent); ok {
			log.WithFields(log.Fields{
				"guild_id":  e.GuildID,
				"winner_id": e.WinnerID,
				"loser_id":  e.LoserID,
				"stake":     e.Stake,
			}).Info("Duel resolved")
		}
	})
	eventBus.Subscribe(events.EventTypeLoanIssued, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.LoanIssuedEvent); ok {
			log.WithFields(log.Fields{
				"loan_id": e.LoanID,
				"user_id": e.UserID,
				"amount":  e.Amount,
			}).Info("Loan issued")
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// handleInteraction routes component interactions: live sessions first,
// static routes as the fallback.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		if b.sessions.Dispatch(s, i) {
			return
		}
		customID := i.MessageComponentData().CustomID
		if handler := b.registry.ResolveComponent(customID); handler != nil {
			handler(s, i)
			return
		}
		// A click on an orphaned message, usually after a restart.
		common.RespondEphemeral(s, i, "This game is over. Start a new one!")

	case discordgo.InteractionApplicationCommand:
		b.handleSlashCommand(s, i)
	}
}

// registerHelp adds the built-in help command over the populated registry.
func (b *Bot) registerHelp() {
	b.registry.MustRegister(&Command{
		Name:        "help",
		Description: "List available commands",
		Run: func(ctx *Context) error {
			cmds := b.registry.Commands()
			lines := make([]string, 0, len(cmds))
			for _, cmd := range cmds {
				if cmd.OwnerOnly {
					continue
				}
				lines = append(lines, fmt.Sprintf("`%s%s` — %s", ctx.Prefix, cmd.Name, cmd.Description))
			}
			common.ReplyEmbed(ctx.Session, ctx.Message.ChannelID, &discordgo.MessageEmbed{
				Title:       "📖 Commands",
				Description: strings.Join(lines, "\n"),
				Color:       common.ColorNeutral,
			})
			return nil
		},
	})
}

// A minimal slash surface for the most common lookups; gameplay lives on
// prefix commands where sessions can collect buttons on our own messages.
func (b *Bot) registerSlashCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your current balance",
		},
		{
			Name:        "leaderboard",
			Description: "Show the richest members",
		},
	}

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}
	return nil
}

func (b *Bot) handleSlashCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.User == nil {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.handleSlashBalance(s, i)
	case "leaderboard":
		b.handleSlashLeaderboard(s, i)
	}
}

func (b *Bot) handleSlashBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	rec, err := b.services.Ledger.FetchBalance(context.Background(), i.Member.User.ID, i.GuildID)
	if err != nil {
		log.WithError(err).Error("Slash balance lookup failed")
		common.RespondEphemeral(s, i, common.UserFacing(err))
		return
	}

	name := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("%s, your balance: **$%s**", name, common.FormatMoney(rec.Balance)),
		},
	})
	if err != nil {
		log.WithError(err).Error("Error responding to balance command")
	}
}

func (b *Bot) handleSlashLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	records, err := b.services.Ledger.Leaderboard(context.Background(), i.GuildID, 10)
	if err != nil {
		log.WithError(err).Error("Slash leaderboard lookup failed")
		common.RespondEphemeral(s, i, common.UserFacing(err))
		return
	}

	var sb strings.Builder
	for n, rec := range records {
		name := common.GetDisplayName(s, i.GuildID, rec.UserID)
		fmt.Fprintf(&sb, "`#%d` **%s** — $%s\n", n+1, name, common.FormatMoney(rec.Balance))
	}
	if sb.Len() == 0 {
		sb.WriteString("Nobody has a wallet here yet.")
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "🏆 Richest members",
				Description: sb.String(),
				Color:       common.ColorGold,
			}},
		},
	})
	if err != nil {
		log.WithError(err).Error("Error responding to leaderboard command")
	}
}
