package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/bot/features/balance"
	"github.com/Hiroshi025/Nebura-sub000/bot/features/cards"
	"github.com/Hiroshi025/Nebura-sub000/bot/features/coinflip"
	"github.com/Hiroshi025/Nebura-sub000/bot/features/duel"
	"github.com/Hiroshi025/Nebura-sub000/bot/features/job"
	"github.com/Hiroshi025/Nebura-sub000/bot/features/loan"
	"github.com/Hiroshi025/Nebura-sub000/bot/features/roulette"
	"github.com/Hiroshi025/Nebura-sub000/bot/features/settings"
	"github.com/Hiroshi025/Nebura-sub000/bot/features/shop"
	"github.com/Hiroshi025/Nebura-sub000/bot/features/slots"
	"github.com/Hiroshi025/Nebura-sub000/bot/features/transfer"
	"github.com/Hiroshi025/Nebura-sub000/config"
	"github.com/Hiroshi025/Nebura-sub000/database"
	"github.com/Hiroshi025/Nebura-sub000/events"
	"github.com/Hiroshi025/Nebura-sub000/repository"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	ledgerService := service.NewLedgerService(uowFactory)
	gameService := service.NewGameService(uowFactory, nil)
	transferService := service.NewTransferService(uowFactory)
	loanService := service.NewLoanService(uowFactory)
	shopService := service.NewShopService(uowFactory)
	jobService := service.NewJobService(uowFactory)
	guildService := service.NewGuildService(uowFactory)

	registry := bot.NewRegistry()
	sessions := bot.NewSessionManager()

	balance.New(ledgerService).Register(registry)
	transfer.New(transferService).Register(registry)
	coinflip.New(gameService, sessions, nil).Register(registry)
	slots.New(gameService).Register(registry)
	cards.New(gameService, sessions).Register(registry)
	roulette.New(gameService).Register(registry)
	duel.New(gameService, sessions).Register(registry)
	job.New(jobService).Register(registry)
	loan.New(loanService).Register(registry)
	shop.New(shopService).Register(registry)
	settings.New(guildService).Register(registry)

	log.Info("Starting Discord bot...")
	discordBot, err := bot.New(cfg.DiscordToken, registry, sessions, bot.Services{
		Ledger:    ledgerService,
		Games:     gameService,
		Transfers: transferService,
		Loans:     loanService,
		Shop:      shopService,
		Jobs:      jobService,
		Guilds:    guildService,
	}, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	log.Infof("Bot is running in %s mode", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}
