package service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Hiroshi025/Nebura-sub000/config"
	"github.com/Hiroshi025/Nebura-sub000/models"
)

type guildService struct {
	uowFactory UnitOfWorkFactory
}

// NewGuildService creates a new guild configuration service
func NewGuildService(uowFactory UnitOfWorkFactory) GuildService {
	return &guildService{uowFactory: uowFactory}
}

func (s *guildService) EffectivePrefix(ctx context.Context, guildID string) string {
	fallback := config.Get().DefaultPrefix
	if ValidateID(guildID) != nil {
		return fallback
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.WithError(err).Warn("Failed to begin transaction for prefix lookup")
		return fallback
	}
	defer uow.Rollback()

	rec, err := uow.Guilds().GetByID(ctx, guildID)
	if err != nil {
		log.WithError(err).WithField("guild_id", guildID).Warn("Failed to load guild prefix")
		return fallback
	}
	if rec == nil || rec.Prefix == nil || *rec.Prefix == "" {
		return fallback
	}
	return *rec.Prefix
}

func (s *guildService) SetPrefix(ctx context.Context, guildID, prefix string) error {
	if err := ValidateID(guildID); err != nil {
		return err
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || len(prefix) > 8 {
		return fmt.Errorf("prefix must be 1 to 8 characters")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := s.ensureGuild(ctx, uow, guildID); err != nil {
		return err
	}
	if err := uow.Guilds().SetPrefix(ctx, guildID, &prefix); err != nil {
		return fmt.Errorf("failed to set prefix: %w", err)
	}

	return uow.Commit()
}

func (s *guildService) ClearPrefix(ctx context.Context, guildID string) error {
	if err := ValidateID(guildID); err != nil {
		return err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := s.ensureGuild(ctx, uow, guildID); err != nil {
		return err
	}
	if err := uow.Guilds().SetPrefix(ctx, guildID, nil); err != nil {
		return fmt.Errorf("failed to clear prefix: %w", err)
	}

	return uow.Commit()
}

func (s *guildService) CustomCommand(ctx context.Context, guildID, name string) (*models.CustomCommand, error) {
	if err := ValidateID(guildID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.Guilds().GetCustomCommand(ctx, guildID, strings.ToLower(name))
}

func (s *guildService) SetCustomCommand(ctx context.Context, guildID, name, reply string) error {
	if err := ValidateID(guildID); err != nil {
		return err
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("command name must be a single word")
	}
	if strings.TrimSpace(reply) == "" {
		return fmt.Errorf("command reply must not be empty")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := s.ensureGuild(ctx, uow, guildID); err != nil {
		return err
	}
	cmd := &models.CustomCommand{
		GuildID: guildID,
		Name:    name,
		Reply:   reply,
	}
	if err := uow.Guilds().UpsertCustomCommand(ctx, cmd); err != nil {
		return fmt.Errorf("failed to save custom command: %w", err)
	}

	return uow.Commit()
}

func (s *guildService) RemoveCustomCommand(ctx context.Context, guildID, name string) error {
	if err := ValidateID(guildID); err != nil {
		return err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.Guilds().DeleteCustomCommand(ctx, guildID, strings.ToLower(name)); err != nil {
		return fmt.Errorf("failed to delete custom command: %w", err)
	}

	return uow.Commit()
}

func (s *guildService) ListCustomCommands(ctx context.Context, guildID string) ([]*models.CustomCommand, error) {
	if err := ValidateID(guildID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.Guilds().ListCustomCommands(ctx, guildID)
}

// BumpCommandUsage never surfaces an error; a lost counter tick is not
// worth failing the command for.
func (s *guildService) BumpCommandUsage(ctx context.Context, guildID, command string) {
	if ValidateID(guildID) != nil {
		return
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.WithError(err).Warn("Failed to begin transaction for usage counter")
		return
	}
	defer uow.Rollback()

	if err := uow.Guilds().IncrementCommandUsage(ctx, guildID, command); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id": guildID,
			"command":  command,
		}).Warn("Failed to increment command usage")
		return
	}

	if err := uow.Commit(); err != nil {
		log.WithError(err).Warn("Failed to commit usage counter")
	}
}

func (s *guildService) ensureGuild(ctx context.Context, uow UnitOfWork, guildID string) error {
	rec, err := uow.Guilds().GetByID(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to load guild record: %w", err)
	}
	if rec != nil {
		return nil
	}
	if _, err := uow.Guilds().Create(ctx, guildID); err != nil {
		return fmt.Errorf("failed to create guild record: %w", err)
	}
	return nil
}
