package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/Hiroshi025/Nebura-sub000/bot/common"
	"github.com/Hiroshi025/Nebura-sub000/config"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

// Gate failures, in the order the chain evaluates them.
var (
	errOwnerOnly      = errors.New("this command is restricted to the bot owner")
	errMaintenance    = errors.New("this command is under maintenance, try again later")
	errNSFWChannel    = errors.New("this command only works in NSFW channels")
	errUserPermission = errors.New("you are missing the permissions required for this command")
	errBotPermission  = errors.New("the bot is missing the permissions required for this command")
)

// gateInput is the per-invocation state the gate chain evaluates against.
// Kept free of discordgo types so the chain is testable.
type gateInput struct {
	IsOwner     bool
	ChannelNSFW bool
	UserPerms   int64
	BotPerms    int64
}

// checkGates runs the fixed gate order: owner, maintenance, NSFW, user
// perms, bot perms, cooldown. The first failure wins.
func checkGates(cmd *Command, in gateInput, lastUsed time.Time, now time.Time) error {
	if cmd.OwnerOnly && !in.IsOwner {
		return errOwnerOnly
	}
	if cmd.Maintenance && !in.IsOwner {
		return errMaintenance
	}
	if cmd.NSFW && !in.ChannelNSFW {
		return errNSFWChannel
	}
	if cmd.UserPermissions != 0 && in.UserPerms&cmd.UserPermissions != cmd.UserPermissions {
		return errUserPermission
	}
	if cmd.BotPermissions != 0 && in.BotPerms&cmd.BotPermissions != cmd.BotPermissions {
		return errBotPermission
	}
	if cmd.Cooldown > 0 && !lastUsed.IsZero() {
		if ready := lastUsed.Add(cmd.Cooldown); now.Before(ready) {
			return &service.CooldownError{Until: ready}
		}
	}
	return nil
}

// ResolvePrefix strips the effective prefix from content. The guild
// override (or global default) and both bot-mention forms are accepted.
// ok is false when the message is not a command invocation.
func ResolvePrefix(content, prefix, botID string) (rest string, ok bool) {
	if prefix != "" && strings.HasPrefix(content, prefix) {
		return content[len(prefix):], true
	}
	for _, mention := range []string{"<@" + botID + ">", "<@!" + botID + ">"} {
		if strings.HasPrefix(content, mention) {
			return strings.TrimLeft(content[len(mention):], " "), true
		}
	}
	return "", false
}

// Dispatcher routes incoming guild messages through the gate chain to
// registered commands.
type Dispatcher struct {
	registry *Registry
	guilds   service.GuildService
	ledger   service.LedgerService

	mu       sync.Mutex
	lastUsed map[string]time.Time // "userID:command" -> last invocation
}

// NewDispatcher creates a message dispatcher over a populated registry
func NewDispatcher(registry *Registry, guilds service.GuildService, ledger service.LedgerService) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		guilds:   guilds,
		ledger:   ledger,
		lastUsed: make(map[string]time.Time),
	}
}

// HandleMessage is the MessageCreate entry point
func (d *Dispatcher) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx := context.Background()
	prefix := d.guilds.EffectivePrefix(ctx, m.GuildID)

	rest, ok := ResolvePrefix(m.Content, prefix, s.State.User.ID)
	if !ok {
		// Not a command: credit the passive message reward, best-effort.
		if err := d.ledger.AddMessageReward(ctx, m.Author.ID, m.GuildID); err != nil {
			log.WithError(err).Debug("Failed to credit message reward")
		}
		return
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	cmd := d.registry.Lookup(name)
	if cmd == nil {
		d.tryCustomCommand(ctx, s, m, name)
		return
	}

	if err := d.gateCheck(s, m, cmd); err != nil {
		var cooldown *service.CooldownError
		if errors.As(err, &cooldown) {
			common.ReplyError(s, m.ChannelID, fmt.Sprintf("Slow down, you can use this again %s.", common.FormatDiscordTimestamp(cooldown.Until, "R")))
			return
		}
		common.ReplyError(s, m.ChannelID, err.Error())
		return
	}

	d.invoke(s, m, cmd, args, prefix)
	d.guilds.BumpCommandUsage(ctx, m.GuildID, cmd.Name)
}

// invoke runs the command with a panic boundary so one broken handler
// cannot take down the gateway loop.
func (d *Dispatcher) invoke(s *discordgo.Session, m *discordgo.MessageCreate, cmd *Command, args []string, prefix string) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"command": cmd.Name,
				"user_id": m.Author.ID,
				"panic":   r,
			}).Error("Command handler panicked")
			common.ReplyError(s, m.ChannelID, "Something went wrong running that command.")
		}
	}()

	d.markUsed(m.Author.ID, cmd.Name)

	err := cmd.Run(&Context{
		Session: s,
		Message: m,
		Args:    args,
		Prefix:  prefix,
	})
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"command": cmd.Name,
			"user_id": m.Author.ID,
		}).Error("Command failed")
		common.ReplyError(s, m.ChannelID, common.UserFacing(err))
	}
}

// tryCustomCommand answers guild-configured auto-responders when no
// registered command matches.
func (d *Dispatcher) tryCustomCommand(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, name string) {
	cmd, err := d.guilds.CustomCommand(ctx, m.GuildID, name)
	if err != nil {
		log.WithError(err).WithField("guild_id", m.GuildID).Warn("Custom command lookup failed")
		return
	}
	if cmd == nil {
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, cmd.Reply); err != nil {
		log.WithError(err).Warn("Failed to send custom command reply")
	}
}

func (d *Dispatcher) gateCheck(s *discordgo.Session, m *discordgo.MessageCreate, cmd *Command) error {
	in := gateInput{
		IsOwner: config.Get().IsOwner(m.Author.ID),
	}

	if cmd.NSFW {
		if ch, err := channel(s, m.ChannelID); err == nil {
			in.ChannelNSFW = ch.NSFW
		}
	}
	if cmd.UserPermissions != 0 {
		perms, err := s.State.UserChannelPermissions(m.Author.ID, m.ChannelID)
		if err != nil {
			return errUserPermission
		}
		in.UserPerms = perms
	}
	if cmd.BotPermissions != 0 {
		perms, err := s.State.UserChannelPermissions(s.State.User.ID, m.ChannelID)
		if err != nil {
			return errBotPermission
		}
		in.BotPerms = perms
	}

	return checkGates(cmd, in, d.lastUsedAt(m.Author.ID, cmd.Name), time.Now())
}

func channel(s *discordgo.Session, channelID string) (*discordgo.Channel, error) {
	if ch, err := s.State.Channel(channelID); err == nil {
		return ch, nil
	}
	return s.Channel(channelID)
}

func (d *Dispatcher) lastUsedAt(userID, command string) time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastUsed[userID+":"+command]
}

func (d *Dispatcher) markUsed(userID, command string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastUsed[userID+":"+command] = time.Now()
}
