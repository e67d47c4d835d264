package settings

import (
	"github.com/bwmarrin/discordgo"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

type Feature struct {
	guilds service.GuildService
}

func New(guilds service.GuildService) *Feature {
	return &Feature{guilds: guilds}
}

func (f *Feature) Register(reg *bot.Registry) {
	reg.MustRegister(&bot.Command{
		Name:            "setprefix",
		Description:     "Change the command prefix for this server",
		UserPermissions: discordgo.PermissionManageServer,
		Run:             f.handleSetPrefix,
	})
	reg.MustRegister(&bot.Command{
		Name:            "resetprefix",
		Description:     "Restore the default command prefix",
		UserPermissions: discordgo.PermissionManageServer,
		Run:             f.handleResetPrefix,
	})
	reg.MustRegister(&bot.Command{
		Name:            "addcommand",
		Aliases:         []string{"addcmd"},
		Description:     "Add a custom auto-responder command",
		UserPermissions: discordgo.PermissionManageServer,
		Run:             f.handleAddCommand,
	})
	reg.MustRegister(&bot.Command{
		Name:            "delcommand",
		Aliases:         []string{"delcmd"},
		Description:     "Remove a custom command",
		UserPermissions: discordgo.PermissionManageServer,
		Run:             f.handleDelCommand,
	})
	reg.MustRegister(&bot.Command{
		Name:        "commands",
		Description: "List this server's custom commands",
		Run:         f.handleListCommands,
	})
}
