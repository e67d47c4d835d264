package cards

import (
	"time"

	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

type Feature struct {
	gamesSvc service.GameService
	sessions *bot.SessionManager
}

func New(gamesSvc service.GameService, sessions *bot.SessionManager) *Feature {
	return &Feature{gamesSvc: gamesSvc, sessions: sessions}
}

func (f *Feature) Register(reg *bot.Registry) {
	reg.MustRegister(&bot.Command{
		Name:        "daily",
		Aliases:     []string{"cards"},
		Description: "Pick the winning card, once a day",
		Cooldown:    24 * time.Hour,
		Run:         f.handleDaily,
	})
}
